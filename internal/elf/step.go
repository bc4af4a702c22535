package elf

import (
	"fmt"

	"github.com/vk/workshopnet/internal/fabric"
	"github.com/vk/workshopnet/internal/floorplan"
	"github.com/vk/workshopnet/internal/scheduler"
	"github.com/vk/workshopnet/internal/tile"
)

// Step executes the tile at the current position, resolves the next
// heading, and advances one cell. It implements scheduler.Participant.
//
// The tile under the elf was stepped onto by the previous step; blocking
// I/O parks the elf on the same tile without advancing, so a retried step
// re-executes it. Any returned error has already marked the elf Failed.
func (e *Elf) Step() (scheduler.Event, error) {
	if e.status.Terminal() {
		return scheduler.Event{Kind: scheduler.Sleep, Pos: e.pos}, nil
	}

	t, ok := e.plan.At(e.pos)
	if !ok {
		return e.fail(tile.Tile{}, fmt.Errorf("walked off the floorplan"))
	}

	ev := scheduler.Event{Kind: scheduler.Advance, Pos: e.pos, Instr: t.String()}
	heading := e.heading
	advance := true

	switch t.Kind {
	case tile.Empty, tile.Spawn:
		// spawn markers are inert once the elf is walking

	case tile.Move:
		heading = t.Dir

	case tile.PushNumber:
		e.push(tile.Number(t.N))

	case tile.PushChar:
		e.push(tile.Character(t.Char))

	case tile.Dup:
		v, err := e.topVal(t.N)
		if err != nil {
			return e.fail(t, err)
		}
		e.push(v)

	case tile.Remove:
		i, err := e.topIdx(t.N)
		if err != nil {
			return e.fail(t, err)
		}
		e.stack = append(e.stack[:i], e.stack[i+1:]...)

	case tile.Swap:
		i, err := e.topIdx(t.N)
		if err != nil {
			return e.fail(t, err)
		}
		top := len(e.stack) - 1
		e.stack[top], e.stack[i] = e.stack[i], e.stack[top]

	case tile.SleeveWrite:
		v, err := e.pop()
		if err != nil {
			return e.fail(t, err)
		}
		e.sleeve[t.N] = v

	case tile.SleeveRead:
		e.push(e.sleeve[t.N])

	case tile.StackLen:
		e.push(tile.Number(int64(len(e.stack))))

	case tile.BranchEq, tile.BranchGt, tile.BranchLt:
		v, err := e.pop()
		if err != nil {
			return e.fail(t, err)
		}
		taken := false
		switch t.Kind {
		case tile.BranchEq:
			taken = v.N == 0
		case tile.BranchGt:
			taken = v.N > 0
		case tile.BranchLt:
			taken = v.N < 0
		}
		heading = e.turn(taken)

	case tile.BranchEmpty:
		heading = e.turn(len(e.stack) == 0)

	case tile.ArithBinary:
		b, err := e.topVal(0)
		if err != nil {
			return e.fail(t, err)
		}
		a, err := e.topVal(1)
		if err != nil {
			return e.fail(t, err)
		}
		res, err := t.Op.Apply(a.N, b.N)
		if err != nil {
			return e.fail(t, err)
		}
		e.stack = e.stack[:len(e.stack)-2]
		e.push(tile.Number(res))

	case tile.ArithConst:
		b, err := e.topVal(0)
		if err != nil {
			return e.fail(t, err)
		}
		res, err := t.Op.Apply(b.N, t.N)
		if err != nil {
			return e.fail(t, err)
		}
		e.stack[len(e.stack)-1] = tile.Number(res)

	case tile.In:
		v, st := e.fab.Pull(e.InPort(t.Port))
		switch st {
		case fabric.Ready:
			e.push(v)
			e.status = scheduler.Running
			ev.Kind = scheduler.Dequeue
			ev.Port = t.Port
			ev.Value = v
		case fabric.Starved:
			// wait here for input
			e.status = scheduler.BlockedOnRead
			ev.Kind = scheduler.Yield
			advance = false
		case fabric.Closed:
			// reading a closed, drained port puts the elf to sleep
			return e.sleep(ev), nil
		}

	case tile.Out:
		out := e.OutPort(t.Port)
		if !e.fab.CanPush(out) {
			e.status = scheduler.BlockedOnWrite
			ev.Kind = scheduler.Yield
			advance = false
			break
		}
		v, err := e.pop()
		if err != nil {
			return e.fail(t, err)
		}
		if err := e.fab.Push(out, v); err != nil {
			return e.fail(t, err)
		}
		e.status = scheduler.Running
		ev.Kind = scheduler.Write
		ev.Port = t.Port
		ev.Value = v

	case tile.Hammock:
		return e.sleep(ev), nil

	default:
		return e.fail(t, fmt.Errorf("unexecutable tile kind %d", t.Kind))
	}

	e.heading = heading
	if advance {
		e.pos = floorplan.Advance(e.pos, e.heading)
	}
	ev.Stack = e.Stack()
	return ev, nil
}

// turn resolves a branch: right (clockwise) when the predicate holds, left
// otherwise.
func (e *Elf) turn(taken bool) tile.Direction {
	if taken {
		return e.heading.Right()
	}
	return e.heading.Left()
}

// sleep parks the elf terminally and closes all of its output ports, which
// cascades through the fabric.
func (e *Elf) sleep(ev scheduler.Event) scheduler.Event {
	e.status = scheduler.Asleep
	e.fab.CloseOutputs(e.id)
	ev.Kind = scheduler.Sleep
	ev.Stack = e.Stack()
	return ev
}

func (e *Elf) fail(t tile.Tile, err error) (scheduler.Event, error) {
	e.status = scheduler.Failed
	e.fab.CloseOutputs(e.id)
	stepErr := &StepError{Elf: e.name, Pos: e.pos, Code: t.Code, Err: err}
	ev := scheduler.Event{Kind: scheduler.Sleep, Pos: e.pos, Instr: t.String(), Stack: e.Stack()}
	return ev, stepErr
}
