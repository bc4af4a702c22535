package elf

import (
	"fmt"

	"github.com/vk/workshopnet/internal/fabric"
	"github.com/vk/workshopnet/internal/floorplan"
	"github.com/vk/workshopnet/internal/scheduler"
	"github.com/vk/workshopnet/internal/tile"
)

// sleeveSlots is the fixed size of the per-elf register file.
const sleeveSlots = 10

// Elf is one resumable execution context walking a floorplan. It owns its
// position, heading, operand stack, and sleeve exclusively; everything
// cross-elf goes through the fabric.
type Elf struct {
	id      int
	name    string
	plan    *floorplan.Plan
	pos     floorplan.Pos
	heading tile.Direction
	stack   []tile.Value
	sleeve  [sleeveSlots]tile.Value
	status  scheduler.Status
	fab     *fabric.Fabric
}

// New creates an elf at the plan's spawn point. Initial stack values are
// pushed bottom-to-top in the listed order.
func New(name string, plan *floorplan.Plan, initial []int64, fab *fabric.Fabric) *Elf {
	e := &Elf{
		name:    name,
		plan:    plan,
		pos:     plan.Spawn,
		heading: plan.SpawnDir,
		fab:     fab,
	}
	for _, n := range initial {
		e.stack = append(e.stack, tile.Number(n))
	}
	return e
}

// Name implements scheduler.Participant.
func (e *Elf) Name() string { return e.name }

// SetID implements scheduler.Participant.
func (e *Elf) SetID(id int) { e.id = id }

// ID returns the scheduler-assigned identity keying this elf's ports.
func (e *Elf) ID() int { return e.id }

// Status implements scheduler.Participant.
func (e *Elf) Status() scheduler.Status { return e.status }

// Pos returns the current grid position.
func (e *Elf) Pos() floorplan.Pos { return e.pos }

// Heading returns the current walking direction.
func (e *Elf) Heading() tile.Direction { return e.heading }

// Stack returns a copy of the operand stack, bottom first.
func (e *Elf) Stack() []tile.Value {
	out := make([]tile.Value, len(e.stack))
	copy(out, e.stack)
	return out
}

// InPort returns the fabric handle of this elf's input port p.
func (e *Elf) InPort(p byte) fabric.Port { return fabric.Port{Owner: e.id, Name: int(p)} }

// OutPort returns the fabric handle of this elf's output port p.
func (e *Elf) OutPort(p byte) fabric.Port { return fabric.Port{Owner: e.id, Name: int(p)} }

// StepError is a fatal per-elf runtime error. It carries enough context to
// locate the failing tile; sibling elves keep running.
type StepError struct {
	Elf  string
	Pos  floorplan.Pos
	Code string
	Err  error
}

func (e *StepError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("elf %s at %s: %v", e.Elf, e.Pos, e.Err)
	}
	return fmt.Sprintf("elf %s at %s (%s): %v", e.Elf, e.Pos, e.Code, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// topIdx maps a depth from the top (0 = top) to a slice index. Depth at or
// beyond the current size is a fatal error, not a silent no-op.
func (e *Elf) topIdx(depth int64) (int, error) {
	if depth < 0 || depth >= int64(len(e.stack)) {
		return 0, fmt.Errorf("stack depth %d out of range (size %d)", depth, len(e.stack))
	}
	return len(e.stack) - int(depth) - 1, nil
}

func (e *Elf) topVal(depth int64) (tile.Value, error) {
	i, err := e.topIdx(depth)
	if err != nil {
		return tile.Value{}, err
	}
	return e.stack[i], nil
}

func (e *Elf) push(v tile.Value) { e.stack = append(e.stack, v) }

func (e *Elf) pop() (tile.Value, error) {
	if len(e.stack) == 0 {
		return tile.Value{}, fmt.Errorf("stack underflow")
	}
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, nil
}
