package santa

import (
	"fmt"
	"io"

	"github.com/vk/workshopnet/internal/config"
	"github.com/vk/workshopnet/internal/elf"
	"github.com/vk/workshopnet/internal/fabric"
	"github.com/vk/workshopnet/internal/fileio"
	"github.com/vk/workshopnet/internal/registry"
	"github.com/vk/workshopnet/internal/scheduler"
	"github.com/vk/workshopnet/internal/tile"
)

// spliceBase is the first synthetic fabric port name. Synthetic names sit
// above the byte range, so Santa's internal ports can never collide with an
// elf port character.
const spliceBase = 256

// Santa is the orchestrating participant. It first works through the
// program's ToDo list one instruction per turn, then keeps reacting to
// monitored ports until all of them have closed.
type Santa struct {
	id     int
	status scheduler.Status

	reg   *registry.Registry
	fab   *fabric.Fabric
	sched *scheduler.Scheduler
	out   io.Writer

	todos []config.ToDo
	next  int

	elves    map[string]*elf.Elf
	monitors []*monitor
	// sendPorts holds one lazily connected output port per send target.
	sendPorts map[config.PortRef]fabric.Port
	spliceSeq int
	spawned   int
}

// monitor is one installed reactive handler. The fabric splice duplicates
// every value on the monitored output port onto a Santa-owned input, so
// monitoring never steals values from the port's real consumers.
type monitor struct {
	ref  config.PortRef
	in   fabric.Port
	recv map[config.PortRef]fabric.Port
	body []config.ToDo
	run  *handlerRun
	done bool
}

// handlerRun is one in-flight activation of a monitor body. consumed is
// set once the triggering arrival has been pulled off the monitored
// splice.
type handlerRun struct {
	pc       int
	vars     map[string]tile.Value
	consumed bool
}

// New validates the ToDo list and returns a Santa ready to be scheduled.
// Delivered values are written to out.
func New(reg *registry.Registry, fab *fabric.Fabric, sched *scheduler.Scheduler, todos []config.ToDo, out io.Writer) (*Santa, error) {
	if err := Validate(todos); err != nil {
		return nil, err
	}
	return &Santa{
		reg:       reg,
		fab:       fab,
		sched:     sched,
		out:       out,
		todos:     todos,
		elves:     make(map[string]*elf.Elf),
		sendPorts: make(map[config.PortRef]fabric.Port),
	}, nil
}

// Name implements scheduler.Participant.
func (s *Santa) Name() string { return "Santa" }

// SetID implements scheduler.Participant.
func (s *Santa) SetID(id int) { s.id = id }

// Status implements scheduler.Participant.
func (s *Santa) Status() scheduler.Status { return s.status }

// Elf returns the named elf, for callers inspecting final state.
func (s *Santa) Elf(name string) (*elf.Elf, bool) {
	e, ok := s.elves[name]
	return e, ok
}

// Step implements scheduler.Participant. The first turn executes the whole
// top-level ToDo list, so every pipe exists before any spawned elf takes
// its first step; after that, each turn runs at most one handler
// instruction.
func (s *Santa) Step() (scheduler.Event, error) {
	if s.status.Terminal() {
		return scheduler.Event{Kind: scheduler.Sleep}, nil
	}
	if s.next < len(s.todos) {
		var ev scheduler.Event
		for s.next < len(s.todos) {
			td := s.todos[s.next]
			s.next++
			var err error
			if ev, err = s.setup(td); err != nil {
				// a broken ToDo list invalidates the whole run; nothing
				// spawned so far may execute
				return ev, &scheduler.FatalError{Err: err}
			}
		}
		return ev, nil
	}
	return s.react()
}

// setup executes one top-level ToDo.
func (s *Santa) setup(td config.ToDo) (scheduler.Event, error) {
	switch td := td.(type) {
	case config.SetupElf:
		return s.setupElf(td)

	case config.Connect:
		src, err := s.outPort(td.Src)
		if err != nil {
			return s.fail(err)
		}
		dst, err := s.inPort(td.Dst)
		if err != nil {
			return s.fail(err)
		}
		if err := s.fab.Connect(src, dst); err != nil {
			return s.fail(err)
		}
		return s.advance("setup %s -> %s", td.Src, td.Dst)

	case config.Monitor:
		return s.installMonitor(td)

	case config.Source:
		src, err := fileio.NewSource(td.Path, s.fab)
		if err != nil {
			return s.fail(err)
		}
		s.sched.Add(src)
		dst, err := s.inPort(td.To)
		if err != nil {
			return s.fail(err)
		}
		if err := s.fab.Connect(src.Port(), dst); err != nil {
			return s.fail(err)
		}
		return s.advance("source %s -> %s", td.Path, td.To)

	case config.Sink:
		sink, err := fileio.NewSink(td.Path, s.fab)
		if err != nil {
			return s.fail(err)
		}
		s.sched.Add(sink)
		src, err := s.outPort(td.From)
		if err != nil {
			return s.fail(err)
		}
		if err := s.fab.Connect(src, sink.Port()); err != nil {
			return s.fail(err)
		}
		return s.advance("sink %s -> %s", td.From, td.Path)
	}
	return s.fail(fmt.Errorf("%T is only valid inside a monitor body", td))
}

func (s *Santa) setupElf(td config.SetupElf) (scheduler.Event, error) {
	plan, err := s.reg.Lookup(td.Shop)
	if err != nil {
		return s.fail(err)
	}
	name := td.Name
	if name == "" {
		name = pickName(s.spawned)
	}
	if _, exists := s.elves[name]; exists {
		return s.fail(fmt.Errorf("elf %q already set up", name))
	}
	e := elf.New(name, plan, td.Stack, s.fab)
	s.sched.Add(e)
	s.elves[name] = e
	s.spawned++
	return s.advance("setup %s for elf %s", td.Shop, name)
}

func (s *Santa) installMonitor(td config.Monitor) (scheduler.Event, error) {
	src, err := s.outPort(td.Port)
	if err != nil {
		return s.fail(err)
	}
	m := &monitor{ref: td.Port, body: td.Body, recv: make(map[config.PortRef]fabric.Port)}
	m.in = s.splice()
	if err := s.fab.Connect(src, m.in); err != nil {
		return s.fail(err)
	}
	for _, inner := range td.Body {
		r, ok := inner.(config.Receive)
		if !ok || r.From == nil {
			continue
		}
		if _, dup := m.recv[*r.From]; dup {
			continue
		}
		from, err := s.outPort(*r.From)
		if err != nil {
			return s.fail(err)
		}
		p := s.splice()
		if err := s.fab.Connect(from, p); err != nil {
			return s.fail(err)
		}
		m.recv[*r.From] = p
	}
	s.monitors = append(s.monitors, m)
	return s.advance("monitor %s", td.Port)
}

// react runs at most one handler instruction across the installed
// monitors, in installation order.
func (s *Santa) react() (scheduler.Event, error) {
	for _, m := range s.monitors {
		if m.done {
			continue
		}
		if m.run == nil {
			switch s.fab.Peek(m.in) {
			case fabric.Ready:
				m.run = &handlerRun{vars: make(map[string]tile.Value)}
			case fabric.Closed:
				m.done = true
				continue
			default:
				continue
			}
		}
		ev, progressed, err := s.exec(m)
		if err != nil {
			return ev, err
		}
		if progressed {
			s.status = scheduler.Running
			return ev, nil
		}
	}

	for _, m := range s.monitors {
		if !m.done || m.run != nil {
			s.status = scheduler.BlockedOnRead
			return scheduler.Event{Kind: scheduler.Yield}, nil
		}
	}
	s.status = scheduler.Asleep
	s.fab.CloseOutputs(s.id)
	return scheduler.Event{Kind: scheduler.Sleep}, nil
}

// exec runs the current instruction of m's active handler. It reports
// whether the monitor made progress; a starved receive or a full send
// target leaves the handler parked at the same instruction.
func (s *Santa) exec(m *monitor) (scheduler.Event, bool, error) {
	run := m.run
	switch td := m.body[run.pc].(type) {
	case config.Receive:
		port := m.in
		if td.From != nil {
			port = m.recv[*td.From]
		}
		v, st := s.fab.Pull(port)
		switch st {
		case fabric.Starved:
			return scheduler.Event{}, false, nil
		case fabric.Closed:
			// the producer is gone for good; the handler ends instead
			// of hanging on a value that can never arrive
			if td.From == nil {
				m.done = true
			} else if !run.consumed {
				// drop the triggering arrival so the same value cannot
				// re-fire the handler
				s.fab.Pull(m.in)
				if s.fab.InputClosed(m.in) {
					m.done = true
				}
			}
			m.run = nil
			ev, err := s.advance("receive %s (closed)", td.Var)
			return ev, true, err
		}
		if td.From == nil {
			run.consumed = true
		}
		run.vars[td.Var] = v
		s.finish(m)
		return scheduler.Event{Kind: scheduler.Dequeue, Instr: "receive " + td.Var, Value: v}, true, nil

	case config.Send:
		out, ok := s.sendPorts[td.To]
		if !ok {
			dst, err := s.inPort(td.To)
			if err != nil {
				ev, ferr := s.fail(err)
				return ev, true, ferr
			}
			out = s.splice()
			if err := s.fab.Connect(out, dst); err != nil {
				ev, ferr := s.fail(err)
				return ev, true, ferr
			}
			s.sendPorts[td.To] = out
		}
		if !s.fab.CanPush(out) {
			return scheduler.Event{}, false, nil
		}
		v := run.vars[td.Var]
		if td.Value != nil {
			v = tile.Number(*td.Value)
		}
		if err := s.fab.Push(out, v); err != nil {
			ev, ferr := s.fail(err)
			return ev, true, ferr
		}
		s.finish(m)
		return scheduler.Event{Kind: scheduler.Write, Instr: fmt.Sprintf("send to %s", td.To), Value: v}, true, nil

	case config.Deliver:
		v := run.vars[td.Var]
		if _, err := s.out.Write([]byte{v.Byte()}); err != nil {
			ev, ferr := s.fail(fmt.Errorf("failed to deliver: %w", err))
			return ev, true, ferr
		}
		s.finish(m)
		return scheduler.Event{Kind: scheduler.Write, Instr: "deliver " + td.Var, Value: v}, true, nil
	}
	ev, err := s.fail(fmt.Errorf("%T is not valid inside a monitor body", m.body[run.pc]))
	return ev, true, err
}

// finish advances the handler's program counter, retiring the run when the
// body is exhausted.
func (s *Santa) finish(m *monitor) {
	m.run.pc++
	if m.run.pc == len(m.body) {
		m.run = nil
	}
}

// splice allocates a fresh synthetic Santa-owned port.
func (s *Santa) splice() fabric.Port {
	p := fabric.Port{Owner: s.id, Name: spliceBase + s.spliceSeq}
	s.spliceSeq++
	return p
}

func (s *Santa) outPort(ref config.PortRef) (fabric.Port, error) {
	e, ok := s.elves[ref.Elf]
	if !ok {
		return fabric.Port{}, fmt.Errorf("port %s references unknown elf %q", ref, ref.Elf)
	}
	return e.OutPort(ref.Port), nil
}

func (s *Santa) inPort(ref config.PortRef) (fabric.Port, error) {
	e, ok := s.elves[ref.Elf]
	if !ok {
		return fabric.Port{}, fmt.Errorf("port %s references unknown elf %q", ref, ref.Elf)
	}
	return e.InPort(ref.Port), nil
}

func (s *Santa) advance(format string, args ...any) (scheduler.Event, error) {
	s.status = scheduler.Running
	return scheduler.Event{Kind: scheduler.Advance, Instr: fmt.Sprintf(format, args...)}, nil
}

func (s *Santa) fail(err error) (scheduler.Event, error) {
	s.status = scheduler.Failed
	s.fab.CloseOutputs(s.id)
	return scheduler.Event{Kind: scheduler.Sleep}, fmt.Errorf("santa: %w", err)
}
