package scheduler

import (
	"github.com/vk/workshopnet/internal/floorplan"
	"github.com/vk/workshopnet/internal/tile"
)

// Status is a participant's lifecycle state. The scheduler only reads it;
// every transition is made by the participant itself inside Step.
type Status uint8

const (
	// Running means the participant can make progress on its next turn.
	Running Status = iota
	// BlockedOnRead means the participant is parked on an input port until
	// a value arrives or the port closes.
	BlockedOnRead
	// BlockedOnWrite means the participant is parked on an output port
	// until the bounded buffer accepts its value.
	BlockedOnWrite
	// Asleep is terminal: the participant reached its hammock or read a
	// closed port. All of its output ports are closed.
	Asleep
	// Failed is terminal: the participant's step hit a fatal runtime error.
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case BlockedOnRead:
		return "blocked-on-read"
	case BlockedOnWrite:
		return "blocked-on-write"
	case Asleep:
		return "asleep"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether the status can never change again.
func (s Status) Terminal() bool { return s == Asleep || s == Failed }

// EventKind classifies what a single step did.
type EventKind uint8

const (
	// Advance is ordinary progress with no I/O.
	Advance EventKind = iota
	// Yield means the step could not progress and the participant parked.
	Yield
	// Write means a value was pushed to an output port.
	Write
	// Dequeue means a value was consumed from an input port.
	Dequeue
	// Sleep means the participant reached a terminal sleep this step.
	Sleep
)

func (k EventKind) String() string {
	switch k {
	case Advance:
		return "advance"
	case Yield:
		return "yield"
	case Write:
		return "write"
	case Dequeue:
		return "dequeue"
	case Sleep:
		return "sleep"
	}
	return "unknown"
}

// Event is the structured record a participant returns from one step. The
// position, instruction, and stack snapshot make the stream sufficient for
// an external formatter to reproduce a human-readable trace.
type Event struct {
	Kind EventKind
	// Pos is the grid coordinate of the executed instruction (elves only).
	Pos floorplan.Pos
	// Instr is the executed instruction in source form.
	Instr string
	// Stack is a snapshot of the operand stack after the step, top last.
	Stack []tile.Value
	// Port and Value are set for Write and Dequeue events.
	Port  byte
	Value tile.Value
}

// Participant is one resumable execution context: an elf, Santa, or a file
// endpoint. Step executes exactly one instruction and reports what
// happened; it must leave the participant in a consistent parked state
// whenever it cannot progress, never busy-wait.
type Participant interface {
	// Name identifies the participant in traces and errors.
	Name() string
	// SetID hands the participant its scheduler-assigned identity, which
	// also keys its ports in the fabric. Called exactly once, before the
	// first step.
	SetID(id int)
	// Status returns the current lifecycle state.
	Status() Status
	// Step executes one instruction. A returned error is fatal to this
	// participant only; the participant must mark itself Failed.
	Step() (Event, error)
}
