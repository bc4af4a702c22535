package fabric

import (
	"fmt"

	"github.com/vk/workshopnet/internal/tile"
)

// Port addresses one directional endpoint: a named port on a participant.
// Input and output ports live in disjoint namespaces, so the same name on
// the same owner can exist once as an input and once as an output.
//
// Name is the port character for elf ports; Santa's monitor splices use
// synthetic names above the byte range.
type Port struct {
	Owner int
	Name  int
}

func (p Port) String() string {
	if p.Name >= 0 && p.Name < 256 {
		return fmt.Sprintf("%d.%c", p.Owner, byte(p.Name))
	}
	return fmt.Sprintf("%d.#%d", p.Owner, p.Name)
}

// PullState reports the outcome of a Pull or Peek.
type PullState uint8

const (
	// Ready means a value was (or can be) dequeued.
	Ready PullState = iota
	// Starved means no value is queued but at least one feeding edge is
	// still open, so one may yet arrive.
	Starved
	// Closed means every feeding edge is closed and drained (or the port
	// was never connected); no value will ever arrive.
	Closed
)

// item stamps a queued value with its global arrival sequence so fan-in
// merging can dequeue in arrival order across edges.
type item struct {
	val tile.Value
	seq uint64
}

// edge is one directed pipe from an output port to an input port.
type edge struct {
	src, dst Port
	queue    []item
	closed   bool
}

// Fabric owns every pipe edge, queue, and open/closed flag. It is the only
// component that mutates cross-participant state; participants reach it
// exclusively through Connect/Push/Pull/CloseOutputs, which the cooperative
// scheduler serializes by construction.
type Fabric struct {
	edges []*edge
	// out and in index edges by their endpoint ports.
	out map[Port][]*edge
	in  map[Port][]*edge
	// closedOut marks output ports whose owner has gone to sleep.
	closedOut map[Port]bool
	seq       uint64
	// bound caps each edge queue; zero means unbounded.
	bound int
}

// New creates an empty fabric. bound > 0 enables bounded-buffer
// backpressure with the given per-edge capacity; zero keeps the default
// unbounded queueing policy.
func New(bound int) *Fabric {
	return &Fabric{
		out:       make(map[Port][]*edge),
		in:        make(map[Port][]*edge),
		closedOut: make(map[Port]bool),
		bound:     bound,
	}
}

// Connect registers a directed pipe edge from the output port src to the
// input port dst. Duplicate edges and edges from already-closed outputs are
// configuration errors.
func (f *Fabric) Connect(src, dst Port) error {
	if f.closedOut[src] {
		return fmt.Errorf("cannot connect closed output port %s", src)
	}
	for _, e := range f.out[src] {
		if e.dst == dst {
			return fmt.Errorf("duplicate pipe %s -> %s", src, dst)
		}
	}
	e := &edge{src: src, dst: dst}
	f.edges = append(f.edges, e)
	f.out[src] = append(f.out[src], e)
	f.in[dst] = append(f.in[dst], e)
	return nil
}

// connected reports whether any edge originates at the output port src.
func (f *Fabric) connected(src Port) bool { return len(f.out[src]) > 0 }

// CanPush reports whether a push on src would be accepted immediately.
// Under the unbounded policy it is always true for open ports; under a
// bounded policy it is false while any fan-out edge is at capacity.
func (f *Fabric) CanPush(src Port) bool {
	if f.closedOut[src] {
		return false
	}
	if f.bound <= 0 {
		return true
	}
	for _, e := range f.out[src] {
		if len(e.queue) >= f.bound {
			return false
		}
	}
	return true
}

// Push enqueues v on every edge fanning out from src. A push on a closed
// output is a logic error. Pushing on a port with no edges discards the
// value; the pop already happened on the sender's stack either way.
func (f *Fabric) Push(src Port, v tile.Value) error {
	if f.closedOut[src] {
		return fmt.Errorf("push on closed output port %s", src)
	}
	if !f.connected(src) {
		return nil
	}
	f.seq++
	for _, e := range f.out[src] {
		e.queue = append(e.queue, item{val: v, seq: f.seq})
	}
	return nil
}

// Pull dequeues the oldest pending value across every edge feeding dst.
// Arrival order is the canonical fan-in tie-break: the value with the
// smallest global arrival sequence wins.
func (f *Fabric) Pull(dst Port) (tile.Value, PullState) {
	best := -1
	for i, e := range f.in[dst] {
		if len(e.queue) == 0 {
			continue
		}
		if best < 0 || e.queue[0].seq < f.in[dst][best].queue[0].seq {
			best = i
		}
	}
	if best >= 0 {
		e := f.in[dst][best]
		v := e.queue[0].val
		e.queue = e.queue[1:]
		return v, Ready
	}
	return tile.Value{}, f.starvedOrClosed(dst)
}

// Peek reports whether a Pull on dst would find a value, without dequeuing.
func (f *Fabric) Peek(dst Port) PullState {
	for _, e := range f.in[dst] {
		if len(e.queue) > 0 {
			return Ready
		}
	}
	return f.starvedOrClosed(dst)
}

func (f *Fabric) starvedOrClosed(dst Port) PullState {
	for _, e := range f.in[dst] {
		if !e.closed {
			return Starved
		}
	}
	// all feeding edges closed and drained, or never connected at all
	return Closed
}

// InputClosed reports whether dst can never produce another value: every
// feeding edge is closed and its queue drained. Pending values keep the
// port open until read; closure never discards already-sent values.
func (f *Fabric) InputClosed(dst Port) bool {
	return f.Peek(dst) == Closed
}

// CloseOutputs closes every output port owned by the given participant,
// which closes every edge sourced from those ports. This runs eagerly once
// per sleep event; readers discover resulting input-port closure on their
// next pull, so nothing ever spin-waits on a dead pipe.
func (f *Fabric) CloseOutputs(owner int) {
	for port, edges := range f.out {
		if port.Owner != owner || f.closedOut[port] {
			continue
		}
		f.closedOut[port] = true
		for _, e := range edges {
			e.closed = true
		}
	}
}

// OutputClosed reports whether the output port has been closed. Closing is
// irreversible.
func (f *Fabric) OutputClosed(src Port) bool { return f.closedOut[src] }
