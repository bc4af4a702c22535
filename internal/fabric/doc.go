// Package fabric implements the port and pipe fabric connecting workshop
// participants. Ports are addressed by integer handles rather than object
// references, so the naturally cyclic many-to-many port graph stays an
// explicit edge list and cascading closure is a plain traversal instead of
// a pointer-chasing hazard.
//
// An output port fans out to any number of pipe edges; an input port fans
// in from any number. Within one pipe the order is FIFO; across fan-in
// edges values are merged by global arrival order. When a participant goes
// to sleep all of its output ports close, which closes their edges; an
// input port counts as closed only once every feeding edge is closed and
// its pending queue is drained.
package fabric
