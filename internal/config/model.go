package config

import (
	"fmt"
	"strings"
)

// Model is the unified, format-agnostic representation of one program: the
// workshop floorplans in their textual form and Santa's ordered ToDo list.
type Model struct {
	// Workshops maps workshop name to floorplan source text. Decoding into
	// grids happens in the registry, after loading.
	Workshops map[string]string
	// Todos is Santa's instruction list in source order.
	Todos []ToDo
}

// PortRef names one port on one participant, as written in manifests
// ("Jingle.a"). The referenced elf must exist by the time the reference is
// executed.
type PortRef struct {
	Elf  string
	Port byte
}

func (r PortRef) String() string { return fmt.Sprintf("%s.%c", r.Elf, r.Port) }

// ParsePortRef parses the "<elf>.<port>" manifest form. The port is a
// single character after the final dot.
func ParsePortRef(s string) (PortRef, error) {
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i != len(s)-2 {
		return PortRef{}, fmt.Errorf("port reference %q is not of the form <elf>.<port>", s)
	}
	return PortRef{Elf: s[:i], Port: s[i+1]}, nil
}

// ToDo is one instruction on Santa's list. The concrete types below are the
// only implementations.
type ToDo interface {
	todo()
}

// SetupElf instantiates a new elf in the named workshop. An empty Name
// draws one from the elf name table. Stack values are pushed bottom-to-top
// in the listed order.
type SetupElf struct {
	Shop  string
	Name  string
	Stack []int64
}

// Connect registers a pipe edge from the Src output port to the Dst input
// port.
type Connect struct {
	Src, Dst PortRef
}

// Monitor installs a reactive handler on an output port: the Body runs once
// per value that arrives on it.
type Monitor struct {
	Port PortRef
	Body []ToDo
}

// Receive pulls one value into the handler variable Var. A nil From means
// the monitored port.
type Receive struct {
	Var  string
	From *PortRef
}

// Send pushes one value to the port To, either a handler variable (Var) or
// a literal (Value). Exactly one of the two is set.
type Send struct {
	Var   string
	Value *int64
	To    PortRef
}

// Deliver emits the named handler variable as a single character on the
// program's output stream.
type Deliver struct {
	Var string
}

// Source binds a file to an input port: the file's bytes are pushed one per
// step as character values, then the port closes.
type Source struct {
	Path string
	To   PortRef
}

// Sink binds an output port to a file: arriving values are written until
// the port closes.
type Sink struct {
	Path string
	From PortRef
}

func (SetupElf) todo() {}
func (Connect) todo()  {}
func (Monitor) todo()  {}
func (Receive) todo()  {}
func (Send) todo()     {}
func (Deliver) todo()  {}
func (Source) todo()   {}
func (Sink) todo()     {}
