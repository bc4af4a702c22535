// Package schema defines the HCL-specific manifest structures. Translation
// into the format-agnostic config model lives in the hcl package.
package schema

import "github.com/hashicorp/hcl/v2"

// Workshop represents a `workshop` block: one named floorplan.
type Workshop struct {
	Name      string `hcl:"name,label"`
	Floorplan string `hcl:"floorplan"`
}

// Santa represents the `santa` block. Its body is kept raw because the ToDo
// blocks inside are order-sensitive; gohcl groups blocks by type, so the
// hcl package walks the body content itself.
type Santa struct {
	Body hcl.Body `hcl:",remain"`
}

// Manifest represents the top-level structure of a program manifest file.
type Manifest struct {
	Workshops []*Workshop `hcl:"workshop,block"`
	Santa     *Santa      `hcl:"santa,block"`
}

// Elf represents an `elf` block inside santa. An empty label asks for a
// name from the default pool.
type Elf struct {
	Workshop string  `hcl:"workshop"`
	Stack    []int64 `hcl:"stack,optional"`
}

// Pipe represents a `pipe` block: one fabric edge.
type Pipe struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

// Receive represents a `receive` block inside a monitor body. An empty
// `from` means the monitored port.
type Receive struct {
	From string `hcl:"from,optional"`
}

// Send represents a `send` block inside a monitor body: either a handler
// variable or a literal value, never both.
type Send struct {
	Var   string `hcl:"var,optional"`
	Value *int64 `hcl:"value,optional"`
	To    string `hcl:"to"`
}

// Source represents a `source` block: file bytes feeding an input port.
type Source struct {
	Path string `hcl:"path"`
	To   string `hcl:"to"`
}

// Sink represents a `sink` block: an output port draining into a file.
type Sink struct {
	Path string `hcl:"path"`
	From string `hcl:"from"`
}
