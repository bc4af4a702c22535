package tile

import "fmt"

// Direction is one of the four cardinal headings an elf can walk in.
// The order is clockwise so that Right() and Left() are cheap turns.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Right returns the heading after a clockwise quarter turn.
func (d Direction) Right() Direction { return (d + 1) % 4 }

// Left returns the heading after a counter-clockwise quarter turn.
func (d Direction) Left() Direction { return (d + 3) % 4 }

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Kind identifies the operation a decoded tile performs.
type Kind uint8

const (
	Empty Kind = iota
	Move
	Spawn
	PushNumber
	PushChar
	Dup
	Remove
	Swap
	SleeveWrite
	SleeveRead
	In
	Out
	Hammock
	BranchEq
	BranchGt
	BranchLt
	BranchEmpty
	StackLen
	ArithBinary
	ArithConst
)

// Tile is a single decoded floorplan cell. It is an immutable value: every
// field is populated once by Decode and never mutated afterwards.
type Tile struct {
	Kind Kind
	// Code is the raw two-character source form, kept for traces and errors.
	Code string
	// Dir is set for Move and Spawn tiles.
	Dir Direction
	// Op is set for ArithBinary and ArithConst tiles.
	Op Op
	// N holds the pushed number, the depth/slot operand, or the arithmetic
	// constant, depending on Kind.
	N int64
	// Char is set for PushChar tiles.
	Char byte
	// Port is set for In and Out tiles.
	Port byte
}

func (t Tile) String() string {
	if t.Code == "" {
		return ".."
	}
	return t.Code
}
