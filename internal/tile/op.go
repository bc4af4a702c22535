package tile

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by Op.Apply for a zero divisor. It is a
// runtime error of the executing elf, never undefined behavior.
var ErrDivisionByZero = errors.New("division by zero")

// Op is one of the five integer arithmetic operators.
type Op uint8

const (
	Add Op = iota
	Sub
	Mul
	Div
	Mod
)

func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Apply computes a OP b over the numeric interpretation of two values.
func (op Op) Apply(a, b int64) (int64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case Mod:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a % b, nil
	}
	return 0, fmt.Errorf("invalid arithmetic operator %d", uint8(op))
}
