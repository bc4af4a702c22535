package tile

import (
	"fmt"
	"strconv"
)

// Value is a single stack or pipe element: an integer that optionally
// carries a character tag. Arithmetic always acts on the numeric
// interpretation; the tag only matters at character boundaries (C<c>
// tiles, deliver, file endpoints).
type Value struct {
	N    int64
	Char bool
}

// Number wraps an integer value.
func Number(n int64) Value { return Value{N: n} }

// Character wraps a character value.
func Character(c byte) Value { return Value{N: int64(c), Char: true} }

// Byte returns the value truncated to a single output byte.
func (v Value) Byte() byte { return byte(v.N) }

func (v Value) String() string {
	if v.Char {
		return fmt.Sprintf("%q", string(rune(v.N)))
	}
	return strconv.FormatInt(v.N, 10)
}
