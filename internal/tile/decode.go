package tile

import "fmt"

// Decode translates a two-character tile code into its instruction. It is
// total and pure: every valid code maps to exactly one Tile, and anything
// else is an error. Decoding happens once at load time, so an invalid code
// never survives into execution.
func Decode(code string) (Tile, error) {
	if len(code) != 2 {
		return Tile{}, fmt.Errorf("tile code must be exactly two characters, got %q", code)
	}
	t := Tile{Code: code}
	c0, c1 := code[0], code[1]

	switch code {
	case "  ", "..":
		t.Kind = Empty
		t.Code = ".."
		return t, nil
	case "Hm":
		t.Kind = Hammock
		return t, nil
	case "?=":
		t.Kind = BranchEq
		return t, nil
	case "?>":
		t.Kind = BranchGt
		return t, nil
	case "?<":
		t.Kind = BranchLt
		return t, nil
	case "?s":
		t.Kind = BranchEmpty
		return t, nil
	case "!s":
		t.Kind = StackLen
		return t, nil
	}

	if isDigit(c0) && isDigit(c1) {
		t.Kind = PushNumber
		t.N = int64(c0-'0')*10 + int64(c1-'0')
		return t, nil
	}

	if dir, ok := decodeDir(c1); ok {
		switch c0 {
		case 'm':
			t.Kind = Move
			t.Dir = dir
			return t, nil
		case 'e':
			t.Kind = Spawn
			t.Dir = dir
			return t, nil
		}
	}

	if op, ok := decodeOp(c0); ok {
		if c1 == '_' {
			t.Kind = ArithBinary
			t.Op = op
			return t, nil
		}
		if isDigit(c1) {
			t.Kind = ArithConst
			t.Op = op
			t.N = int64(c1 - '0')
			return t, nil
		}
		return Tile{}, fmt.Errorf("unknown tile code %q: operand of %q must be '_' or a digit", code, c0)
	}

	switch c0 {
	case 'C':
		t.Kind = PushChar
		t.Char = c1
		return t, nil
	case 'D', 'E', 'S', 'W', 'R':
		if !isDigit(c1) {
			return Tile{}, fmt.Errorf("unknown tile code %q: operand of %q must be a digit", code, c0)
		}
		t.N = int64(c1 - '0')
		switch c0 {
		case 'D':
			t.Kind = Dup
		case 'E':
			t.Kind = Remove
		case 'S':
			t.Kind = Swap
		case 'W':
			t.Kind = SleeveWrite
		case 'R':
			t.Kind = SleeveRead
		}
		return t, nil
	case 'I':
		t.Kind = In
		t.Port = c1
		return t, nil
	case 'O':
		t.Kind = Out
		t.Port = c1
		return t, nil
	}

	return Tile{}, fmt.Errorf("unknown tile code %q", code)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func decodeDir(c byte) (Direction, bool) {
	switch c {
	case '^':
		return Up, true
	case 'v':
		return Down, true
	case '<':
		return Left, true
	case '>':
		return Right, true
	}
	return 0, false
}

func decodeOp(c byte) (Op, bool) {
	switch c {
	case '+':
		return Add, true
	case '-':
		return Sub, true
	case '*':
		return Mul, true
	case '/':
		return Div, true
	case '%':
		return Mod, true
	}
	return 0, false
}
