package tile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTable(t *testing.T) {
	cases := []struct {
		code string
		want Tile
	}{
		{"..", Tile{Kind: Empty, Code: ".."}},
		{"  ", Tile{Kind: Empty, Code: ".."}},
		{"m^", Tile{Kind: Move, Code: "m^", Dir: Up}},
		{"mv", Tile{Kind: Move, Code: "mv", Dir: Down}},
		{"m<", Tile{Kind: Move, Code: "m<", Dir: Left}},
		{"m>", Tile{Kind: Move, Code: "m>", Dir: Right}},
		{"e>", Tile{Kind: Spawn, Code: "e>", Dir: Right}},
		{"e^", Tile{Kind: Spawn, Code: "e^", Dir: Up}},
		{"CA", Tile{Kind: PushChar, Code: "CA", Char: 'A'}},
		{"C ", Tile{Kind: PushChar, Code: "C ", Char: ' '}},
		{"D0", Tile{Kind: Dup, Code: "D0"}},
		{"D7", Tile{Kind: Dup, Code: "D7", N: 7}},
		{"E3", Tile{Kind: Remove, Code: "E3", N: 3}},
		{"S1", Tile{Kind: Swap, Code: "S1", N: 1}},
		{"W9", Tile{Kind: SleeveWrite, Code: "W9", N: 9}},
		{"R4", Tile{Kind: SleeveRead, Code: "R4", N: 4}},
		{"I1", Tile{Kind: In, Code: "I1", Port: '1'}},
		{"Oa", Tile{Kind: Out, Code: "Oa", Port: 'a'}},
		{"Hm", Tile{Kind: Hammock, Code: "Hm"}},
		{"?=", Tile{Kind: BranchEq, Code: "?="}},
		{"?>", Tile{Kind: BranchGt, Code: "?>"}},
		{"?<", Tile{Kind: BranchLt, Code: "?<"}},
		{"?s", Tile{Kind: BranchEmpty, Code: "?s"}},
		{"!s", Tile{Kind: StackLen, Code: "!s"}},
		{"+_", Tile{Kind: ArithBinary, Code: "+_", Op: Add}},
		{"%_", Tile{Kind: ArithBinary, Code: "%_", Op: Mod}},
		{"+1", Tile{Kind: ArithConst, Code: "+1", Op: Add, N: 1}},
		{"/5", Tile{Kind: ArithConst, Code: "/5", Op: Div, N: 5}},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			got, err := Decode(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeAllTwoDigitPushes(t *testing.T) {
	for n := 0; n <= 99; n++ {
		code := fmt.Sprintf("%02d", n)
		got, err := Decode(code)
		require.NoError(t, err)
		assert.Equal(t, PushNumber, got.Kind)
		assert.Equal(t, int64(n), got.N, "code %q", code)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, code := range []string{"", "m", "xyz", "zz", "m_", "e.", "+x", "Dx", "W_", "?!", "!x"} {
		_, err := Decode(code)
		assert.Error(t, err, "code %q", code)
	}
}

func TestOpApply(t *testing.T) {
	t.Run("basic operators", func(t *testing.T) {
		check := func(op Op, a, b, want int64) {
			got, err := op.Apply(a, b)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		check(Add, 2, 3, 5)
		check(Sub, 2, 3, -1)
		check(Mul, -4, 3, -12)
		check(Div, 7, 2, 3)
		check(Mod, 7, 3, 1)
	})

	t.Run("zero divisor", func(t *testing.T) {
		_, err := Div.Apply(1, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, err = Mod.Apply(1, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
	})
}

func TestDirectionTurns(t *testing.T) {
	assert.Equal(t, Right, Up.Right())
	assert.Equal(t, Left, Up.Left())
	assert.Equal(t, Up, Left.Right())
	for _, d := range []Direction{Up, Right, Down, Left} {
		assert.Equal(t, d, d.Right().Left())
		assert.Equal(t, d, d.Left().Left().Left().Left())
	}
}

func TestValue(t *testing.T) {
	assert.Equal(t, "7", Number(7).String())
	assert.Equal(t, `"z"`, Character('z').String())
	assert.Equal(t, byte('z'), Character('z').Byte())
	assert.True(t, Character('z').Char)
	assert.False(t, Number(122).Char)
}
