package parse

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseRandomForms(t *testing.T) {
	cases := []struct {
		in   string
		want Random
	}{
		{"5", Random{Base: 5}},
		{"-3", Random{Base: -3}},
		{"1d6", Random{Dice: 1, Sides: 6}},
		{"d6", Random{Dice: 1, Sides: 6}},
		{"2+1d4", Random{Base: 2, Dice: 1, Sides: 4}},
		{"1d6M4", Random{Dice: 1, Sides: 6, MBonus: 4}},
		{"2+3d8M10", Random{Base: 2, Dice: 3, Sides: 8, MBonus: 10}},
		{"M5", Random{MBonus: 5}},
	}
	for _, tc := range cases {
		rv, err := ParseRandom(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, rv, "input %q", tc.in)
	}
}

func TestParseRandomMalformed(t *testing.T) {
	for _, in := range []string{"", "2x6", "1d", "d", "a+1d4", "2+5", "1dM3", "1d6Mx"} {
		_, err := ParseRandom(in)
		assert.Error(t, err, "input %q should fail", in)
	}
}

func TestPropertyRandomRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := rapid.IntRange(0, 200).Draw(t, "base")
		dice := rapid.IntRange(1, 20).Draw(t, "dice")
		sides := rapid.IntRange(1, 100).Draw(t, "sides")

		in := ""
		if base > 0 {
			in = strconv.Itoa(base) + "+"
		}
		in += strconv.Itoa(dice) + "d" + strconv.Itoa(sides)

		rv, err := ParseRandom(in)
		if err != nil {
			t.Fatalf("notation %q rejected: %v", in, err)
		}
		if rv.Base != base || rv.Dice != dice || rv.Sides != sides {
			t.Fatalf("notation %q parsed as %+v", in, rv)
		}
	})
}
