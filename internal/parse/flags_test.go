package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flagTable = []string{"NONE", "SUST_STR", "REGEN", "FREE_ACT"}

func TestGrabFlag(t *testing.T) {
	set := NewFlagSet(uint(len(flagTable)))
	assert.True(t, GrabFlag(set, flagTable, "REGEN"))
	assert.True(t, set.Has(2))
	assert.False(t, set.Has(1))
	assert.False(t, GrabFlag(set, flagTable, "BOGUS"))
}

func TestFlagSetUnionAndClone(t *testing.T) {
	a := NewFlagSet(8)
	b := NewFlagSet(8)
	a.Set(1)
	b.Set(3)

	clone := a.Clone()
	a.Union(b)
	assert.True(t, a.Has(1))
	assert.True(t, a.Has(3))
	assert.Equal(t, uint(2), a.Count())

	// The clone is independent of the union.
	assert.True(t, clone.Has(1))
	assert.False(t, clone.Has(3))
}

func TestGrabIndexAndInt(t *testing.T) {
	table := []string{"STR", "INT", "STEALTH"}

	i, v, ok := GrabIndexAndInt(table, "", "STEALTH[3]")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, 3, v)

	i, v, ok = GrabIndexAndInt(table, "", "STR[-2]")
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, -2, v)

	_, _, ok = GrabIndexAndInt(table, "", "BOGUS[1]")
	assert.False(t, ok)
	_, _, ok = GrabIndexAndInt(table, "", "STR[x]")
	assert.False(t, ok)
	_, _, ok = GrabIndexAndInt(table, "", "STR")
	assert.False(t, ok)
}

func TestGrabIndexAndIntPrefix(t *testing.T) {
	table := []string{"ACID", "ELEC", "FIRE"}

	i, v, ok := GrabIndexAndInt(table, "RES_", "RES_FIRE[40]")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, 40, v)

	// Prefix is required when given.
	_, _, ok = GrabIndexAndInt(table, "RES_", "FIRE[40]")
	assert.False(t, ok)
}

func TestGrabIndexAndRand(t *testing.T) {
	table := []string{"STR", "SPEED"}

	i, rv, ok := GrabIndexAndRand(table, "SPEED[1d4M2]")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, Random{Dice: 1, Sides: 4, MBonus: 2}, rv)

	_, _, ok = GrabIndexAndRand(table, "SPEED[1x4]")
	assert.False(t, ok)
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t,
		[]string{"REGEN", "FREE_ACT", "SUST_STR"},
		SplitTokens("REGEN | FREE_ACT\tSUST_STR"))
	assert.Empty(t, SplitTokens("  "))
}

func TestScanTokensPartialApplication(t *testing.T) {
	set := NewFlagSet(uint(len(flagTable)))
	err := ScanTokens("REGEN | BOGUS | FREE_ACT", ErrInvalidFlag, func(tok string) bool {
		return GrabFlag(set, flagTable, tok)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFlag)
	assert.Contains(t, err.Error(), "BOGUS")

	// Tokens before the failure stay applied; tokens after it were never
	// reached.
	assert.True(t, set.Has(2))
	assert.False(t, set.Has(3))
}
