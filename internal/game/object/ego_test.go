package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

func TestEgoTable(t *testing.T) {
	c := catalogThrough(t, "ego_item")

	require.Len(t, c.Egos, 2)
	resist := c.Egos[0]
	assert.Equal(t, 0, resist.Index)
	assert.Equal(t, "of Resist Fire", resist.Name)
	assert.Equal(t, 10, resist.Rating)
	assert.Equal(t, 100, resist.AllocProb)
	assert.Equal(t, 1, resist.AllocMin)
	assert.Equal(t, 127, resist.AllocMax)

	fire := c.names.ElementIndex("FIRE")
	assert.Equal(t, 40, resist.ElInfo[fire].ResLevel)
	assert.NotZero(t, resist.ElInfo[fire].Flags&ElementIgnore)

	speed := c.Egos[1]
	mod := c.names.ModIndex("SPEED")
	assert.Equal(t, parse.Random{Dice: 1, Sides: 5, MBonus: 5}, speed.Modifiers[mod])
	assert.Equal(t, 1, speed.MinModifiers[mod])
}

func TestEgoTypeExpandsToAllKindsOfTval(t *testing.T) {
	c := catalogThrough(t, "ego_item")

	// Exactly one sword kind exists in the fixture set.
	resist := c.Egos[0]
	require.Len(t, resist.PossKinds, 1)
	assert.Equal(t, c.names.TvalIndex("sword"), c.Kinds[resist.PossKinds[0]].Tval)
}

func TestEgoTypeWithNoKinds(t *testing.T) {
	c := catalogThrough(t, "object")
	err := loadEgos(c, "name:of Nothing\ntype:rod\n")
	assert.ErrorIs(t, err, parse.ErrNoKindForEgoType)
}

func TestEgoItemLookup(t *testing.T) {
	c := catalogThrough(t, "ego_item")

	speed := c.Egos[1]
	require.Len(t, speed.PossKinds, 1)
	assert.Equal(t, "& Long Sword~", c.Kinds[speed.PossKinds[0]].Name)
}

func TestEgoItemUnrecognisedSval(t *testing.T) {
	c := catalogThrough(t, "object")
	err := loadEgos(c, "name:of Speed\nitem:sword:Claymore\n")
	assert.ErrorIs(t, err, parse.ErrUnrecognisedSval)
}

func TestEgoItemIndexZeroInvalid(t *testing.T) {
	c := catalogThrough(t, "object")
	// The curse object kind sits at index 0, which item may not name.
	err := loadEgos(c, "name:of Speed\nitem:none:<curse object>\n")
	assert.ErrorIs(t, err, parse.ErrInvalidItemNumber)
}

func TestEgoAllocBounds(t *testing.T) {
	c := catalogThrough(t, "object")
	err := loadEgos(c, "name:of Speed\nalloc:5:20 to 300\n")
	assert.ErrorIs(t, err, parse.ErrOutOfBounds)

	err = loadEgos(c, "name:of Speed\nalloc:5:-1 to 100\n")
	assert.ErrorIs(t, err, parse.ErrOutOfBounds)
}

func TestEgoNextRelinked(t *testing.T) {
	c := catalogThrough(t, "ego_item")
	assert.Same(t, &c.Egos[1], c.Egos[0].Next)
	assert.Nil(t, c.Egos[1].Next)
}
