package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedTables(t *testing.T) {
	names, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, names.Tvals)
	assert.NotEmpty(t, names.ObjectFlags)
	assert.NotEmpty(t, names.KindFlags)
	assert.NotEmpty(t, names.Elements)
	assert.NotEmpty(t, names.Modifiers)
	assert.NotEmpty(t, names.Effects)

	// The artifact and curse machinery depend on these names existing.
	assert.GreaterOrEqual(t, names.TvalIndex("light"), 0)
	assert.Equal(t, 0, names.TvalIndex("none"))
	assert.GreaterOrEqual(t, indexOf(names.KindFlags, "INSTA_ART"), 0)
}

func TestTvalIndex(t *testing.T) {
	names, err := Load()
	require.NoError(t, err)

	sword := names.TvalIndex("sword")
	assert.Greater(t, sword, 0)
	assert.Equal(t, "sword", names.Tvals[sword])
	assert.Equal(t, -1, names.TvalIndex("spaceship"))
}

func TestElementBaseCount(t *testing.T) {
	names, err := Load()
	require.NoError(t, err)

	n := names.ElementBaseCount()
	assert.Greater(t, n, 0)
	assert.LessOrEqual(t, n, len(names.Elements))

	// The base elements lead the table.
	assert.Equal(t, "ACID", names.Elements[0])
}

func TestColorAttr(t *testing.T) {
	names, err := Load()
	require.NoError(t, err)

	byChar := names.ColorAttr("r")
	require.GreaterOrEqual(t, byChar, 0)

	byName := names.ColorAttr("Red")
	assert.Equal(t, byChar, byName)

	byNameFolded := names.ColorAttr("light green")
	assert.GreaterOrEqual(t, byNameFolded, 0)

	assert.Equal(t, -1, names.ColorAttr("chartreuse"))
	assert.Equal(t, -1, names.ColorAttr("q"))
}

func TestLookupIndexes(t *testing.T) {
	names, err := Load()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, names.ElementIndex("FIRE"), 0)
	assert.Equal(t, -1, names.ElementIndex("fire"))
	assert.GreaterOrEqual(t, names.ModIndex("SPEED"), 0)
	assert.GreaterOrEqual(t, names.EffectIndex("TIMED_INC"), 0)
	assert.GreaterOrEqual(t, names.MessageIndex("BR_FIRE"), 0)
	assert.True(t, names.HasMonsterBase("troll"))
	assert.False(t, names.HasMonsterBase("spaceship"))
}
