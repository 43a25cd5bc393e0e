package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

func TestSlayTable(t *testing.T) {
	c := NewCatalog(testNames(t))
	require.NoError(t, loadSlays(c, srcSlays))

	require.Len(t, c.Slays, 2)
	evil := c.Slays[0]
	assert.Equal(t, "EVIL_2", evil.Code)
	assert.Equal(t, parse.LookupName(c.names.RaceFlags, "EVIL"), evil.RaceFlag)
	assert.Empty(t, evil.Base)
	assert.Equal(t, uint(2), evil.Multiplier)
	assert.Equal(t, "smite", evil.MeleeVerb)

	troll := c.Slays[1]
	assert.Equal(t, "troll", troll.Base)
	assert.Zero(t, troll.RaceFlag)

	i, ok := c.slayByCode["TROLL_3"]
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestSlayRaceFlagAndBaseExclusive(t *testing.T) {
	c := NewCatalog(testNames(t))

	err := loadSlays(c, "code:X\nrace-flag:EVIL\nbase:troll\n")
	assert.ErrorIs(t, err, parse.ErrInvalidSlay)

	err = loadSlays(c, "code:X\nbase:troll\nrace-flag:EVIL\n")
	assert.ErrorIs(t, err, parse.ErrInvalidSlay)
}

func TestSlayUnknownMonsterBase(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadSlays(c, "code:X\nbase:gazebo\n")
	assert.ErrorIs(t, err, parse.ErrInvalidMonsterBase)
}

func TestSlayUnknownRaceFlag(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadSlays(c, "code:X\nrace-flag:SHINY\n")
	assert.ErrorIs(t, err, parse.ErrInvalidFlag)
}

func TestBrandTable(t *testing.T) {
	c := NewCatalog(testNames(t))
	require.NoError(t, loadBrands(c, srcBrands))

	require.Len(t, c.Brands, 1)
	fire := c.Brands[0]
	assert.Equal(t, "FIRE_2", fire.Code)
	assert.Equal(t, "burn", fire.Verb)
	assert.Equal(t, uint(2), fire.Multiplier)
	assert.Equal(t, parse.LookupName(c.names.RaceFlags, "IM_FIRE"), fire.ResistFlag)
	assert.Equal(t, "fiery", fire.DescAdjective)

	_, ok := c.brandByCode["FIRE_2"]
	assert.True(t, ok)
}

func TestBrandUnknownResistFlag(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadBrands(c, "code:X\nresist-flag:IM_GLITTER\n")
	assert.ErrorIs(t, err, parse.ErrInvalidFlag)
}
