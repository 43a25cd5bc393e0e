package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

func TestBaseTableIndexedByTval(t *testing.T) {
	c := NewCatalog(testNames(t))
	require.NoError(t, loadBases(c, srcBases))

	require.Len(t, c.Bases, len(c.names.Tvals))

	sword := c.Bases[c.names.TvalIndex("sword")]
	assert.Equal(t, "Sword~", sword.Name)
	assert.Equal(t, c.names.ColorAttr("w"), sword.Attr)

	// Tvals without a record keep the zero value.
	assert.Empty(t, c.Bases[c.names.TvalIndex("gold")].Name)
}

func TestBaseDefaultsCopied(t *testing.T) {
	c := NewCatalog(testNames(t))
	require.NoError(t, loadBases(c, srcBases))

	sword := c.Bases[c.names.TvalIndex("sword")]
	assert.Equal(t, 10, sword.BreakPerc)
	assert.Equal(t, 40, sword.MaxStack)

	// Per-record directives override the copied defaults.
	light := c.Bases[c.names.TvalIndex("light")]
	assert.Equal(t, 50, light.BreakPerc)
	amulet := c.Bases[c.names.TvalIndex("amulet")]
	assert.Equal(t, 5, amulet.MaxStack)
}

func TestBaseDefaultsNotRetroactive(t *testing.T) {
	c := NewCatalog(testNames(t))
	src := `
default:break-chance:10
name:sword:Sword~
default:break-chance:90
name:light:Light Source~
`
	require.NoError(t, loadBases(c, src))
	assert.Equal(t, 10, c.Bases[c.names.TvalIndex("sword")].BreakPerc)
	assert.Equal(t, 90, c.Bases[c.names.TvalIndex("light")].BreakPerc)
}

func TestBaseUnknownDefaultLabel(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadBases(c, "default:shininess:7\n")
	assert.ErrorIs(t, err, parse.ErrUndefinedDirective)
}

func TestBaseUnrecognisedTval(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadBases(c, "name:spaceship:Spaceship~\n")
	assert.ErrorIs(t, err, parse.ErrUnrecognisedTval)
}

func TestBaseFlagNamespaces(t *testing.T) {
	c := NewCatalog(testNames(t))
	src := "name:sword:Sword~\nflags:SHOW_DICE | REGEN | HATES_ACID\n"
	require.NoError(t, loadBases(c, src))

	sword := c.Bases[c.names.TvalIndex("sword")]
	assert.True(t, sword.KindFlags.Has(uint(parse.LookupName(c.names.KindFlags, "SHOW_DICE"))))
	assert.True(t, sword.Flags.Has(uint(parse.LookupName(c.names.ObjectFlags, "REGEN"))))
	acid := c.names.ElementIndex("ACID")
	assert.NotZero(t, sword.ElInfo[acid].Flags&ElementHates)
}
