package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

func TestKindTableOrderingAndSvals(t *testing.T) {
	c := catalogThrough(t, "object")

	require.Len(t, c.Kinds, 4)
	assert.Equal(t, "<curse object>", c.Kinds[0].Name)
	assert.Equal(t, 0, c.Kinds[0].Index)
	assert.Equal(t, "& Long Sword~", c.Kinds[1].Name)

	// Each kind claims the next sval of its tval in declaration order.
	assert.Equal(t, 1, c.Kinds[0].Sval)
	assert.Equal(t, 1, c.Kinds[1].Sval)
	assert.Equal(t, 1, c.Kinds[2].Sval)
	assert.Equal(t, 1, c.Kinds[3].Sval)
	assert.Equal(t, 1, c.Bases[c.names.TvalIndex("sword")].NumSvals)
}

func TestKindFields(t *testing.T) {
	c := catalogThrough(t, "object")

	sword := c.Kinds[1]
	assert.Equal(t, '|', sword.Glyph)
	assert.Equal(t, c.names.ColorAttr("W"), sword.Attr)
	assert.Equal(t, 5, sword.Level)
	assert.Equal(t, 130, sword.Weight)
	assert.Equal(t, 300, sword.Cost)
	assert.Equal(t, 20, sword.AllocProb)
	assert.Equal(t, 5, sword.AllocMin)
	assert.Equal(t, 40, sword.AllocMax)
	assert.Equal(t, 2, sword.DamageDice)
	assert.Equal(t, 5, sword.DamageSides)
	assert.Equal(t, "A classic long blade.", sword.Text)
	require.NotNil(t, sword.Base)
	assert.Equal(t, c.names.TvalIndex("sword"), sword.Base.Tval)

	torch := c.Kinds[2]
	assert.Equal(t, parse.Random{Base: 5000}, torch.Pval)
	burnsOut := uint(parse.LookupName(c.names.ObjectFlags, "BURNS_OUT"))
	assert.True(t, torch.Flags.Has(burnsOut))
}

func TestKindCrossReferences(t *testing.T) {
	c := catalogThrough(t, "object")

	sword := c.Kinds[1]
	require.NotNil(t, sword.Slays)
	assert.True(t, sword.Slays[0])
	require.NotNil(t, sword.Brands)
	assert.True(t, sword.Brands[0])

	amulet := c.Kinds[3]
	require.NotNil(t, amulet.Curses)
	i, _ := c.LookupCurse("siren")
	assert.Equal(t, 25, amulet.Curses[i])
}

func TestKindNextRelinked(t *testing.T) {
	c := catalogThrough(t, "object")

	assert.Same(t, c.Kinds[1], c.Kinds[0].Next)
	assert.Same(t, c.Kinds[2], c.Kinds[1].Next)
	assert.Nil(t, c.Kinds[len(c.Kinds)-1].Next)
}

func TestKindBaseKindFlagsUnioned(t *testing.T) {
	c := catalogThrough(t, "object")

	// The sword base carries SHOW_DICE; the kind inherits it at finish.
	showDice := uint(parse.LookupName(c.names.KindFlags, "SHOW_DICE"))
	assert.True(t, c.Kinds[1].KindFlags.Has(showDice))
}

func TestKindLastDirectiveWins(t *testing.T) {
	c := catalogThrough(t, "activation")
	src := "name:& Dagger~\ntype:sword\nlevel:1\nlevel:9\n"
	require.NoError(t, loadKinds(c, src))
	assert.Equal(t, 9, c.Kinds[0].Level)
}

func TestKindUnknownSlayDoesNotMutate(t *testing.T) {
	c := catalogThrough(t, "activation")
	src := "name:& Dagger~\ntype:sword\nslay:NO_SUCH_SLAY\n"
	p := newKindParser(c)
	err := run(p, src, c.finishKinds)
	assert.ErrorIs(t, err, parse.ErrUnrecognisedSlay)
	// The failed reference left the record untouched.
	assert.Nil(t, p.Builder().head.Slays)
}

func TestKindInvalidAllocation(t *testing.T) {
	c := catalogThrough(t, "activation")
	err := loadKinds(c, "name:& Dagger~\ntype:sword\nalloc:20:5 until 40\n")
	assert.ErrorIs(t, err, parse.ErrInvalidAllocation)
}

func TestKindValues(t *testing.T) {
	c := catalogThrough(t, "activation")
	src := "name:& Ring~ of Speed\ntype:ring\nvalues:SPEED[1d5M5] | RES_FIRE[20]\n"
	require.NoError(t, loadKinds(c, src))

	k := c.Kinds[0]
	speed := c.names.ModIndex("SPEED")
	assert.Equal(t, parse.Random{Dice: 1, Sides: 5, MBonus: 5}, k.Modifiers[speed])
	fire := c.names.ElementIndex("FIRE")
	assert.Equal(t, 20, k.ElInfo[fire].ResLevel)
}

func TestKindActivationLookup(t *testing.T) {
	c := catalogThrough(t, "activation")
	src := "name:& Staff~ of Cure Light\ntype:staff\nact:CURE_LIGHT\ncharges:5+1d5\n"
	require.NoError(t, loadKinds(c, src))

	k := c.Kinds[0]
	require.NotNil(t, k.Activation)
	assert.Equal(t, "CURE_LIGHT", k.Activation.Name)
	assert.Equal(t, parse.Random{Base: 5, Dice: 1, Sides: 5}, k.Charge)
}
