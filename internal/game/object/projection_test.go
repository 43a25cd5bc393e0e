package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

func TestProjectionOrdering(t *testing.T) {
	c := NewCatalog(testNames(t))
	require.NoError(t, loadProjections(c, srcProjections))

	require.Len(t, c.Projections, 2)
	assert.Equal(t, 0, c.Projections[0].Index)
	assert.Equal(t, "ACID", c.Projections[0].Code)
	assert.Equal(t, 1, c.Projections[1].Index)
	assert.Equal(t, "ELEC", c.Projections[1].Code)
	assert.Equal(t, "lightning", c.Projections[1].Name)
}

func TestProjectionFields(t *testing.T) {
	c := NewCatalog(testNames(t))
	require.NoError(t, loadProjections(c, srcProjections))

	acid := c.Projections[0]
	assert.Equal(t, uint(1), acid.Numerator)
	assert.Equal(t, parse.Random{Base: 3}, acid.Denominator)
	assert.Equal(t, uint(3), acid.Divisor)
	assert.Equal(t, uint(1600), acid.DamageCap)
	assert.Equal(t, c.names.MessageIndex("BR_ACID"), acid.MsgType)
	assert.True(t, acid.Obvious)
	assert.Equal(t, c.names.ColorAttr("s"), acid.Color)
	assert.Equal(t, ProjectionSave|ProjectionDamage, acid.Flags)

	elec := c.Projections[1]
	assert.Equal(t, parse.Random{Base: 3, Dice: 1, Sides: 4}, elec.Denominator)
	assert.Zero(t, elec.Flags)
}

func TestProjectionElementNameMismatch(t *testing.T) {
	c := NewCatalog(testNames(t))
	// The second leading record must be ELEC.
	err := loadProjections(c, "code:ACID\ncode:FIRE\n")
	assert.ErrorIs(t, err, parse.ErrElementNameMismatch)
}

func TestProjectionInvalidMessageType(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadProjections(c, "code:ACID\nmsgt:NOT_A_MESSAGE\n")
	assert.ErrorIs(t, err, parse.ErrInvalidMessage)
}

func TestProjectionInvalidColor(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadProjections(c, "code:ACID\ncolor:chartreuse\n")
	assert.ErrorIs(t, err, parse.ErrInvalidColor)
}

func TestProjectionInvalidPvPFlag(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadProjections(c, "code:ACID\npvp-flags:SAVE | WIBBLE\n")
	assert.ErrorIs(t, err, parse.ErrInvalidFlag)
}

func TestProjectionThreatFlag(t *testing.T) {
	c := NewCatalog(testNames(t))
	require.NoError(t, loadProjections(c, "code:ACID\nthreat:dissolving\nthreat-flag:IM_ACID\n"))
	assert.Equal(t, "dissolving", c.Projections[0].Threat)
	assert.Equal(t, parse.LookupName(c.names.RaceFlags, "IM_ACID"), c.Projections[0].ThreatFlag)

	err := loadProjections(c, "code:ACID\nthreat-flag:IM_GRAVITY\n")
	assert.ErrorIs(t, err, parse.ErrInvalidFlag)
}

func TestProjectionDirectiveBeforeHeader(t *testing.T) {
	c := NewCatalog(testNames(t))
	err := loadProjections(c, "name:acid\n")
	assert.ErrorIs(t, err, parse.ErrMissingRecordHeader)
}
