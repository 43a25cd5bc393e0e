// Package object implements the record types loaded from the game-rule
// definition files: projections, object bases, slays, brands, curses,
// activations, object kinds, ego items, artifacts, object properties and
// power calculations. Each record type contributes a directive grammar,
// a finish phase that materializes the parsed records into an indexed
// table on the Catalog, and lookups used by later-loading tables.
package object

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/gamedata/internal/game/data"
)

// Catalog owns every finished table. It is constructed empty, populated
// table by table in the fixed load order, and torn down by Cleanup.
// Later tables resolve cross-references through the lookup methods, so
// a table must be finished before anything references into it.
type Catalog struct {
	names *data.Names

	Projections  []Projection
	Bases        []Base
	Slays        []Slay
	Brands       []Brand
	Curses       []Curse
	Activations  []Activation
	Kinds        []*Kind
	Egos         []Ego
	Artifacts    []Artifact
	Properties   []Property
	Calculations []PowerCalc

	// artifactCount excludes the reserved trailing slots.
	artifactCount int

	slayByCode   map[string]int
	brandByCode  map[string]int
	curseByName  map[string]int
	actByName    map[string]int
	tvalLight    int
	tvalNone     int
	curseKind    *Kind
}

// NewCatalog returns an empty catalog resolving names against the given
// tables.
//
// Precondition: names must be non-nil.
func NewCatalog(names *data.Names) *Catalog {
	if names == nil {
		panic("object: NewCatalog requires non-nil name tables")
	}
	return &Catalog{
		names:     names,
		tvalLight: names.TvalIndex("light"),
		tvalNone:  names.TvalIndex("none"),
	}
}

// Names returns the fixed name tables the catalog resolves against.
func (c *Catalog) Names() *data.Names { return c.names }

// ArtifactCount returns the number of parsed artifacts, excluding the
// reserved trailing slots.
func (c *Catalog) ArtifactCount() int { return c.artifactCount }

// LookupKind returns the kind with the given tval and sval, or nil.
func (c *Catalog) LookupKind(tval, sval int) *Kind {
	for _, k := range c.Kinds {
		if k.Tval == tval && k.Sval == sval {
			return k
		}
	}
	return nil
}

// LookupSval resolves a kind name within one tval to its sval. The name
// is compared against each kind's flavour-stripped name; a purely
// numeric name is taken as a literal sval.
func (c *Catalog) LookupSval(tval int, name string) (int, bool) {
	if n, err := strconv.Atoi(name); err == nil {
		return n, true
	}
	for _, k := range c.Kinds {
		if k.Tval != tval {
			continue
		}
		if strings.EqualFold(stripKindName(k.Name), name) {
			return k.Sval, true
		}
	}
	return 0, false
}

// LookupCurse resolves a curse name to its table index.
func (c *Catalog) LookupCurse(name string) (int, bool) {
	i, ok := c.curseByName[name]
	return i, ok
}

// FindActivation returns the named activation, or nil when the name is
// unknown. Unknown names are tolerated: an act directive naming a
// missing activation leaves the field unset rather than failing.
func (c *Catalog) FindActivation(name string) *Activation {
	i, ok := c.actByName[name]
	if !ok {
		return nil
	}
	return &c.Activations[i]
}

// Cleanup releases every table. Safe to call on a partially loaded or
// already cleaned catalog.
func (c *Catalog) Cleanup() {
	c.Projections = nil
	c.Bases = nil
	c.Slays = nil
	c.Brands = nil
	c.Curses = nil
	c.Activations = nil
	c.Kinds = nil
	c.Egos = nil
	c.Artifacts = nil
	c.Properties = nil
	c.Calculations = nil
	c.artifactCount = 0
	c.slayByCode = nil
	c.brandByCode = nil
	c.curseByName = nil
	c.actByName = nil
	c.curseKind = nil
}

// stripKindName removes the flavour markers kind names carry: the '&'
// article placeholder and the '~' plural marker.
func stripKindName(name string) string {
	s := strings.Map(func(r rune) rune {
		if r == '&' || r == '~' {
			return -1
		}
		return r
	}, name)
	return strings.Join(strings.Fields(s), " ")
}
