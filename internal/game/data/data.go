// Package data holds the fixed name tables every record grammar resolves
// against: tvals, flag namespaces, elements, modifiers, colors, effect
// and message names. The tables ship embedded in the binary and load
// before any record table, per the fixed load order.
package data

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed names.yaml
var namesYAML []byte

type colorEntry struct {
	Char string `yaml:"char"`
	Name string `yaml:"name"`
}

type namesFile struct {
	Tvals            []string     `yaml:"tvals"`
	ObjectFlags      []string     `yaml:"object_flags"`
	KindFlags        []string     `yaml:"kind_flags"`
	ElementBaseCount int          `yaml:"element_base_count"`
	Elements         []string     `yaml:"elements"`
	Modifiers        []string     `yaml:"modifiers"`
	RaceFlags        []string     `yaml:"race_flags"`
	MonsterBases     []string     `yaml:"monster_bases"`
	Effects          []string     `yaml:"effects"`
	MessageTypes     []string     `yaml:"message_types"`
	Colors           []colorEntry `yaml:"colors"`
}

// Names is the loaded, immutable set of name tables.
type Names struct {
	Tvals        []string
	ObjectFlags  []string
	KindFlags    []string
	Elements     []string
	Modifiers    []string
	RaceFlags    []string
	MonsterBases []string
	Effects      []string
	MessageTypes []string

	elementBaseCount int
	colorByChar      map[rune]int
	colorByName      map[string]int
	colorChars       []rune
}

// Load parses the embedded name tables.
//
// Postcondition: Returns a fully populated *Names or a non-nil error;
// every table is non-empty.
func Load() (*Names, error) {
	var f namesFile
	if err := yaml.Unmarshal(namesYAML, &f); err != nil {
		return nil, fmt.Errorf("parsing embedded name tables: %w", err)
	}

	n := &Names{
		Tvals:            f.Tvals,
		ObjectFlags:      f.ObjectFlags,
		KindFlags:        f.KindFlags,
		Elements:         f.Elements,
		Modifiers:        f.Modifiers,
		RaceFlags:        f.RaceFlags,
		MonsterBases:     f.MonsterBases,
		Effects:          f.Effects,
		MessageTypes:     f.MessageTypes,
		elementBaseCount: f.ElementBaseCount,
		colorByChar:      make(map[rune]int, len(f.Colors)),
		colorByName:      make(map[string]int, len(f.Colors)),
	}

	for _, table := range [][]string{
		n.Tvals, n.ObjectFlags, n.KindFlags, n.Elements,
		n.Modifiers, n.RaceFlags, n.MonsterBases, n.Effects, n.MessageTypes,
	} {
		if len(table) == 0 {
			return nil, fmt.Errorf("embedded name tables incomplete: empty table")
		}
	}
	if n.elementBaseCount <= 0 || n.elementBaseCount > len(n.Elements) {
		return nil, fmt.Errorf("embedded name tables: bad element_base_count %d", n.elementBaseCount)
	}

	for i, c := range f.Colors {
		if len([]rune(c.Char)) != 1 {
			return nil, fmt.Errorf("embedded name tables: color %d has multi-rune char %q", i, c.Char)
		}
		r := []rune(c.Char)[0]
		n.colorByChar[r] = i
		n.colorByName[strings.ToLower(c.Name)] = i
		n.colorChars = append(n.colorChars, r)
	}
	if len(n.colorChars) == 0 {
		return nil, fmt.Errorf("embedded name tables: no colors")
	}

	return n, nil
}

// TvalIndex resolves a tval name to its id, or -1.
func (n *Names) TvalIndex(name string) int { return indexOf(n.Tvals, name) }

// ElementIndex resolves an element name to its id, or -1.
func (n *Names) ElementIndex(name string) int { return indexOf(n.Elements, name) }

// ModIndex resolves a modifier name to its id, or -1.
func (n *Names) ModIndex(name string) int { return indexOf(n.Modifiers, name) }

// EffectIndex resolves an effect name to its id, or -1.
func (n *Names) EffectIndex(name string) int { return indexOf(n.Effects, name) }

// MessageIndex resolves a message type name to its id, or -1.
func (n *Names) MessageIndex(name string) int { return indexOf(n.MessageTypes, name) }

// HasMonsterBase reports whether name is a known monster base.
func (n *Names) HasMonsterBase(name string) bool { return indexOf(n.MonsterBases, name) >= 0 }

// ElementBaseCount returns how many leading elements are base elements.
func (n *Names) ElementBaseCount() int { return n.elementBaseCount }

// ColorAttr resolves a color to its attribute id: single characters
// match the short code, longer strings match the long name
// case-insensitively. Returns -1 for unknown colors.
func (n *Names) ColorAttr(s string) int {
	runes := []rune(s)
	if len(runes) == 1 {
		if i, ok := n.colorByChar[runes[0]]; ok {
			return i
		}
		return -1
	}
	if i, ok := n.colorByName[strings.ToLower(s)]; ok {
		return i
	}
	return -1
}

func indexOf(table []string, name string) int {
	for i, n := range table {
		if n == name {
			return i
		}
	}
	return -1
}
