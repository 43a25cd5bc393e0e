package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Slay is one slay record: a damage bonus against either a monster race
// flag or a monster base, never both.
type Slay struct {
	Code       string
	Name       string
	RaceFlag   int
	Base       string
	Multiplier uint
	Power      uint
	MeleeVerb  string
	RangeVerb  string
	EspChance  uint
	EspFlag    int

	next *Slay
}

type slayBuilder struct {
	cat  *Catalog
	head *Slay
}

func newSlayParser(cat *Catalog) *parse.Parser[*slayBuilder] {
	p := parse.New(&slayBuilder{cat: cat})
	p.Register("code str code", parseSlayCode)
	p.Register("name str name", parseSlayName)
	p.Register("race-flag sym flag", parseSlayRaceFlag)
	p.Register("base sym base", parseSlayBase)
	p.Register("multiplier uint multiplier", parseSlayMultiplier)
	p.Register("power uint power", parseSlayPower)
	p.Register("melee-verb str verb", parseSlayMeleeVerb)
	p.Register("range-verb str verb", parseSlayRangeVerb)
	p.Register("esp-chance uint chance", parseSlayEspChance)
	p.Register("esp-flag sym flag", parseSlayEspFlag)
	return p
}

func parseSlayCode(v parse.Values, b *slayBuilder) error {
	b.head = &Slay{Code: v.Str("code"), next: b.head}
	return nil
}

func parseSlayName(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Name = v.Str("name")
	return nil
}

func parseSlayRaceFlag(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("flag")
	flag := parse.LookupName(b.cat.names.RaceFlags, name)
	if flag < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidFlag, name)
	}
	b.head.RaceFlag = flag

	// Flag or base, not both.
	if b.head.RaceFlag != 0 && b.head.Base != "" {
		return fmt.Errorf("%w: %q has both race-flag and base", parse.ErrInvalidSlay, b.head.Code)
	}
	return nil
}

func parseSlayBase(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("base")
	b.head.Base = name
	if !b.cat.names.HasMonsterBase(name) {
		return fmt.Errorf("%w: %q", parse.ErrInvalidMonsterBase, name)
	}

	// Flag or base, not both.
	if b.head.RaceFlag != 0 && b.head.Base != "" {
		return fmt.Errorf("%w: %q has both race-flag and base", parse.ErrInvalidSlay, b.head.Code)
	}
	return nil
}

func parseSlayMultiplier(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Multiplier = v.UInt("multiplier")
	return nil
}

func parseSlayPower(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Power = v.UInt("power")
	return nil
}

func parseSlayMeleeVerb(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.MeleeVerb = v.Str("verb")
	return nil
}

func parseSlayRangeVerb(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.RangeVerb = v.Str("verb")
	return nil
}

func parseSlayEspChance(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.EspChance = v.UInt("chance")
	return nil
}

func parseSlayEspFlag(v parse.Values, b *slayBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("flag")
	flag := parse.LookupName(b.cat.names.ObjectFlags, name)
	if flag < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidFlag, name)
	}
	b.head.EspFlag = flag
	return nil
}

func (c *Catalog) finishSlays(b *slayBuilder) error {
	n := 0
	for s := b.head; s != nil; s = s.next {
		n++
	}
	c.Slays = make([]Slay, n)
	i := n - 1
	for s := b.head; s != nil; s = s.next {
		c.Slays[i] = *s
		c.Slays[i].next = nil
		i--
	}

	c.slayByCode = make(map[string]int, n)
	for i := range c.Slays {
		c.slayByCode[c.Slays[i].Code] = i
	}
	return nil
}
