package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Brand is one brand record: elemental damage keyed off a monster's
// missing resistance.
type Brand struct {
	Code             string
	Name             string
	Verb             string
	Multiplier       uint
	Power            uint
	ResistFlag       int
	ActiveVerb       string
	ActiveVerbPlural string
	DescAdjective    string

	next *Brand
}

type brandBuilder struct {
	cat  *Catalog
	head *Brand
}

func newBrandParser(cat *Catalog) *parse.Parser[*brandBuilder] {
	p := parse.New(&brandBuilder{cat: cat})
	p.Register("code str code", parseBrandCode)
	p.Register("name str name", parseBrandName)
	p.Register("verb str verb", parseBrandVerb)
	p.Register("multiplier uint multiplier", parseBrandMultiplier)
	p.Register("power uint power", parseBrandPower)
	p.Register("resist-flag sym flag", parseBrandResistFlag)
	p.Register("active-verb str verb", parseBrandActiveVerb)
	p.Register("active-verb-plural str verb", parseBrandActiveVerbPlural)
	p.Register("desc-adjective str adj", parseBrandDescAdjective)
	return p
}

func parseBrandCode(v parse.Values, b *brandBuilder) error {
	b.head = &Brand{Code: v.Str("code"), next: b.head}
	return nil
}

func parseBrandName(v parse.Values, b *brandBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Name = v.Str("name")
	return nil
}

func parseBrandVerb(v parse.Values, b *brandBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Verb = v.Str("verb")
	return nil
}

func parseBrandMultiplier(v parse.Values, b *brandBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Multiplier = v.UInt("multiplier")
	return nil
}

func parseBrandPower(v parse.Values, b *brandBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Power = v.UInt("power")
	return nil
}

func parseBrandResistFlag(v parse.Values, b *brandBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("flag")
	flag := parse.LookupName(b.cat.names.RaceFlags, name)
	if flag < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidFlag, name)
	}
	b.head.ResistFlag = flag
	return nil
}

func parseBrandActiveVerb(v parse.Values, b *brandBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.ActiveVerb = v.Str("verb")
	return nil
}

func parseBrandActiveVerbPlural(v parse.Values, b *brandBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.ActiveVerbPlural = v.Str("verb")
	return nil
}

func parseBrandDescAdjective(v parse.Values, b *brandBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.DescAdjective = v.Str("adj")
	return nil
}

func (c *Catalog) finishBrands(b *brandBuilder) error {
	n := 0
	for br := b.head; br != nil; br = br.next {
		n++
	}
	c.Brands = make([]Brand, n)
	i := n - 1
	for br := b.head; br != nil; br = br.next {
		c.Brands[i] = *br
		c.Brands[i].next = nil
		i--
	}

	c.brandByCode = make(map[string]int, n)
	for i := range c.Brands {
		c.brandByCode[c.Brands[i].Code] = i
	}
	return nil
}
