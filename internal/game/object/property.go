package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// PropertyType classifies which namespace a property's code resolves
// against.
type PropertyType int

const (
	PropertyNone PropertyType = iota
	PropertyStat
	PropertyMod
	PropertyFlag
	PropertyIgnore
	PropertyResist
	PropertyVuln
	PropertyImm
)

// PropertySubtype groups flag-type properties for display and power
// rating.
type PropertySubtype int

const (
	SubtypeNone PropertySubtype = iota
	SubtypeSustain
	SubtypeProtection
	SubtypeMisc
	SubtypeLight
	SubtypeMelee
	SubtypeBad
	SubtypeDig
	SubtypeThrow
	SubtypeOther
	SubtypeESP
)

// PropertyIDType says when the player learns the property.
type PropertyIDType int

const (
	IDOnEffect PropertyIDType = iota
	IDTimed
	IDOnWield
)

// Property is one object property record: metadata about a stat, flag,
// modifier, or element interaction used for description and power
// rating.
type Property struct {
	Name      string
	Type      PropertyType
	Subtype   PropertySubtype
	IDType    PropertyIDType
	Code      int
	Power     int
	Mult      int
	TypeMult  []int
	Adjective string
	NegAdj    string
	Msg       string
	Desc      string
	ShortDesc string

	next *Property
}

type propertyBuilder struct {
	cat  *Catalog
	head *Property
}

func newPropertyParser(cat *Catalog) *parse.Parser[*propertyBuilder] {
	p := parse.New(&propertyBuilder{cat: cat})
	p.Register("name str name", parsePropertyName)
	p.Register("code str code", parsePropertyCode)
	p.Register("type str type", parsePropertyType)
	p.Register("subtype str subtype", parsePropertySubtype)
	p.Register("id-type str id", parsePropertyIDType)
	p.Register("power int power", parsePropertyPower)
	p.Register("mult int mult", parsePropertyMult)
	p.Register("type-mult sym type int mult", parsePropertyTypeMult)
	p.Register("adjective str adj", parsePropertyAdjective)
	p.Register("neg-adjective str neg_adj", parsePropertyNegAdj)
	p.Register("msg str msg", parsePropertyMsg)
	p.Register("desc str desc", parsePropertyDesc)
	p.Register("short-desc str desc", parsePropertyShortDesc)
	return p
}

func parsePropertyName(v parse.Values, b *propertyBuilder) error {
	prop := &Property{
		Name:     v.Str("name"),
		TypeMult: make([]int, len(b.cat.names.Tvals)),
		next:     b.head,
	}
	// Every tval multiplier defaults to 1.
	for i := range prop.TypeMult {
		prop.TypeMult[i] = 1
	}
	b.head = prop
	return nil
}

func parsePropertyType(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	switch name := v.Str("type"); name {
	case "stat":
		b.head.Type = PropertyStat
	case "mod":
		b.head.Type = PropertyMod
	case "flag":
		b.head.Type = PropertyFlag
	case "ignore":
		b.head.Type = PropertyIgnore
	case "resistance":
		b.head.Type = PropertyResist
	case "vulnerability":
		b.head.Type = PropertyVuln
	case "immunity":
		b.head.Type = PropertyImm
	default:
		return fmt.Errorf("%w: type %q", parse.ErrInvalidProperty, name)
	}
	return nil
}

func parsePropertySubtype(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	switch name := v.Str("subtype"); name {
	case "sustain":
		b.head.Subtype = SubtypeSustain
	case "protection":
		b.head.Subtype = SubtypeProtection
	case "misc ability":
		b.head.Subtype = SubtypeMisc
	case "light":
		b.head.Subtype = SubtypeLight
	case "melee":
		b.head.Subtype = SubtypeMelee
	case "bad":
		b.head.Subtype = SubtypeBad
	case "dig":
		b.head.Subtype = SubtypeDig
	case "throw":
		b.head.Subtype = SubtypeThrow
	case "other":
		b.head.Subtype = SubtypeOther
	case "ESP flag":
		b.head.Subtype = SubtypeESP
	default:
		return fmt.Errorf("%w: %q", parse.ErrInvalidSubtype, name)
	}
	return nil
}

func parsePropertyIDType(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	switch name := v.Str("id"); name {
	case "on effect":
		b.head.IDType = IDOnEffect
	case "timed":
		b.head.IDType = IDTimed
	case "on wield":
		b.head.IDType = IDOnWield
	default:
		return fmt.Errorf("%w: %q", parse.ErrInvalidIDType, name)
	}
	return nil
}

// parsePropertyCode resolves the code against the namespace the type
// directive selected, so type must come first in the record.
func parsePropertyCode(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if b.head.Type == PropertyNone {
		return parse.ErrMissingPropertyType
	}
	code := v.Str("code")
	names := b.cat.names

	index := -1
	switch b.head.Type {
	case PropertyStat, PropertyMod:
		index = parse.LookupName(names.Modifiers, code)
	case PropertyFlag:
		index = parse.LookupName(names.ObjectFlags, code)
	case PropertyIgnore, PropertyResist, PropertyVuln, PropertyImm:
		index = parse.LookupName(names.Elements, code)
	}
	if index < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidPropertyCode, code)
	}
	b.head.Code = index
	return nil
}

func parsePropertyPower(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Power = v.Int("power")
	return nil
}

func parsePropertyMult(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Mult = v.Int("mult")
	return nil
}

func parsePropertyTypeMult(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("type")
	tval := b.cat.names.TvalIndex(name)
	if tval < 0 {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedTval, name)
	}
	b.head.TypeMult[tval] = v.Int("mult")
	return nil
}

func parsePropertyAdjective(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Adjective = v.Str("adj")
	return nil
}

func parsePropertyNegAdj(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.NegAdj = v.Str("neg_adj")
	return nil
}

func parsePropertyMsg(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Msg = v.Str("msg")
	return nil
}

func parsePropertyDesc(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Desc = v.Str("desc")
	return nil
}

func parsePropertyShortDesc(v parse.Values, b *propertyBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.ShortDesc = v.Str("desc")
	return nil
}

func (c *Catalog) finishProperties(b *propertyBuilder) error {
	n := 0
	for p := b.head; p != nil; p = p.next {
		n++
	}
	c.Properties = make([]Property, n)
	i := n - 1
	for p := b.head; p != nil; p = p.next {
		c.Properties[i] = *p
		c.Properties[i].next = nil
		i--
	}
	return nil
}
