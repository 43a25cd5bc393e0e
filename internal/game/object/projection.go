package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// ProjectionFlag is a pvp behaviour bit on a projection.
type ProjectionFlag uint8

const (
	// ProjectionSave allows a saving throw.
	ProjectionSave ProjectionFlag = 1 << iota
	// ProjectionDamage marks a directly damaging projection.
	ProjectionDamage
	// ProjectionNonPhys marks a non-physical projection.
	ProjectionNonPhys
	// ProjectionRaw applies damage without adjustment.
	ProjectionRaw
)

// Projection is one projection/element record. The leading records must
// match the element table one to one; records beyond it are free-form.
type Projection struct {
	Index       int
	Code        string
	Name        string
	Type        string
	Desc        string
	BlindDesc   string
	LashDesc    string
	Numerator   uint
	Denominator parse.Random
	Divisor     uint
	DamageCap   uint
	MsgType     int
	Obvious     bool
	Color       int
	Flags       ProjectionFlag
	Threat      string
	ThreatFlag  int

	next *Projection
}

type projectionBuilder struct {
	cat  *Catalog
	head *Projection
}

func newProjectionParser(cat *Catalog) *parse.Parser[*projectionBuilder] {
	p := parse.New(&projectionBuilder{cat: cat})
	p.Register("code str code", parseProjectionCode)
	p.Register("name str name", parseProjectionName)
	p.Register("type str type", parseProjectionType)
	p.Register("desc str desc", parseProjectionDesc)
	p.Register("blind-desc str desc", parseProjectionBlindDesc)
	p.Register("lash-desc str desc", parseProjectionLashDesc)
	p.Register("numerator uint num", parseProjectionNumerator)
	p.Register("denominator rand denom", parseProjectionDenominator)
	p.Register("divisor uint div", parseProjectionDivisor)
	p.Register("damage-cap uint cap", parseProjectionDamageCap)
	p.Register("msgt sym type", parseProjectionMessageType)
	p.Register("obvious uint answer", parseProjectionObvious)
	p.Register("color sym color", parseProjectionColor)
	p.Register("pvp-flags ?str flags", parseProjectionPvPFlags)
	p.Register("threat str threat", parseProjectionThreat)
	p.Register("threat-flag sym flag", parseProjectionThreatFlag)
	return p
}

func parseProjectionCode(v parse.Values, b *projectionBuilder) error {
	code := v.Str("code")
	index := 0
	if b.head != nil {
		index = b.head.Index + 1
	}
	proj := &Projection{Index: index, Code: code, next: b.head}
	b.head = proj

	// The leading projections are the elements and must appear in
	// element-table order.
	if index < len(b.cat.names.Elements) && code != b.cat.names.Elements[index] {
		return fmt.Errorf("%w: code %q at index %d, want %q",
			parse.ErrElementNameMismatch, code, index, b.cat.names.Elements[index])
	}
	return nil
}

func parseProjectionName(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Name = v.Str("name")
	return nil
}

func parseProjectionType(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Type = v.Str("type")
	return nil
}

func parseProjectionDesc(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Desc = v.Str("desc")
	return nil
}

func parseProjectionBlindDesc(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.BlindDesc = v.Str("desc")
	return nil
}

func parseProjectionLashDesc(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.LashDesc = v.Str("desc")
	return nil
}

func parseProjectionNumerator(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Numerator = v.UInt("num")
	return nil
}

func parseProjectionDenominator(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Denominator = v.Rand("denom")
	return nil
}

func parseProjectionDivisor(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Divisor = v.UInt("div")
	return nil
}

func parseProjectionDamageCap(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.DamageCap = v.UInt("cap")
	return nil
}

func parseProjectionMessageType(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("type")
	idx := b.cat.names.MessageIndex(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidMessage, name)
	}
	b.head.MsgType = idx
	return nil
}

func parseProjectionObvious(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Obvious = v.UInt("answer") == 1
	return nil
}

func parseProjectionColor(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	color := v.Sym("color")
	attr := b.cat.names.ColorAttr(color)
	if attr < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidColor, color)
	}
	b.head.Color = attr
	return nil
}

func parseProjectionPvPFlags(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if !v.Has("flags") {
		return nil
	}
	proj := b.head
	return parse.ScanTokens(v.Str("flags"), parse.ErrInvalidFlag, func(t string) bool {
		switch t {
		case "SAVE":
			proj.Flags |= ProjectionSave
		case "DAMAGE":
			proj.Flags |= ProjectionDamage
		case "NON_PHYS":
			proj.Flags |= ProjectionNonPhys
		case "RAW":
			proj.Flags |= ProjectionRaw
		default:
			return false
		}
		return true
	})
}

func parseProjectionThreat(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Threat = v.Str("threat")
	return nil
}

func parseProjectionThreatFlag(v parse.Values, b *projectionBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("flag")
	flag := parse.LookupName(b.cat.names.RaceFlags, name)
	if flag < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidFlag, name)
	}
	b.head.ThreatFlag = flag
	return nil
}

// finishProjections reverse-copies the accumulated list so that index 0
// is the first record in the file.
func (c *Catalog) finishProjections(b *projectionBuilder) error {
	n := 0
	for p := b.head; p != nil; p = p.next {
		n++
	}
	c.Projections = make([]Projection, n)
	i := n - 1
	for p := b.head; p != nil; p = p.next {
		c.Projections[i] = *p
		c.Projections[i].next = nil
		i--
	}
	return nil
}
