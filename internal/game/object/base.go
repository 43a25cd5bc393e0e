package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Base is one object base: the per-tval template kinds inherit from.
// The finished table is indexed by tval, not by first-seen order.
type Base struct {
	Tval      int
	Name      string
	Attr      int
	BreakPerc int
	MaxStack  int
	NumSvals  int
	Flags     parse.FlagSet
	KindFlags parse.FlagSet
	ElInfo    []ElementInfo

	next *Base
}

// baseBuilder carries the running defaults alongside the record list.
// A default directive changes the template every later name directive
// copies from; already created bases keep their values.
type baseBuilder struct {
	cat      *Catalog
	defaults Base
	head     *Base
}

func newBaseParser(cat *Catalog) *parse.Parser[*baseBuilder] {
	p := parse.New(&baseBuilder{cat: cat})
	p.Register("default sym label int value", parseBaseDefaults)
	p.Register("name sym tval ?str name", parseBaseName)
	p.Register("graphics sym color", parseBaseGraphics)
	p.Register("break int breakage", parseBaseBreak)
	p.Register("max-stack int size", parseBaseMaxStack)
	p.Register("flags str flags", parseBaseFlags)
	return p
}

func parseBaseDefaults(v parse.Values, b *baseBuilder) error {
	label := v.Sym("label")
	value := v.Int("value")
	switch label {
	case "break-chance":
		b.defaults.BreakPerc = value
	case "max-stack":
		b.defaults.MaxStack = value
	default:
		return fmt.Errorf("%w: default label %q", parse.ErrUndefinedDirective, label)
	}
	return nil
}

func parseBaseName(v parse.Values, b *baseBuilder) error {
	names := b.cat.names
	kb := &Base{
		BreakPerc: b.defaults.BreakPerc,
		MaxStack:  b.defaults.MaxStack,
		Flags:     parse.NewFlagSet(uint(len(names.ObjectFlags))),
		KindFlags: parse.NewFlagSet(uint(len(names.KindFlags))),
		ElInfo:    newElementInfo(names),
		next:      b.head,
	}
	b.head = kb

	tvalName := v.Sym("tval")
	tval := names.TvalIndex(tvalName)
	if tval < 0 {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedTval, tvalName)
	}
	kb.Tval = tval
	if v.Has("name") {
		kb.Name = v.Str("name")
	}
	return nil
}

func parseBaseGraphics(v parse.Values, b *baseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	color := v.Sym("color")
	attr := b.cat.names.ColorAttr(color)
	if attr < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidColor, color)
	}
	b.head.Attr = attr
	return nil
}

func parseBaseBreak(v parse.Values, b *baseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.BreakPerc = v.Int("breakage")
	return nil
}

func parseBaseMaxStack(v parse.Values, b *baseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.MaxStack = v.Int("size")
	return nil
}

func parseBaseFlags(v parse.Values, b *baseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	kb := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("flags"), parse.ErrInvalidFlag, func(t string) bool {
		found := false
		if parse.GrabFlag(kb.Flags, names.ObjectFlags, t) {
			found = true
		}
		if parse.GrabFlag(kb.KindFlags, names.KindFlags, t) {
			found = true
		}
		if grabElementFlag(kb.ElInfo, names, t) {
			found = true
		}
		return found
	})
}

// finishBases writes each parsed base into the slot for its tval. The
// table always spans every tval; tvals without a record stay zero.
func (c *Catalog) finishBases(b *baseBuilder) error {
	c.Bases = make([]Base, len(c.names.Tvals))
	for kb := b.head; kb != nil; kb = kb.next {
		slot := kb.Tval
		c.Bases[slot] = *kb
		c.Bases[slot].next = nil
	}
	return nil
}
