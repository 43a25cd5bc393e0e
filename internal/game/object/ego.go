package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Ego is one ego-item record. PossKinds holds the kind-table indices
// the ego may be applied to; a type directive expands to every kind of
// that tval at parse time.
type Ego struct {
	Index        int
	Name         string
	Rating       int
	AllocProb    int
	AllocMin     int
	AllocMax     int
	PossKinds    []int
	ToH          parse.Random
	ToD          parse.Random
	ToA          parse.Random
	MinToH       int
	MinToD       int
	MinToA       int
	Activation   *Activation
	Time         parse.Random
	Flags        parse.FlagSet
	KindFlags    parse.FlagSet
	ElInfo       []ElementInfo
	Modifiers    []parse.Random
	MinModifiers []int
	Slays        []bool
	Brands       []bool
	Curses       []int
	Text         string
	Next         *Ego

	next *Ego
}

type egoBuilder struct {
	cat  *Catalog
	head *Ego
}

func newEgoParser(cat *Catalog) *parse.Parser[*egoBuilder] {
	p := parse.New(&egoBuilder{cat: cat})
	p.Register("name str name", parseEgoName)
	p.Register("info int cost int rating", parseEgoInfo)
	p.Register("alloc int common str minmax", parseEgoAlloc)
	p.Register("type sym tval", parseEgoType)
	p.Register("item sym tval sym sval", parseEgoItem)
	p.Register("combat rand th rand td rand ta", parseEgoCombat)
	p.Register("min-combat int th int td int ta", parseEgoMinCombat)
	p.Register("act str name", parseEgoAct)
	p.Register("time rand time", parseEgoTime)
	p.Register("flags ?str flags", parseEgoFlags)
	p.Register("values str values", parseEgoValues)
	p.Register("min-values str min_values", parseEgoMinValues)
	p.Register("desc str text", parseEgoDesc)
	p.Register("slay str code", parseEgoSlay)
	p.Register("brand str code", parseEgoBrand)
	p.Register("curse sym name int power", parseEgoCurse)
	return p
}

func parseEgoName(v parse.Values, b *egoBuilder) error {
	names := b.cat.names
	b.head = &Ego{
		Name:         v.Str("name"),
		Flags:        parse.NewFlagSet(uint(len(names.ObjectFlags))),
		KindFlags:    parse.NewFlagSet(uint(len(names.KindFlags))),
		ElInfo:       newElementInfo(names),
		Modifiers:    make([]parse.Random, len(names.Modifiers)),
		MinModifiers: make([]int, len(names.Modifiers)),
		next:         b.head,
	}
	return nil
}

func parseEgoInfo(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Rating = v.Int("rating")
	return nil
}

func parseEgoAlloc(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	amin, amax, err := parseAllocBounds(v.Str("minmax"))
	if err != nil {
		return err
	}
	if amin < 0 || amin > 255 || amax < 0 || amax > 255 {
		return fmt.Errorf("%w: allocation bounds %d to %d", parse.ErrOutOfBounds, amin, amax)
	}
	b.head.AllocProb = v.Int("common")
	b.head.AllocMin = amin
	b.head.AllocMax = amax
	return nil
}

func parseEgoType(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("tval")
	tval := b.cat.names.TvalIndex(name)
	if tval < 0 {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedTval, name)
	}

	found := false
	for _, k := range b.cat.Kinds {
		if k.Tval != tval {
			continue
		}
		b.head.PossKinds = append(b.head.PossKinds, k.Index)
		found = true
	}
	if !found {
		return fmt.Errorf("%w: tval %q", parse.ErrNoKindForEgoType, name)
	}
	return nil
}

func parseEgoItem(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	tvalName := v.Sym("tval")
	tval := b.cat.names.TvalIndex(tvalName)
	if tval < 0 {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedTval, tvalName)
	}
	svalName := v.Sym("sval")
	sval, ok := b.cat.LookupSval(tval, svalName)
	if !ok {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedSval, svalName)
	}
	k := b.cat.LookupKind(tval, sval)
	if k == nil || k.Index <= 0 {
		return fmt.Errorf("%w: %s:%s", parse.ErrInvalidItemNumber, tvalName, svalName)
	}
	b.head.PossKinds = append(b.head.PossKinds, k.Index)
	return nil
}

func parseEgoCombat(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.ToH = v.Rand("th")
	b.head.ToD = v.Rand("td")
	b.head.ToA = v.Rand("ta")
	return nil
}

func parseEgoMinCombat(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.MinToH = v.Int("th")
	b.head.MinToD = v.Int("td")
	b.head.MinToA = v.Int("ta")
	return nil
}

func parseEgoAct(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Activation = b.cat.FindActivation(v.Str("name"))
	return nil
}

func parseEgoTime(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Time = v.Rand("time")
	return nil
}

func parseEgoFlags(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if !v.Has("flags") {
		return nil
	}
	e := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("flags"), parse.ErrInvalidFlag, func(t string) bool {
		found := false
		if parse.GrabFlag(e.Flags, names.ObjectFlags, t) {
			found = true
		}
		if parse.GrabFlag(e.KindFlags, names.KindFlags, t) {
			found = true
		}
		if grabElementFlag(e.ElInfo, names, t) {
			found = true
		}
		return found
	})
}

func parseEgoValues(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	e := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("values"), parse.ErrInvalidValue, func(t string) bool {
		if i, rv, ok := parse.GrabIndexAndRand(names.Modifiers, t); ok {
			e.Modifiers[i] = rv
			return true
		}
		if i, val, ok := parse.GrabIndexAndInt(names.Elements, "RES_", t); ok {
			e.ElInfo[i].ResLevel = val
			return true
		}
		return false
	})
}

func parseEgoMinValues(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	e := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("min_values"), parse.ErrInvalidValue, func(t string) bool {
		if i, val, ok := parse.GrabIndexAndInt(names.Modifiers, "", t); ok {
			e.MinModifiers[i] = val
			return true
		}
		return false
	})
}

func parseEgoDesc(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Text += v.Str("text")
	return nil
}

func parseEgoSlay(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	code := v.Str("code")
	i, ok := b.cat.slayByCode[code]
	if !ok {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedSlay, code)
	}
	if b.head.Slays == nil {
		b.head.Slays = make([]bool, len(b.cat.Slays))
	}
	b.head.Slays[i] = true
	return nil
}

func parseEgoBrand(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	code := v.Str("code")
	i, ok := b.cat.brandByCode[code]
	if !ok {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedBrand, code)
	}
	if b.head.Brands == nil {
		b.head.Brands = make([]bool, len(b.cat.Brands))
	}
	b.head.Brands[i] = true
	return nil
}

func parseEgoCurse(v parse.Values, b *egoBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("name")
	i, ok := b.cat.LookupCurse(name)
	if !ok {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedCurse, name)
	}
	if b.head.Curses == nil {
		b.head.Curses = make([]int, len(b.cat.Curses))
	}
	b.head.Curses[i] = v.Int("power")
	return nil
}

func (c *Catalog) finishEgos(b *egoBuilder) error {
	n := 0
	for e := b.head; e != nil; e = e.next {
		n++
	}
	c.Egos = make([]Ego, n)
	i := n - 1
	for e := b.head; e != nil; e = e.next {
		c.Egos[i] = *e
		c.Egos[i].Index = i
		c.Egos[i].next = nil
		i--
	}
	for i := range c.Egos {
		if i < n-1 {
			c.Egos[i].Next = &c.Egos[i+1]
		} else {
			c.Egos[i].Next = nil
		}
	}
	return nil
}
