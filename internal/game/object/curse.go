package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// CurseItem is the synthetic item payload a curse carries: the object
// state layered onto whatever the curse afflicts. Its kind reference is
// wired up once the kind table has finished loading.
type CurseItem struct {
	Kind      *Kind
	Sval      int
	ToH       int
	ToD       int
	ToA       int
	Flags     parse.FlagSet
	ElInfo    []ElementInfo
	Modifiers []int
	Effect    *Effect
	Time      parse.Random
}

// Curse is one curse record.
type Curse struct {
	Name          string
	Poss          []bool
	Obj           *CurseItem
	Conflict      string
	ConflictFlags parse.FlagSet
	Desc          string

	next *Curse
}

type curseBuilder struct {
	cat  *Catalog
	head *Curse
}

func newCurseParser(cat *Catalog) *parse.Parser[*curseBuilder] {
	p := parse.New(&curseBuilder{cat: cat})
	p.Register("name str name", parseCurseName)
	p.Register("type sym tval", parseCurseType)
	p.Register("combat int to-h int to-d int to-a", parseCurseCombat)
	p.Register("effect sym eff ?sym type ?int radius ?int other", parseCurseEffect)
	p.Register("effect-yx int y int x", parseCurseEffectYX)
	p.Register("dice str dice", parseCurseDice)
	p.Register("expr sym name sym base str expr", parseCurseExpr)
	p.Register("msg str text", parseCurseMsg)
	p.Register("time rand time", parseCurseTime)
	p.Register("flags str flags", parseCurseFlags)
	p.Register("values str values", parseCurseValues)
	p.Register("desc str desc", parseCurseDesc)
	p.Register("conflict str conf", parseCurseConflict)
	p.Register("conflict-flags str flags", parseCurseConflictFlags)
	return p
}

func parseCurseName(v parse.Values, b *curseBuilder) error {
	names := b.cat.names
	b.head = &Curse{
		Name: v.Str("name"),
		Poss: make([]bool, len(names.Tvals)),
		Obj: &CurseItem{
			Flags:     parse.NewFlagSet(uint(len(names.ObjectFlags))),
			ElInfo:    newElementInfo(names),
			Modifiers: make([]int, len(names.Modifiers)),
		},
		ConflictFlags: parse.NewFlagSet(uint(len(names.ObjectFlags))),
		next:          b.head,
	}
	return nil
}

func parseCurseType(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("tval")
	tval := b.cat.names.TvalIndex(name)
	if tval < 0 {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedTval, name)
	}
	b.head.Poss[tval] = true
	return nil
}

func parseCurseCombat(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Obj.ToH = v.Int("to-h")
	b.head.Obj.ToD = v.Int("to-d")
	b.head.Obj.ToA = v.Int("to-a")
	return nil
}

func parseCurseEffect(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	e, err := grabEffectData(v, b.cat.names)
	if err != nil {
		return err
	}
	e.Next = b.head.Obj.Effect
	b.head.Obj.Effect = e
	return nil
}

func parseCurseEffectYX(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	// No effect means there is nothing to attach to; not a parse error.
	if b.head.Obj.Effect == nil {
		return nil
	}
	b.head.Obj.Effect.Y = v.Int("y")
	b.head.Obj.Effect.X = v.Int("x")
	return nil
}

func parseCurseDice(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	return attachDice(b.head.Obj.Effect, v.Str("dice"))
}

func parseCurseExpr(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	return attachExpr(b.head.Obj.Effect, v)
}

func parseCurseMsg(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if b.head.Obj.Effect == nil {
		return nil
	}
	b.head.Obj.Effect.SelfMsg = v.Str("text")
	return nil
}

func parseCurseTime(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Obj.Time = v.Rand("time")
	return nil
}

func parseCurseFlags(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	obj := b.head.Obj
	names := b.cat.names
	return parse.ScanTokens(v.Str("flags"), parse.ErrInvalidFlag, func(t string) bool {
		found := false
		if parse.GrabFlag(obj.Flags, names.ObjectFlags, t) {
			found = true
		}
		if grabElementFlag(obj.ElInfo, names, t) {
			found = true
		}
		return found
	})
}

func parseCurseValues(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	obj := b.head.Obj
	names := b.cat.names
	return parse.ScanTokens(v.Str("values"), parse.ErrInvalidValue, func(t string) bool {
		if i, val, ok := parse.GrabIndexAndInt(names.Modifiers, "", t); ok {
			obj.Modifiers[i] = val
			return true
		}
		if i, val, ok := parse.GrabIndexAndInt(names.Elements, "RES_", t); ok {
			obj.ElInfo[i].ResLevel = val
			return true
		}
		return false
	})
}

func parseCurseDesc(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Desc += v.Str("desc")
	return nil
}

func parseCurseConflict(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	// Conflicts accumulate pipe-wrapped so each name can be matched as
	// a delimited unit.
	if b.head.Conflict == "" {
		b.head.Conflict = "|"
	}
	b.head.Conflict += v.Str("conf") + "|"
	return nil
}

func parseCurseConflictFlags(v parse.Values, b *curseBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	curse := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("flags"), parse.ErrInvalidFlag, func(t string) bool {
		return parse.GrabFlag(curse.ConflictFlags, names.ObjectFlags, t)
	})
}

func (c *Catalog) finishCurses(b *curseBuilder) error {
	n := 0
	for cu := b.head; cu != nil; cu = cu.next {
		n++
	}
	c.Curses = make([]Curse, n)
	i := n - 1
	for cu := b.head; cu != nil; cu = cu.next {
		c.Curses[i] = *cu
		c.Curses[i].next = nil
		i--
	}

	c.curseByName = make(map[string]int, n)
	for i := range c.Curses {
		c.curseByName[c.Curses[i].Name] = i
	}
	return nil
}
