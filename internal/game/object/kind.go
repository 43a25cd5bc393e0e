package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Kind is one object kind. The finished table holds pointers because
// artifact loading may append synthetic kinds after the kind finish
// phase; references into the table must survive that growth.
type Kind struct {
	Index       int
	Name        string
	Glyph       rune
	Attr        int
	Tval        int
	Sval        int
	Base        *Base
	Level       int
	Weight      int
	Cost        int
	AllocProb   int
	AllocMin    int
	AllocMax    int
	DamageDice  int
	DamageSides int
	ToH         parse.Random
	ToD         parse.Random
	AC          int
	ToA         parse.Random
	Charge      parse.Random
	GenMultProb int
	StackSize   parse.Random
	Flags       parse.FlagSet
	KindFlags   parse.FlagSet
	ElInfo      []ElementInfo
	Effect      *Effect
	Activation  *Activation
	Time        parse.Random
	Pval        parse.Random
	Modifiers   []parse.Random
	Slays       []bool
	Brands      []bool
	Curses      []int
	Text        string
	Next        *Kind

	next *Kind
}

type kindBuilder struct {
	cat  *Catalog
	head *Kind
}

func newKindParser(cat *Catalog) *parse.Parser[*kindBuilder] {
	p := parse.New(&kindBuilder{cat: cat})
	p.Register("name str name", parseKindName)
	p.Register("graphics char glyph sym color", parseKindGraphics)
	p.Register("type sym tval", parseKindType)
	p.Register("level int level", parseKindLevel)
	p.Register("weight int weight", parseKindWeight)
	p.Register("cost int cost", parseKindCost)
	p.Register("alloc int common str minmax", parseKindAlloc)
	p.Register("attack rand hd rand to-h rand to-d", parseKindAttack)
	p.Register("armor int ac rand to-a", parseKindArmor)
	p.Register("charges rand charges", parseKindCharges)
	p.Register("pile int prob rand stack", parseKindPile)
	p.Register("flags str flags", parseKindFlags)
	p.Register("effect sym eff ?sym type ?int radius ?int other", parseKindEffect)
	p.Register("effect-yx int y int x", parseKindEffectYX)
	p.Register("dice str dice", parseKindDice)
	p.Register("expr sym name sym base str expr", parseKindExpr)
	p.Register("msg_self str msg_self", parseKindMsgSelf)
	p.Register("msg_other str msg_other", parseKindMsgOther)
	p.Register("act str name", parseKindAct)
	p.Register("time rand time", parseKindTime)
	p.Register("pval rand pval", parseKindPval)
	p.Register("values str values", parseKindValues)
	p.Register("desc str text", parseKindDesc)
	p.Register("slay str code", parseKindSlay)
	p.Register("brand str code", parseKindBrand)
	p.Register("curse sym name int power", parseKindCurse)
	return p
}

func newKindRecord(cat *Catalog, name string) *Kind {
	names := cat.names
	return &Kind{
		Name:      name,
		Flags:     parse.NewFlagSet(uint(len(names.ObjectFlags))),
		KindFlags: parse.NewFlagSet(uint(len(names.KindFlags))),
		ElInfo:    newElementInfo(names),
		Modifiers: make([]parse.Random, len(names.Modifiers)),
	}
}

func parseKindName(v parse.Values, b *kindBuilder) error {
	k := newKindRecord(b.cat, v.Str("name"))
	k.next = b.head
	b.head = k
	return nil
}

func parseKindGraphics(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	color := v.Sym("color")
	attr := b.cat.names.ColorAttr(color)
	if attr < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidColor, color)
	}
	b.head.Glyph = v.Char("glyph")
	b.head.Attr = attr
	return nil
}

func parseKindType(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("tval")
	tval := b.cat.names.TvalIndex(name)
	if tval < 0 {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedTval, name)
	}
	k := b.head
	k.Tval = tval
	k.Base = &b.cat.Bases[tval]
	// Each kind of a tval claims the next sval in declaration order.
	k.Base.NumSvals++
	k.Sval = k.Base.NumSvals
	return nil
}

func parseKindLevel(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Level = v.Int("level")
	return nil
}

func parseKindWeight(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Weight = v.Int("weight")
	return nil
}

func parseKindCost(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Cost = v.Int("cost")
	return nil
}

// parseAllocBounds parses the "N to M" allocation range notation.
func parseAllocBounds(minmax string) (amin, amax int, err error) {
	if _, err := fmt.Sscanf(minmax, "%d to %d", &amin, &amax); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", parse.ErrInvalidAllocation, minmax)
	}
	return amin, amax, nil
}

func parseKindAlloc(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	amin, amax, err := parseAllocBounds(v.Str("minmax"))
	if err != nil {
		return err
	}
	b.head.AllocProb = v.Int("common")
	b.head.AllocMin = amin
	b.head.AllocMax = amax
	return nil
}

func parseKindAttack(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	hd := v.Rand("hd")
	b.head.DamageDice = hd.Dice
	b.head.DamageSides = hd.Sides
	b.head.ToH = v.Rand("to-h")
	b.head.ToD = v.Rand("to-d")
	return nil
}

func parseKindArmor(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.AC = v.Int("ac")
	b.head.ToA = v.Rand("to-a")
	return nil
}

func parseKindCharges(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Charge = v.Rand("charges")
	return nil
}

func parseKindPile(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.GenMultProb = v.Int("prob")
	b.head.StackSize = v.Rand("stack")
	return nil
}

func parseKindFlags(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	k := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("flags"), parse.ErrInvalidFlag, func(t string) bool {
		found := false
		if parse.GrabFlag(k.Flags, names.ObjectFlags, t) {
			found = true
		}
		if parse.GrabFlag(k.KindFlags, names.KindFlags, t) {
			found = true
		}
		if grabElementFlag(k.ElInfo, names, t) {
			found = true
		}
		return found
	})
}

func parseKindEffect(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	e, err := grabEffectData(v, b.cat.names)
	if err != nil {
		return err
	}
	e.Next = b.head.Effect
	b.head.Effect = e
	return nil
}

func parseKindEffectYX(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if b.head.Effect == nil {
		return nil
	}
	b.head.Effect.Y = v.Int("y")
	b.head.Effect.X = v.Int("x")
	return nil
}

func parseKindDice(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	return attachDice(b.head.Effect, v.Str("dice"))
}

func parseKindExpr(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	return attachExpr(b.head.Effect, v)
}

func parseKindMsgSelf(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if b.head.Effect == nil {
		return nil
	}
	b.head.Effect.SelfMsg = v.Str("msg_self")
	return nil
}

func parseKindMsgOther(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if b.head.Effect == nil {
		return nil
	}
	b.head.Effect.OtherMsg = v.Str("msg_other")
	return nil
}

func parseKindAct(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Activation = b.cat.FindActivation(v.Str("name"))
	return nil
}

func parseKindTime(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Time = v.Rand("time")
	return nil
}

func parseKindPval(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Pval = v.Rand("pval")
	return nil
}

func parseKindValues(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	k := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("values"), parse.ErrInvalidValue, func(t string) bool {
		if i, rv, ok := parse.GrabIndexAndRand(names.Modifiers, t); ok {
			k.Modifiers[i] = rv
			return true
		}
		if i, val, ok := parse.GrabIndexAndInt(names.Elements, "RES_", t); ok {
			k.ElInfo[i].ResLevel = val
			return true
		}
		return false
	})
}

func parseKindDesc(v parse.Values, b *kindBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Text += v.Str("text")
	return nil
}

func parseKindSlay(v parse.Values, b *kindBuilder) error {
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

func parseKindBrand(v parse.Values, b *kindBuilder) error {
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

func parseKindCurse(v parse.Values, b *kindBuilder) error {
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

// finishKinds materializes the kind table: index equals first-seen
// order, each kind unions in its base's kind flags, and Next chains
// across the array.
func (c *Catalog) finishKinds(b *kindBuilder) error {
	n := 0
	for k := b.head; k != nil; k = k.next {
		n++
	}
	c.Kinds = make([]*Kind, n)
	i := n - 1
	for k := b.head; k != nil; k = k.next {
		c.Kinds[i] = k
		k.Index = i
		k.KindFlags.Union(c.Bases[k.Tval].KindFlags)
		i--
	}
	for i, k := range c.Kinds {
		if i < n-1 {
			k.Next = c.Kinds[i+1]
		} else {
			k.Next = nil
		}
		k.next = nil
	}
	return nil
}
