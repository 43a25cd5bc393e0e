package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/game/dice"
	"github.com/cory-johannsen/gamedata/internal/parse"
)

// PowerOperation says how a calculation's result folds into the running
// power total.
type PowerOperation int

const (
	PowerAdd PowerOperation = iota
	PowerAddIfPositive
	PowerSquareAddIfPositive
	PowerMultiply
	PowerDivide
)

// PowerIterate describes the property family a calculation repeats
// over. Max is the number of iterations; a non-iterating calculation
// has PropertyNone and a max of 1.
type PowerIterate struct {
	PropertyType PropertyType
	Max          int
}

// PowerCalc is one object power calculation record.
type PowerCalc struct {
	Name      string
	PossKinds []int
	Dice      *dice.Dice
	Operation PowerOperation
	Iterate   PowerIterate
	ApplyTo   string

	next *PowerCalc
}

type powerBuilder struct {
	cat  *Catalog
	head *PowerCalc
}

func newPowerParser(cat *Catalog) *parse.Parser[*powerBuilder] {
	p := parse.New(&powerBuilder{cat: cat})
	p.Register("name str name", parsePowerName)
	p.Register("type sym tval", parsePowerType)
	p.Register("item sym tval sym sval", parsePowerItem)
	p.Register("dice str dice", parsePowerDice)
	p.Register("expr sym name sym base str expr", parsePowerExpr)
	p.Register("operation str op", parsePowerOperation)
	p.Register("iterate str iter", parsePowerIterate)
	p.Register("apply-to str apply", parsePowerApplyTo)
	return p
}

func parsePowerName(v parse.Values, b *powerBuilder) error {
	b.head = &PowerCalc{
		Name:    v.Str("name"),
		Iterate: PowerIterate{PropertyType: PropertyNone, Max: 1},
		next:    b.head,
	}
	return nil
}

// parsePowerType restricts the calculation to every kind of a tval.
// A tval with no kinds yet is fine; the restriction is simply empty.
func parsePowerType(v parse.Values, b *powerBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("tval")
	tval := b.cat.names.TvalIndex(name)
	if tval < 0 {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedTval, name)
	}
	for _, k := range b.cat.Kinds {
		if k.Tval != tval {
			continue
		}
		b.head.PossKinds = append(b.head.PossKinds, k.Index)
	}
	return nil
}

func parsePowerItem(v parse.Values, b *powerBuilder) error {
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

// parsePowerDice attaches dice directly to the calculation; power
// records have no effect chain.
func parsePowerDice(v parse.Values, b *powerBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	d, err := dice.Parse(v.Str("dice"))
	if err != nil {
		return err
	}
	b.head.Dice = d
	return nil
}

func parsePowerExpr(v parse.Values, b *powerBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	// An expr with no dice is authoring shorthand, not an error.
	if b.head.Dice == nil {
		return nil
	}
	return bindExpression(b.head.Dice, v, powerBaseValue)
}

func parsePowerOperation(v parse.Values, b *powerBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	switch op := v.Str("op"); op {
	case "add":
		b.head.Operation = PowerAdd
	case "add if positive":
		b.head.Operation = PowerAddIfPositive
	case "square and add if positive":
		b.head.Operation = PowerSquareAddIfPositive
	case "multiply":
		b.head.Operation = PowerMultiply
	case "divide":
		b.head.Operation = PowerDivide
	default:
		return fmt.Errorf("%w: %q", parse.ErrInvalidOperation, op)
	}
	return nil
}

func parsePowerIterate(v parse.Values, b *powerBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	names := b.cat.names
	switch iter := v.Str("iter"); iter {
	case "modifier":
		b.head.Iterate = PowerIterate{PropertyMod, len(names.Modifiers)}
	case "resistance":
		b.head.Iterate = PowerIterate{PropertyResist, len(names.Elements)}
	case "vulnerability":
		b.head.Iterate = PowerIterate{PropertyVuln, names.ElementBaseCount()}
	case "immunity":
		b.head.Iterate = PowerIterate{PropertyImm, names.ElementBaseCount()}
	case "ignore":
		b.head.Iterate = PowerIterate{PropertyIgnore, names.ElementBaseCount()}
	case "flag":
		b.head.Iterate = PowerIterate{PropertyFlag, len(names.ObjectFlags)}
	default:
		return fmt.Errorf("%w: %q", parse.ErrInvalidIterate, iter)
	}
	return nil
}

func parsePowerApplyTo(v parse.Values, b *powerBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.ApplyTo = v.Str("apply")
	return nil
}

func (c *Catalog) finishPowers(b *powerBuilder) error {
	n := 0
	for pc := b.head; pc != nil; pc = pc.next {
		n++
	}
	c.Calculations = make([]PowerCalc, n)
	i := n - 1
	for pc := b.head; pc != nil; pc = pc.next {
		c.Calculations[i] = *pc
		c.Calculations[i].next = nil
		i--
	}
	return nil
}
