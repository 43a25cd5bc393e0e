package object

import (
	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Activation is one activation record. After the finish phase each
// element's Next points at the following table element, so the table
// doubles as a traversal chain.
type Activation struct {
	Index   int
	Name    string
	Aim     bool
	Power   uint
	Effect  *Effect
	Message string
	Desc    string
	Next    *Activation

	next *Activation
}

type activationBuilder struct {
	cat  *Catalog
	head *Activation
}

func newActivationParser(cat *Catalog) *parse.Parser[*activationBuilder] {
	p := parse.New(&activationBuilder{cat: cat})
	p.Register("name str name", parseActName)
	p.Register("aim uint aim", parseActAim)
	p.Register("power uint power", parseActPower)
	p.Register("effect sym eff ?sym type ?int radius ?int other", parseActEffect)
	p.Register("effect-yx int y int x", parseActEffectYX)
	p.Register("dice str dice", parseActDice)
	p.Register("expr sym name sym base str expr", parseActExpr)
	p.Register("msg_self str msg_self", parseActMsgSelf)
	p.Register("msg_other str msg_other", parseActMsgOther)
	p.Register("msg str msg", parseActMsg)
	p.Register("desc str desc", parseActDesc)
	return p
}

func parseActName(v parse.Values, b *activationBuilder) error {
	b.head = &Activation{Name: v.Str("name"), next: b.head}
	return nil
}

func parseActAim(v parse.Values, b *activationBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Aim = v.UInt("aim") != 0
	return nil
}

func parseActPower(v parse.Values, b *activationBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Power = v.UInt("power")
	return nil
}

func parseActEffect(v parse.Values, b *activationBuilder) error {
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

func parseActEffectYX(v parse.Values, b *activationBuilder) error {
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

func parseActDice(v parse.Values, b *activationBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	return attachDice(b.head.Effect, v.Str("dice"))
}

func parseActExpr(v parse.Values, b *activationBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	return attachExpr(b.head.Effect, v)
}

func parseActMsgSelf(v parse.Values, b *activationBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if b.head.Effect == nil {
		return nil
	}
	b.head.Effect.SelfMsg = v.Str("msg_self")
	return nil
}

func parseActMsgOther(v parse.Values, b *activationBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if b.head.Effect == nil {
		return nil
	}
	b.head.Effect.OtherMsg = v.Str("msg_other")
	return nil
}

func parseActMsg(v parse.Values, b *activationBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Message += v.Str("msg")
	return nil
}

func parseActDesc(v parse.Values, b *activationBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Desc += v.Str("desc")
	return nil
}

// finishActivations materializes the table and re-links Next across the
// array: element i's Next is element i+1, nil for the last.
func (c *Catalog) finishActivations(b *activationBuilder) error {
	n := 0
	for a := b.head; a != nil; a = a.next {
		n++
	}
	c.Activations = make([]Activation, n)
	i := n - 1
	for a := b.head; a != nil; a = a.next {
		c.Activations[i] = *a
		c.Activations[i].Index = i
		c.Activations[i].next = nil
		i--
	}
	for i := range c.Activations {
		if i < n-1 {
			c.Activations[i].Next = &c.Activations[i+1]
		} else {
			c.Activations[i].Next = nil
		}
	}

	c.actByName = make(map[string]int, n)
	for i := range c.Activations {
		c.actByName[c.Activations[i].Name] = i
	}
	return nil
}
