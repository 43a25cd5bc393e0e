package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/game/data"
	"github.com/cory-johannsen/gamedata/internal/game/dice"
	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Effect is one link in a record's effect chain. Effects accumulate
// newest first; the dice, expr and message directives always attach to
// the most recently declared effect.
type Effect struct {
	Index    int
	SubType  string
	Radius   int
	Other    int
	Y, X     int
	Dice     *dice.Dice
	SelfMsg  string
	OtherMsg string
	Next     *Effect
}

// grabEffectData builds an effect from an "effect" directive line:
// the effect name plus optional subtype, radius and other parameters.
func grabEffectData(v parse.Values, names *data.Names) (*Effect, error) {
	name := v.Sym("eff")
	idx := names.EffectIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", parse.ErrInvalidEffect, name)
	}
	e := &Effect{Index: idx}
	if v.Has("type") {
		e.SubType = v.Sym("type")
	}
	if v.Has("radius") {
		e.Radius = v.Int("radius")
	}
	if v.Has("other") {
		e.Other = v.Int("other")
	}
	return e, nil
}

// attachDice parses a dice directive for the newest effect. A dice
// directive with no preceding effect is authoring shorthand, not an
// error, and is skipped.
func attachDice(e *Effect, s string) error {
	if e == nil {
		return nil
	}
	d, err := dice.Parse(s)
	if err != nil {
		return err
	}
	e.Dice = d
	return nil
}

// attachExpr binds an expr directive to the newest effect's dice.
// Missing effect or dice is a silent skip, matching attachDice.
func attachExpr(e *Effect, v parse.Values) error {
	if e == nil || e.Dice == nil {
		return nil
	}
	return bindExpression(e.Dice, v, spellBaseValue)
}

// bindExpression resolves the base-value selector named on an expr
// directive, parses the operation sequence, and binds the result to the
// named symbolic dice term.
func bindExpression(d *dice.Dice, v parse.Values, lookup func(string) (dice.BaseValueFunc, bool)) error {
	base := v.Sym("base")
	fn, ok := lookup(base)
	if !ok {
		return fmt.Errorf("%w: unknown base value %q", parse.ErrInvalidExpression, base)
	}
	expr := dice.NewExpression(base, fn)
	if err := expr.AddOperations(v.Str("expr")); err != nil {
		return err
	}
	return d.BindExpression(v.Sym("name"), expr)
}
