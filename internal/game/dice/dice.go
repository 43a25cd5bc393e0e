// Package dice implements the dice-notation and expression sub-languages
// used by game-rule definition files: a parsed dice descriptor whose
// count, sides, and additive terms may be symbolic names bound later to
// expressions evaluated against run-time state.
package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Dice is a parsed dice descriptor: Base + Count rolls of Sides, plus
// any symbolic terms awaiting expression bindings.
//
// Invariant: after a successful Parse, Count and Sides are either fixed
// non-negative integers or refer to a named symbolic term.
type Dice struct {
	Base  int
	Count int
	Sides int

	countTerm *term
	sidesTerm *term
	addTerms  []*term
	terms     []*term
}

// term is one named symbolic slot inside a descriptor. expr stays nil
// until BindExpression attaches a deep copy of an expression.
type term struct {
	name string
	expr *Expression
}

// Parse parses dice notation into a descriptor. Supported forms combine
// '+'-separated segments: a plain integer (added to Base), "NdM" /
// "dM" dice segments, and bare symbolic names, where N and M may
// themselves be symbolic names. Examples: "2d6", "2+1d4", "1d4+L",
// "Ld8", "1dS".
//
// Postcondition: Returns a non-nil Dice, or an error wrapping
// parse.ErrInvalidDice for malformed notation.
func Parse(s string) (*Dice, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty dice string", parse.ErrInvalidDice)
	}

	d := &Dice{}
	sawDice := false
	for _, segment := range strings.Split(s, "+") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", parse.ErrInvalidDice, s)
		}

		if left, right, found := cutDice(segment); found {
			if sawDice {
				return nil, fmt.Errorf("%w: multiple dice segments in %q", parse.ErrInvalidDice, s)
			}
			sawDice = true

			switch {
			case left == "":
				d.Count = 1
			case isName(left):
				d.countTerm = d.newTerm(left)
			default:
				n, err := strconv.Atoi(left)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: bad dice count in %q", parse.ErrInvalidDice, s)
				}
				d.Count = n
			}

			if isName(right) {
				d.sidesTerm = d.newTerm(right)
			} else {
				n, err := strconv.Atoi(right)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: bad dice sides in %q", parse.ErrInvalidDice, s)
				}
				d.Sides = n
			}
			continue
		}

		if isName(segment) {
			d.addTerms = append(d.addTerms, d.newTerm(segment))
			continue
		}

		n, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed segment %q in %q", parse.ErrInvalidDice, segment, s)
		}
		d.Base += n
	}

	return d, nil
}

// cutDice splits a segment around a 'd' dice separator. A 'd' inside a
// longer symbolic name is not a separator: both halves must read as a
// number or a complete name on their own.
func cutDice(segment string) (left, right string, found bool) {
	i := strings.IndexByte(segment, 'd')
	if i < 0 || i == len(segment)-1 {
		return "", "", false
	}
	left, right = segment[:i], segment[i+1:]
	if left != "" && !isName(left) && !isNumber(left) {
		return "", "", false
	}
	if !isName(right) && !isNumber(right) {
		return "", "", false
	}
	return left, right, true
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (d *Dice) newTerm(name string) *term {
	for _, t := range d.terms {
		if t.name == name {
			return t
		}
	}
	t := &term{name: name}
	d.terms = append(d.terms, t)
	return t
}

// BindExpression attaches a deep copy of expr to the named symbolic
// term. The caller keeps ownership of expr; later mutation of it does
// not affect the descriptor.
//
// Postcondition: Returns nil, or an error wrapping
// parse.ErrUnboundExpression when the descriptor has no term called
// name.
func (d *Dice) BindExpression(name string, expr *Expression) error {
	for _, t := range d.terms {
		if t.name == name {
			t.expr = expr.Copy()
			return nil
		}
	}
	return fmt.Errorf("%w: no symbolic term %q", parse.ErrUnboundExpression, name)
}

// Evaluate rolls the descriptor: Base, plus the effective count rolls of
// the effective sides, plus every additive term, with symbolic slots
// computed from env.
//
// Precondition: src must be non-nil when any dice are rolled.
// Postcondition: Returns the total, or an error if a symbolic term was
// never bound to an expression.
func (d *Dice) Evaluate(env Env, src Source) (int, error) {
	total := d.Base

	count := d.Count
	if d.countTerm != nil {
		v, err := evalTerm(d.countTerm, env)
		if err != nil {
			return 0, err
		}
		count = v
	}
	sides := d.Sides
	if d.sidesTerm != nil {
		v, err := evalTerm(d.sidesTerm, env)
		if err != nil {
			return 0, err
		}
		sides = v
	}

	for i := 0; i < count && sides > 0; i++ {
		total += src.Intn(sides) + 1
	}

	for _, t := range d.addTerms {
		v, err := evalTerm(t, env)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

func evalTerm(t *term, env Env) (int, error) {
	if t.expr == nil {
		return 0, fmt.Errorf("%w: term %q evaluated before binding", parse.ErrUnboundExpression, t.name)
	}
	return t.expr.Evaluate(env), nil
}

// Clone returns an independent deep copy of the descriptor.
func (d *Dice) Clone() *Dice {
	if d == nil {
		return nil
	}
	out := &Dice{Base: d.Base, Count: d.Count, Sides: d.Sides}
	for _, t := range d.terms {
		nt := out.newTerm(t.name)
		if t.expr != nil {
			nt.expr = t.expr.Copy()
		}
		if d.countTerm == t {
			out.countTerm = nt
		}
		if d.sidesTerm == t {
			out.sidesTerm = nt
		}
		for _, at := range d.addTerms {
			if at == t {
				out.addTerms = append(out.addTerms, nt)
				break
			}
		}
	}
	return out
}

// HasTerm reports whether the descriptor carries a symbolic term with
// the given name.
func (d *Dice) HasTerm(name string) bool {
	for _, t := range d.terms {
		if t.name == name {
			return true
		}
	}
	return false
}
