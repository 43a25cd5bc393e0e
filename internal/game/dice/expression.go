package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// Env supplies run-time state to bound expressions. Descriptors are
// parsed at load time but evaluated much later against live state.
type Env interface {
	// Level is the acting creature's level.
	Level() int
	// Power is the effective power of the triggering item or spell.
	Power() int
}

// BaseValueFunc computes an expression's starting value from run-time
// state. Record types own their named selector tables.
type BaseValueFunc func(env Env) int

type opCode int

const (
	opAdd opCode = iota
	opSubtract
	opMultiply
	opDivide
	opNegate
)

type operation struct {
	code    opCode
	operand int
}

// Expression is a base-value selector composed with a fixed operation
// sequence, evaluated against run-time state.
type Expression struct {
	baseName string
	base     BaseValueFunc
	ops      []operation
}

// NewExpression returns an expression starting from the named selector.
//
// Precondition: base must be non-nil (an unresolvable selector name is
// the caller's ErrInvalidExpression case, decided before construction).
func NewExpression(baseName string, base BaseValueFunc) *Expression {
	if base == nil {
		panic("dice: NewExpression requires a non-nil base value selector")
	}
	return &Expression{baseName: baseName, base: base}
}

// BaseName returns the selector name the expression was built from.
func (e *Expression) BaseName() string { return e.baseName }

// AddOperations appends operations parsed from compact notation:
// whitespace-separated operator/operand pairs, e.g. "+ 1", "/ 4 - 1",
// "* 2". The lone operator "n" negates and takes no operand.
//
// Postcondition: Returns nil, or an error wrapping
// parse.ErrBadExpressionString; on error no operations are appended.
func (e *Expression) AddOperations(s string) error {
	tokens := strings.Fields(s)
	var ops []operation
	for i := 0; i < len(tokens); i++ {
		var code opCode
		switch tokens[i] {
		case "+":
			code = opAdd
		case "-":
			code = opSubtract
		case "*":
			code = opMultiply
		case "/":
			code = opDivide
		case "n", "N":
			ops = append(ops, operation{code: opNegate})
			continue
		default:
			return fmt.Errorf("%w: unknown operator %q in %q", parse.ErrBadExpressionString, tokens[i], s)
		}

		i++
		if i >= len(tokens) {
			return fmt.Errorf("%w: operator %q missing operand in %q", parse.ErrBadExpressionString, tokens[i-1], s)
		}
		operand, err := strconv.Atoi(tokens[i])
		if err != nil {
			return fmt.Errorf("%w: bad operand %q in %q", parse.ErrBadExpressionString, tokens[i], s)
		}
		if code == opDivide && operand == 0 {
			return fmt.Errorf("%w: division by zero in %q", parse.ErrBadExpressionString, s)
		}
		ops = append(ops, operation{code: code, operand: operand})
	}

	e.ops = append(e.ops, ops...)
	return nil
}

// Evaluate computes the expression against env.
func (e *Expression) Evaluate(env Env) int {
	v := e.base(env)
	for _, op := range e.ops {
		switch op.code {
		case opAdd:
			v += op.operand
		case opSubtract:
			v -= op.operand
		case opMultiply:
			v *= op.operand
		case opDivide:
			v /= op.operand
		case opNegate:
			v = -v
		}
	}
	return v
}

// Copy returns an independent copy; descriptors deep-copy bound
// expressions so callers may keep mutating their own.
func (e *Expression) Copy() *Expression {
	out := &Expression{baseName: e.baseName, base: e.base}
	out.ops = append(out.ops, e.ops...)
	return out
}
