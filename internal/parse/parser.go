// Package parse implements the directive-driven parsing framework used to
// load game-rule definition files: a grammar registry mapping directive
// names to typed field signatures and handlers, a dispatcher that coerces
// each line's arguments and invokes the matching handler against a
// strongly typed record builder, and the flag/value tokenizer shared by
// the record-type grammars.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldType identifies the coercion applied to one argument token.
type FieldType int

const (
	// TInt is a signed integer argument.
	TInt FieldType = iota
	// TUInt is an unsigned integer argument.
	TUInt
	// TChar is a single-rune argument.
	TChar
	// TSym is a bare token: no embedded field delimiter.
	TSym
	// TStr is a free string; it must be the last field and consumes the
	// remainder of the line, delimiters included.
	TStr
	// TRand is a random-value in dice/range notation.
	TRand
)

var fieldTypeNames = map[string]FieldType{
	"int":  TInt,
	"uint": TUInt,
	"char": TChar,
	"sym":  TSym,
	"str":  TStr,
	"rand": TRand,
}

type field struct {
	typ      FieldType
	name     string
	optional bool
}

// Handler processes one coerced directive line against the builder.
type Handler[B any] func(v Values, b B) error

type entry[B any] struct {
	fields  []field
	handler Handler[B]
}

// Parser dispatches directive lines for one record type. The builder is
// the typed record-under-construction context threaded through every
// handler call, replacing an opaque private slot with a compile-time
// typed one.
type Parser[B any] struct {
	entries map[string]entry[B]
	builder B
}

// New returns a Parser that threads builder through all handlers.
//
// Postcondition: Returns a non-nil Parser ready for Register calls.
func New[B any](builder B) *Parser[B] {
	return &Parser[B]{
		entries: make(map[string]entry[B]),
		builder: builder,
	}
}

// Builder returns the builder the parser was constructed with.
func (p *Parser[B]) Builder() B { return p.builder }

// Register adds a grammar entry. The spec is the directive name followed
// by "type name" pairs, e.g. "name sym tval ?str name"; a leading '?'
// marks the field optional. Grammar entries are fixed at startup, so a
// malformed spec is a programmer error and panics.
//
// Precondition: spec must name a directive not yet registered; a str
// field must be last; optional fields must be trailing.
func (p *Parser[B]) Register(spec string, h Handler[B]) {
	parts := strings.Fields(spec)
	if len(parts) == 0 || len(parts)%2 != 1 {
		panic(fmt.Sprintf("parse: malformed grammar spec %q", spec))
	}
	directive := parts[0]
	if _, dup := p.entries[directive]; dup {
		panic(fmt.Sprintf("parse: duplicate directive %q", directive))
	}
	if h == nil {
		panic(fmt.Sprintf("parse: nil handler for directive %q", directive))
	}

	var fields []field
	seenOptional := false
	for i := 1; i < len(parts); i += 2 {
		typeName := parts[i]
		f := field{name: parts[i+1]}
		if strings.HasPrefix(typeName, "?") {
			f.optional = true
			typeName = typeName[1:]
		}
		typ, ok := fieldTypeNames[typeName]
		if !ok {
			panic(fmt.Sprintf("parse: unknown field type %q in spec %q", typeName, spec))
		}
		f.typ = typ

		if seenOptional && !f.optional {
			panic(fmt.Sprintf("parse: required field %q after optional in spec %q", f.name, spec))
		}
		seenOptional = seenOptional || f.optional
		if len(fields) > 0 && fields[len(fields)-1].typ == TStr {
			panic(fmt.Sprintf("parse: str field must be last in spec %q", spec))
		}
		fields = append(fields, f)
	}

	p.entries[directive] = entry[B]{fields: fields, handler: h}
}

// ParseLine tokenizes one directive line, coerces each argument per the
// registered signature, and invokes the handler.
//
// Postcondition: Returns nil, or an error wrapping one of the package
// sentinels (ErrUndefinedDirective, ErrMissingField, ErrTypeMismatch, or
// whatever the handler returned).
func (p *Parser[B]) ParseLine(line string) error {
	directive, rest, found := strings.Cut(line, ":")
	e, ok := p.entries[directive]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUndefinedDirective, directive)
	}

	var raw []string
	if found {
		raw = strings.Split(rest, ":")
	}

	v := Values{args: make(map[string]any, len(e.fields))}
	idx := 0
	for _, f := range e.fields {
		if idx >= len(raw) {
			if f.optional {
				break
			}
			return fmt.Errorf("%w: directive %q requires field %q", ErrMissingField, directive, f.name)
		}

		var token string
		if f.typ == TStr {
			// A str field swallows the rest of the line, delimiters and all.
			token = strings.Join(raw[idx:], ":")
			idx = len(raw)
		} else {
			token = raw[idx]
			idx++
			if token == "" {
				if f.optional {
					break
				}
				return fmt.Errorf("%w: directive %q requires field %q", ErrMissingField, directive, f.name)
			}
		}

		coerced, err := coerce(f.typ, token)
		if err != nil {
			return fmt.Errorf("%w: field %q of directive %q: %v", ErrTypeMismatch, f.name, directive, err)
		}
		v.args[f.name] = coerced
	}

	return e.handler(v, p.builder)
}

func coerce(typ FieldType, token string) (any, error) {
	switch typ {
	case TInt:
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", token)
		}
		return n, nil
	case TUInt:
		n, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not an unsigned integer", token)
		}
		return uint(n), nil
	case TChar:
		if utf8.RuneCountInString(token) != 1 {
			return nil, fmt.Errorf("%q is not a single character", token)
		}
		r, _ := utf8.DecodeRuneInString(token)
		return r, nil
	case TSym:
		return token, nil
	case TStr:
		return token, nil
	case TRand:
		rv, err := ParseRandom(token)
		if err != nil {
			return nil, err
		}
		return rv, nil
	}
	return nil, fmt.Errorf("unknown field type %d", typ)
}

// Values holds one line's coerced arguments keyed by field name.
// Accessing a field that was absent or declared with another type is a
// programmer error and panics; use Has for optional fields.
type Values struct {
	args map[string]any
}

// Has reports whether the (optional) field was present on the line.
func (v Values) Has(name string) bool {
	_, ok := v.args[name]
	return ok
}

// Str returns a str field's value.
func (v Values) Str(name string) string { return get[string](v, name) }

// Sym returns a sym field's value.
func (v Values) Sym(name string) string { return get[string](v, name) }

// Int returns an int field's value.
func (v Values) Int(name string) int { return get[int](v, name) }

// UInt returns a uint field's value.
func (v Values) UInt(name string) uint { return get[uint](v, name) }

// Char returns a char field's value.
func (v Values) Char(name string) rune { return get[rune](v, name) }

// Rand returns a rand field's value.
func (v Values) Rand(name string) Random { return get[Random](v, name) }

func get[T any](v Values, name string) T {
	raw, ok := v.args[name]
	if !ok {
		panic(fmt.Sprintf("parse: access to absent field %q", name))
	}
	t, ok := raw.(T)
	if !ok {
		panic(fmt.Sprintf("parse: field %q accessed with wrong type", name))
	}
	return t
}

// Run feeds every line of r through the parser. Blank lines and lines
// starting with '#' are skipped. The first handler or dispatch error is
// returned annotated with its 1-based line number.
func Run[B any](p *Parser[B], r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if err := p.ParseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
