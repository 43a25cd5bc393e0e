package parse

import "errors"

// Parse error taxonomy. Directive handlers return one of these sentinels
// (usually wrapped with fmt.Errorf("%w: ...") for context); any non-nil
// return aborts the current file and propagates to the loader.
var (
	// ErrUndefinedDirective is returned when a line's directive keyword
	// matches no registered grammar entry.
	ErrUndefinedDirective = errors.New("undefined directive")
	// ErrMissingField is returned when a line has fewer arguments than
	// the grammar entry's non-optional signature requires.
	ErrMissingField = errors.New("missing field")
	// ErrMissingRecordHeader is returned when a field directive arrives
	// before any name directive has created a record.
	ErrMissingRecordHeader = errors.New("missing record header")

	ErrUnrecognisedTval  = errors.New("unrecognised tval")
	ErrUnrecognisedSval  = errors.New("unrecognised sval")
	ErrUnrecognisedSlay  = errors.New("unrecognised slay")
	ErrUnrecognisedBrand = errors.New("unrecognised brand")
	ErrUnrecognisedCurse = errors.New("unrecognised curse")

	ErrInvalidFlag         = errors.New("invalid flag")
	ErrInvalidValue        = errors.New("invalid value")
	ErrInvalidDice         = errors.New("invalid dice")
	ErrInvalidExpression   = errors.New("invalid expression")
	ErrBadExpressionString = errors.New("bad expression string")
	ErrUnboundExpression   = errors.New("unbound expression")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrInvalidIterate      = errors.New("invalid iterate")
	ErrInvalidProperty     = errors.New("invalid property")
	ErrInvalidSubtype      = errors.New("invalid subtype")
	ErrInvalidIDType       = errors.New("invalid id type")
	ErrInvalidColor        = errors.New("invalid color")
	ErrInvalidMessage      = errors.New("invalid message type")
	ErrInvalidEffect       = errors.New("invalid effect")
	ErrInvalidAllocation   = errors.New("invalid allocation")
	ErrInvalidItemNumber   = errors.New("invalid item number")
	ErrInvalidMonsterBase  = errors.New("invalid monster base")
	ErrInvalidSlay         = errors.New("invalid slay")
	ErrOutOfBounds         = errors.New("value out of bounds")

	ErrNoKindForEgoType    = errors.New("no object kind for ego type")
	ErrNotSpecialArtifact  = errors.New("not a special artifact")
	ErrMissingPropertyType = errors.New("missing property type")
	ErrInvalidPropertyCode = errors.New("invalid property code")

	ErrElementNameMismatch = errors.New("element name mismatch")

	// ErrTypeMismatch is returned when an argument token cannot be
	// coerced to its declared field type.
	ErrTypeMismatch = errors.New("type mismatch")
)
