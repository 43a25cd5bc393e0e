package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// FlagSet is a fixed-width bit vector keyed by an enumerated flag id.
type FlagSet struct {
	bits *bitset.BitSet
}

// NewFlagSet returns a FlagSet sized for ids [0, size).
func NewFlagSet(size uint) FlagSet {
	return FlagSet{bits: bitset.New(size)}
}

// Set marks flag id i.
func (f FlagSet) Set(i uint) { f.bits.Set(i) }

// Has reports whether flag id i is set.
func (f FlagSet) Has(i uint) bool {
	return f.bits != nil && f.bits.Test(i)
}

// Union folds every bit of other into f.
func (f FlagSet) Union(other FlagSet) {
	if other.bits == nil {
		return
	}
	f.bits.InPlaceUnion(other.bits)
}

// Clone returns an independent copy of f.
func (f FlagSet) Clone() FlagSet {
	if f.bits == nil {
		return FlagSet{}
	}
	return FlagSet{bits: f.bits.Clone()}
}

// Count returns the number of set flags.
func (f FlagSet) Count() uint {
	if f.bits == nil {
		return 0
	}
	return f.bits.Count()
}

// LookupName returns the index of name in the ordered table, or -1.
func LookupName(table []string, name string) int {
	for i, n := range table {
		if n == name {
			return i
		}
	}
	return -1
}

// GrabFlag resolves token against the ordered flag-name table and, on a
// match, sets the corresponding bit.
//
// Postcondition: Returns true iff token named a flag in table.
func GrabFlag(set FlagSet, table []string, token string) bool {
	i := LookupName(table, token)
	if i < 0 {
		return false
	}
	set.Set(uint(i))
	return true
}

// GrabIndexAndInt parses the indexed-value form "NAME[int]" (with an
// optional required prefix before NAME), resolving NAME against the
// ordered table.
//
// Postcondition: ok is true iff token had the indexed form, the prefix
// matched, NAME resolved, and the bracketed value parsed as an integer.
func GrabIndexAndInt(table []string, prefix, token string) (index, value int, ok bool) {
	name, raw, formOK := cutIndexedForm(token)
	if !formOK {
		return 0, 0, false
	}
	if prefix != "" {
		var had bool
		name, had = strings.CutPrefix(name, prefix)
		if !had {
			return 0, 0, false
		}
	}
	i := LookupName(table, name)
	if i < 0 {
		return 0, 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, 0, false
	}
	return i, v, true
}

// GrabIndexAndRand parses the indexed random-value form "NAME[rand]",
// resolving NAME against the ordered table.
func GrabIndexAndRand(table []string, token string) (index int, value Random, ok bool) {
	name, raw, formOK := cutIndexedForm(token)
	if !formOK {
		return 0, Random{}, false
	}
	i := LookupName(table, name)
	if i < 0 {
		return 0, Random{}, false
	}
	rv, err := ParseRandom(raw)
	if err != nil {
		return 0, Random{}, false
	}
	return i, rv, true
}

func cutIndexedForm(token string) (name, raw string, ok bool) {
	open := strings.IndexByte(token, '[')
	if open <= 0 || !strings.HasSuffix(token, "]") {
		return "", "", false
	}
	return token[:open], token[open+1 : len(token)-1], true
}

// SplitTokens splits a composite flag/value string on spaces and '|'.
func SplitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '|' || r == '\t'
	})
}

// ScanTokens applies match to each token of s in order. Scanning stops
// at the first token no matcher accepts; effects already applied by
// earlier tokens remain in place (partial application, no rollback).
//
// Postcondition: Returns nil, or failErr wrapped with the offending
// token.
func ScanTokens(s string, failErr error, match func(token string) bool) error {
	for _, tok := range SplitTokens(s) {
		if !match(tok) {
			return fmt.Errorf("%w: %q", failErr, tok)
		}
	}
	return nil
}
