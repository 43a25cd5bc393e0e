package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// Random is a random-value: Base + Dice rolls of Sides, plus a
// level-scaled magic bonus capped at MBonus. It is the coerced form of
// the rand field type.
type Random struct {
	Base   int
	Dice   int
	Sides  int
	MBonus int
}

// ParseRandom parses random-value notation: "5", "1d6", "d6", "2+1d4",
// "1d6M4" and combinations thereof.
//
// Postcondition: Returns the parsed Random or a non-nil error for
// malformed notation.
func ParseRandom(s string) (Random, error) {
	orig := s
	var rv Random

	if i := strings.IndexByte(s, 'M'); i >= 0 {
		m, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Random{}, fmt.Errorf("bad magic bonus in random value %q", orig)
		}
		rv.MBonus = m
		s = s[:i]
	}

	if i := strings.IndexByte(s, '+'); i >= 0 {
		b, err := strconv.Atoi(s[:i])
		if err != nil {
			return Random{}, fmt.Errorf("bad base in random value %q", orig)
		}
		rv.Base = b
		s = s[i+1:]
		if !strings.ContainsRune(s, 'd') {
			return Random{}, fmt.Errorf("base without dice in random value %q", orig)
		}
	}

	if s == "" {
		return rv, nil
	}

	if i := strings.IndexByte(s, 'd'); i >= 0 {
		count := 1
		if s[:i] != "" {
			n, err := strconv.Atoi(s[:i])
			if err != nil {
				return Random{}, fmt.Errorf("bad dice count in random value %q", orig)
			}
			count = n
		}
		sides, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Random{}, fmt.Errorf("bad dice sides in random value %q", orig)
		}
		rv.Dice = count
		rv.Sides = sides
		return rv, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return Random{}, fmt.Errorf("malformed random value %q", orig)
	}
	rv.Base = n
	return rv, nil
}
