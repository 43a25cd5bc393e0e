package object

import (
	"strings"

	"github.com/cory-johannsen/gamedata/internal/game/data"
)

// ElementFlag marks how a record interacts with one element.
type ElementFlag uint8

const (
	// ElementIgnore means the item shrugs off this element.
	ElementIgnore ElementFlag = 1 << iota
	// ElementHates means the item is destroyed by this element.
	ElementHates
)

// ElementInfo is one record's per-element state: a resistance level and
// the ignore/hate markers.
type ElementInfo struct {
	ResLevel int
	Flags    ElementFlag
}

func newElementInfo(names *data.Names) []ElementInfo {
	return make([]ElementInfo, len(names.Elements))
}

// grabElementFlag matches the IGNORE_ and HATES_ prefixed element forms
// against the element table, setting the marker on a match.
func grabElementFlag(info []ElementInfo, names *data.Names, token string) bool {
	prefix, suffix, found := strings.Cut(token, "_")
	if !found {
		return false
	}
	i := names.ElementIndex(suffix)
	if i < 0 {
		return false
	}
	switch prefix {
	case "IGNORE":
		info[i].Flags |= ElementIgnore
		return true
	case "HATES":
		info[i].Flags |= ElementHates
		return true
	}
	return false
}
