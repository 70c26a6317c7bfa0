package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/idilsaglam/prepkit/internal/model"
)

type SortKey string

const (
	SortName     SortKey = "name"
	SortEmail    SortKey = "email"
	SortUsername SortKey = "username"
)

// SortKeys lists the sortable user columns in display order.
var SortKeys = []SortKey{SortName, SortEmail, SortUsername}

func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

func (k SortKey) field() UserField {
	switch k {
	case SortEmail:
		return ByEmail
	case SortUsername:
		return ByUsername
	default:
		return ByName
	}
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the selected column and direction.
type Sort struct {
	Key SortKey
	Dir Direction
}

// DefaultSort is name ascending.
func DefaultSort() Sort { return Sort{Key: SortName, Dir: Asc} }

// Toggle flips the direction for the active key; a new key starts ascending.
func (s Sort) Toggle(key SortKey) Sort {
	if s.Key == key {
		if s.Dir == Asc {
			return Sort{Key: key, Dir: Desc}
		}
		return Sort{Key: key, Dir: Asc}
	}
	return Sort{Key: key, Dir: Asc}
}

// Marker is the header indicator for key: ▲, ▼ or nothing.
func (s Sort) Marker(key SortKey) string {
	if s.Key != key {
		return ""
	}
	if s.Dir == Desc {
		return "▼"
	}
	return "▲"
}

// SortUsers returns a stably sorted copy. Both sides are lower-cased before
// comparison.
func SortUsers(users []model.User, s Sort) []model.User {
	out := slices.Clone(users)
	field := s.Key.field()
	slices.SortStableFunc(out, func(a, b model.User) int {
		c := strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
		if s.Dir == Desc {
			return -c
		}
		return c
	})
	return out
}
