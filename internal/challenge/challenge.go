// Package challenge is the catalogue of exercises and the levels each one
// ships with.
package challenge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is the unmatched-route fallback.
var ErrNotFound = errors.New("challenge: not found")

type ID string

const (
	Todo      ID = "todo"
	Stopwatch ID = "stopwatch"
	Users     ID = "users"
	Country   ID = "country"
	Map       ID = "map"
	Filter    ID = "filter"
	CatFacts  ID = "catfacts"
)

type Level string

const (
	Low   Level = "low"
	Mid   Level = "mid"
	Hard  Level = "hard"
	Redux Level = "redux"
)

// Title is the display name of the level.
func (l Level) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

func (l Level) rank() int {
	switch l {
	case Low:
		return 0
	case Mid:
		return 1
	case Hard, Redux:
		return 2
	}
	return -1
}

// AtLeast orders levels by sophistication. Redux ranks with Hard.
func (l Level) AtLeast(o Level) bool { return l.rank() >= o.rank() }

// Entry describes one challenge.
type Entry struct {
	ID      ID
	Title   string
	Summary string
	Group   string
	Levels  []Level
	Default Level
}

func (e Entry) Has(l Level) bool {
	for _, x := range e.Levels {
		if x == l {
			return true
		}
	}
	return false
}

// Route is the canonical /<challenge>/<level> path.
func (e Entry) Route(l Level) string { return "/" + string(e.ID) + "/" + string(l) }

var catalogue = []Entry{
	{ID: Todo, Title: "ToDo", Group: "Challenges", Summary: "add, toggle, edit and delete tasks",
		Levels: []Level{Low, Mid, Hard, Redux}, Default: Low},
	{ID: Stopwatch, Title: "Stopwatch", Group: "Challenges", Summary: "start, pause, laps and drift-free timing",
		Levels: []Level{Low, Mid, Hard}, Default: Low},
	{ID: Users, Title: "Users", Group: "Challenges", Summary: "fetch, search and sort a user table",
		Levels: []Level{Low, Mid, Hard}, Default: Low},
	{ID: Country, Title: "Country", Group: "Challenges", Summary: "look up countries and keep a saved list",
		Levels: []Level{Low, Mid, Hard}, Default: Mid},
	{ID: Map, Title: "Map", Group: "Methods", Summary: "render a collection item by item",
		Levels: []Level{Low, Mid, Hard}, Default: Low},
	{ID: Filter, Title: "Filter", Group: "Methods", Summary: "derive a subset of a collection",
		Levels: []Level{Low, Mid, Hard}, Default: Low},
	{ID: CatFacts, Title: "Cats Facts", Group: "Challenges", Summary: "chain two requests",
		Levels: []Level{Low, Mid}, Default: Low},
}

// All returns the catalogue in menu order.
func All() []Entry {
	out := make([]Entry, len(catalogue))
	copy(out, catalogue)
	return out
}

func Lookup(id string) (Entry, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, e := range catalogue {
		if string(e.ID) == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Resolve finds a challenge and level. An empty level picks the default.
func Resolve(id, level string) (Entry, Level, error) {
	e, err := Lookup(id)
	if err != nil {
		return Entry{}, "", err
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return e, e.Default, nil
	}
	if !e.Has(Level(level)) {
		return Entry{}, "", fmt.Errorf("%w: level %q of %s", ErrNotFound, level, e.ID)
	}
	return e, Level(level), nil
}

// ParseRoute resolves paths of the form /<challenge>/<level>.
func ParseRoute(route string) (Entry, Level, error) {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	switch len(parts) {
	case 1:
		return Resolve(parts[0], "")
	case 2:
		return Resolve(parts[0], parts[1])
	}
	return Entry{}, "", fmt.Errorf("%w: route %q", ErrNotFound, route)
}
