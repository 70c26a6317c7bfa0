package tui

import (
	"embed"
	"fmt"
	"strings"

	"github.com/idilsaglam/prepkit/internal/challenge"
)

// The programs show their own implementation as a teaching aid.
//
//go:embed todo.go stopwatch.go users.go country.go arrays.go catfacts.go
var sources embed.FS

var sourceFiles = map[challenge.ID]string{
	challenge.Todo:      "todo.go",
	challenge.Stopwatch: "stopwatch.go",
	challenge.Users:     "users.go",
	challenge.Country:   "country.go",
	challenge.Map:       "arrays.go",
	challenge.Filter:    "arrays.go",
	challenge.CatFacts:  "catfacts.go",
}

// SourceFile names the file implementing a challenge.
func SourceFile(id challenge.ID) string { return sourceFiles[id] }

// Source returns the Go source of a challenge, or "" for an unknown id.
func Source(id challenge.ID) string {
	name, ok := sourceFiles[id]
	if !ok {
		return ""
	}
	b, err := sources.ReadFile(name)
	if err != nil {
		return ""
	}
	return string(b)
}

func numbered(src string) string {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, ln := range lines {
		fmt.Fprintf(&b, "%*d  %s\n", width, i+1, strings.ReplaceAll(ln, "\t", "    "))
	}
	return b.String()
}
