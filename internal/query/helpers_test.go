package query

import "strings"

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

var sortNames = []string{"ann", "Ann", "bob", "Bob", "carl", ""}
