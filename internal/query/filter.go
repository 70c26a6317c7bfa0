// Package query derives filtered, sorted and windowed views of fetched
// collections. Nothing here mutates its input.
package query

import (
	"strings"

	"github.com/idilsaglam/prepkit/internal/model"
)

// MatchFold reports whether the trimmed term is a case-insensitive
// substring of any field. An empty term matches everything.
func MatchFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// UserField extracts one searchable string from a user.
type UserField func(model.User) string

func ByName(u model.User) string     { return u.Name }
func ByEmail(u model.User) string    { return u.Email }
func ByUsername(u model.User) string { return u.Username }

// FilterUsers keeps the users matching term on any of fields.
func FilterUsers(users []model.User, term string, fields ...UserField) []model.User {
	out := make([]model.User, 0, len(users))
	vals := make([]string, len(fields))
	for _, u := range users {
		for i, f := range fields {
			vals[i] = f(u)
		}
		if MatchFold(term, vals...) {
			out = append(out, u)
		}
	}
	return out
}

// FilterCountries matches term against the common name.
func FilterCountries(countries []model.Country, term string) []model.Country {
	out := make([]model.Country, 0, len(countries))
	for _, c := range countries {
		if MatchFold(term, c.Name.Common) {
			out = append(out, c)
		}
	}
	return out
}

// CompletedTodos keeps the finished items.
func CompletedTodos(todos []model.Todo) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// InStockAbove keeps in-stock products priced strictly above threshold.
func InStockAbove(products []model.Product, threshold float64) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.InStock && p.Price > threshold {
			out = append(out, p)
		}
	}
	return out
}
