package state

import (
	"strings"

	"github.com/idilsaglam/prepkit/internal/model"
)

// SaveCountry appends c unless a country with the same common name is
// already saved. The second result reports whether c was added.
func SaveCountry(list []model.Country, c model.Country) ([]model.Country, bool) {
	for _, s := range list {
		if s.Name.Common == c.Name.Common {
			return list, false
		}
	}
	out := make([]model.Country, 0, len(list)+1)
	out = append(out, list...)
	return append(out, c), true
}

// RemoveCountry drops saved countries whose common name matches,
// ignoring case.
func RemoveCountry(list []model.Country, name string) []model.Country {
	out := make([]model.Country, 0, len(list))
	for _, c := range list {
		if !strings.EqualFold(c.Name.Common, name) {
			out = append(out, c)
		}
	}
	return out
}

// SetSavedCountries replaces the saved list.
func SetSavedCountries(list []model.Country) []model.Country {
	out := make([]model.Country, len(list))
	copy(out, list)
	return out
}
