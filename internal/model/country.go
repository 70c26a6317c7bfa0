package model

import "strings"

// Country mirrors the restcountries v3.1 fields the gallery asks for.
type Country struct {
	Name       CountryName `json:"name"`
	Capital    []string    `json:"capital,omitempty"`
	Population int64       `json:"population"`
	Flags      Flags       `json:"flags"`
}

type CountryName struct {
	Common string `json:"common"`
}

type Flags struct {
	SVG string `json:"svg"`
}

// PrimaryCapital returns the first listed capital, or N/A.
func (c Country) PrimaryCapital() string {
	if len(c.Capital) == 0 || c.Capital[0] == "" {
		return "N/A"
	}
	return c.Capital[0]
}

// Capitals joins every capital; some countries have more than one.
func (c Country) Capitals() string {
	if len(c.Capital) == 0 {
		return "N/A"
	}
	return strings.Join(c.Capital, ", ")
}
