// Package catalog holds the list-screen logic: filtering by name and
// continent, page slicing, and slug lookup over a fetched snapshot.
package catalog

import (
	"strings"

	"country-explorer/internal/domain"
)

const (
	// AllContinents disables the continent filter.
	AllContinents = "All"
	// DefaultPageSize is the number of cards per page.
	DefaultPageSize = 12
)

// Continents lists the selector options in display order.
var Continents = []string{
	AllContinents,
	"Africa",
	"North America",
	"South America",
	"Asia",
	"Europe",
	"Oceania",
}

// Criteria narrows the list screen.
type Criteria struct {
	Search    string
	Continent string
}

// Matches reports whether c satisfies the criteria.
func (cr Criteria) Matches(c domain.Country) bool {
	if cr.Continent != "" && cr.Continent != AllContinents && c.Region != cr.Continent {
		return false
	}
	if cr.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name.Common), strings.ToLower(cr.Search))
}

// Filter returns the countries matching cr, in their original order.
func Filter(countries []domain.Country, cr Criteria) []domain.Country {
	out := make([]domain.Country, 0, len(countries))
	for _, c := range countries {
		if cr.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsContinent reports whether name is one of the selector options.
func IsContinent(name string) bool {
	for _, c := range Continents {
		if c == name {
			return true
		}
	}
	return false
}

// NextContinent returns the selector option after current, wrapping around.
func NextContinent(current string) string {
	for i, c := range Continents {
		if c == current {
			return Continents[(i+1)%len(Continents)]
		}
	}
	return AllContinents
}

// FindBySlug returns the first country whose slug equals slug.
func FindBySlug(countries []domain.Country, slug string) (domain.Country, bool) {
	for _, c := range countries {
		if c.Slug() == slug {
			return c, true
		}
	}
	return domain.Country{}, false
}
