// Package view turns domain records into display-ready values shared by the
// web and terminal front-ends.
package view

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"country-explorer/internal/catalog"
	"country-explorer/internal/domain"
	"country-explorer/internal/service"
)

var printer = message.NewPrinter(language.English)

// Card is one entry of the list grid.
type Card struct {
	Name       string
	Slug       string
	FlagURL    string
	FlagAlt    string
	Population string
	Region     string
	Capital    string
}

// Link points at another details screen.
type Link struct {
	Name string
	Slug string
}

// Details is the details screen.
type Details struct {
	Name       string
	Slug       string
	NativeName string
	FlagURL    string
	FlagAlt    string
	Population string
	Region     string
	Subregion  string
	Capital    string
	Languages  string
	Currencies string
	Area       string
	Borders    []Link
}

// List is the list screen.
type List struct {
	Search     string
	Continent  string
	Continents []string
	Cards      []Card
	Page       int
	TotalPages int
	TotalItems int
	HasPrev    bool
	HasNext    bool
}

// FormatInt renders n with thousands separators.
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatArea renders an area in square kilometres.
func FormatArea(area float64) string {
	return printer.Sprintf("%v km²", number.Decimal(area, number.MaxFractionDigits(3)))
}

// NewCard builds a card from a country.
func NewCard(c domain.Country) Card {
	return Card{
		Name:       c.Name.Common,
		Slug:       c.Slug(),
		FlagURL:    c.Flags.PNG,
		FlagAlt:    flagAlt(c),
		Population: FormatInt(c.Population),
		Region:     c.Region,
		Capital:    c.PrimaryCapital(),
	}
}

// NewDetails builds the details screen from a country.
func NewDetails(c domain.Country) Details {
	borders := make([]Link, 0, len(c.Borders))
	for _, b := range c.Borders {
		if b.Common == "" {
			continue
		}
		borders = append(borders, Link{Name: b.Common, Slug: b.Slug()})
	}
	return Details{
		Name:       c.Name.Common,
		Slug:       c.Slug(),
		NativeName: string(c.Name.Native),
		FlagURL:    c.Flags.PNG,
		FlagAlt:    flagAlt(c),
		Population: FormatInt(c.Population),
		Region:     c.Region,
		Subregion:  c.Subregion,
		Capital:    c.PrimaryCapital(),
		Languages:  strings.Join(c.LanguageNames(), ", "),
		Currencies: strings.Join(c.CurrencyNames(), ", "),
		Area:       FormatArea(c.Area),
		Borders:    borders,
	}
}

// NewList builds the list screen from a service result.
func NewList(res service.ListResult) List {
	cards := make([]Card, 0, len(res.Page.Items))
	for _, c := range res.Page.Items {
		cards = append(cards, NewCard(c))
	}
	return List{
		Search:     res.Query.Search,
		Continent:  res.Query.Continent,
		Continents: catalog.Continents,
		Cards:      cards,
		Page:       res.Page.Number,
		TotalPages: res.Page.TotalPages,
		TotalItems: res.Page.TotalItems,
		HasPrev:    res.Page.HasPrev,
		HasNext:    res.Page.HasNext,
	}
}

func flagAlt(c domain.Country) string {
	if c.Flags.Alt != "" {
		return c.Flags.Alt
	}
	return "Flag of " + c.Name.Common
}
