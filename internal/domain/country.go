package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// Country is a single record as returned by the countries API.
type Country struct {
	Name       Name                `json:"name"`
	Population int64               `json:"population"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion"`
	Capital    []string            `json:"capital"`
	Flags      Flags               `json:"flags"`
	Languages  map[string]string   `json:"languages"`
	Currencies map[string]Currency `json:"currencies"`
	Area       float64             `json:"area"`
	Borders    []BorderRef         `json:"borders"`
}

// Name holds the common and native forms of a country's name.
type Name struct {
	Common   string     `json:"common"`
	Official string     `json:"official,omitempty"`
	Native   NativeName `json:"nativeName,omitempty"`
}

// Flags references the flag images of a country.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Currency is a single entry of the currencies object.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// BorderRef is the short reference the API gives for a neighbouring country.
type BorderRef struct {
	Common   string `json:"common"`
	Official string `json:"official,omitempty"`
}

// UnmarshalJSON accepts both {"common": "..."} and a bare string.
func (b *BorderRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = BorderRef{Common: s}
		return nil
	}
	type plain BorderRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BorderRef(p)
	return nil
}

// Slug returns the route slug of the referenced country.
func (b BorderRef) Slug() string {
	return Slugify(b.Common)
}

// NativeName is the native form of a country's name. The API sends either a
// plain string or an object keyed by language code.
type NativeName string

// UnmarshalJSON resolves the object form to the common name under the
// alphabetically first language code.
func (n *NativeName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = NativeName(s)
		return nil
	}
	var byLang map[string]struct {
		Official string `json:"official"`
		Common   string `json:"common"`
	}
	if err := json.Unmarshal(data, &byLang); err != nil {
		return err
	}
	codes := make([]string, 0, len(byLang))
	for code := range byLang {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	*n = ""
	if len(codes) > 0 {
		entry := byLang[codes[0]]
		if entry.Common != "" {
			*n = NativeName(entry.Common)
		} else {
			*n = NativeName(entry.Official)
		}
	}
	return nil
}

// Slugify derives the route identifier of a name: lowercased, with every
// space replaced by a hyphen. Nothing else is stripped, so two names that
// differ only in case map to the same slug.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Slug returns the route slug of the country.
func (c Country) Slug() string {
	return Slugify(c.Name.Common)
}

// PrimaryCapital returns the first listed capital, or "" when there is none.
func (c Country) PrimaryCapital() string {
	if len(c.Capital) == 0 {
		return ""
	}
	return c.Capital[0]
}

// LanguageNames returns the language names ordered by language code.
func (c Country) LanguageNames() []string {
	codes := sortedKeys(c.Languages)
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, c.Languages[code])
	}
	return names
}

// CurrencyNames returns the currency names ordered by currency code.
func (c Country) CurrencyNames() []string {
	codes := sortedKeys(c.Currencies)
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, c.Currencies[code].Name)
	}
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
