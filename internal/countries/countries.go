// Package countries holds the static country reference table used by
// phone-prefix pickers and listing address forms, with search helpers.
package countries

import (
	"strings"
	"unicode"

	funk "github.com/thoas/go-funk"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Country is one row of the reference table.
type Country struct {
	// Code is the ISO 3166-1 alpha-2 code, upper case.
	Code string
	// Name is the common English name.
	Name string
	// DialCode is the international dialing prefix, with leading plus.
	DialCode string
	// Currency is the ISO 4217 code of the main currency.
	Currency string
}

// Flag renders the country's flag emoji from its ISO code.
func (c Country) Flag() string {
	if len(c.Code) != 2 {
		return ""
	}

	var b strings.Builder
	for _, r := range c.Code {
		b.WriteRune(rune(0x1F1E6 + (r - 'A')))
	}

	return b.String()
}

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// fold lowercases and strips diacritics so "São Tomé" matches "sao tome".
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}

	return strings.ToLower(folded)
}

// All returns a copy of the full table, ordered by name.
func All() []Country {
	out := make([]Country, len(table))
	copy(out, table)
	return out
}

// ByCode looks a country up by its ISO code, case-insensitively.
func ByCode(code string) (Country, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	found := funk.Find(table, func(c Country) bool {
		return c.Code == code
	})
	if found == nil {
		return Country{}, false
	}

	return found.(Country), true
}

// ByDialCode returns every country sharing the given dialing prefix.
// A missing leading plus is tolerated.
func ByDialCode(dialCode string) []Country {
	dialCode = strings.TrimSpace(dialCode)
	if dialCode != "" && !strings.HasPrefix(dialCode, "+") {
		dialCode = "+" + dialCode
	}

	return funk.Filter(table, func(c Country) bool {
		return c.DialCode == dialCode
	}).([]Country)
}

// Search returns the countries whose name starts with the query,
// ignoring case and diacritics. An empty query returns the full table.
func Search(query string) []Country {
	query = fold(strings.TrimSpace(query))
	if query == "" {
		return All()
	}

	return funk.Filter(table, func(c Country) bool {
		return strings.HasPrefix(fold(c.Name), query)
	}).([]Country)
}

// DialCodes returns the distinct dialing prefixes in table order.
func DialCodes() []string {
	codes := funk.Map(table, func(c Country) string {
		return c.DialCode
	}).([]string)

	return funk.UniqString(codes)
}
