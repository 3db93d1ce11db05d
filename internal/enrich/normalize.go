package enrich

import (
	"strings"
	"unicode"
)

// Generational suffixes dropped during name normalization. Nicknames and
// other variations are deliberately not handled; an unmatched name is a
// miss, not a fuzzy-match candidate.
var nameSuffixes = map[string]bool{
	"jr":  true,
	"sr":  true,
	"ii":  true,
	"iii": true,
	"iv":  true,
	"v":   true,
}

// NormalizeName case-folds a player name, strips punctuation and
// generational suffixes, and removes spacing, so "J. Smith" and
// "j smith Jr." both map to "jsmith".
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	fields := strings.Fields(b.String())
	for len(fields) > 1 && nameSuffixes[fields[len(fields)-1]] {
		fields = fields[:len(fields)-1]
	}

	return strings.Join(fields, "")
}

// NormalizeTeam case-folds and collapses whitespace in a team name.
func NormalizeTeam(team string) string {
	return strings.Join(strings.Fields(strings.ToLower(team)), " ")
}
