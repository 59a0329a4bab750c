package normalize

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Scorer rates the similarity of two strings from 0 to 100
type Scorer func(a, b string) int

// Ratio is the Levenshtein similarity of the raw strings
func Ratio(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * float64(total-dist) / float64(total)))
}

// TokenSortRatio lower-cases both strings, replaces punctuation with spaces,
// sorts the words and then scores with Ratio. Word order and case never
// matter, so "new york" and "YORK, NEW" score 100.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	tokens := strings.Fields(cleaned)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
