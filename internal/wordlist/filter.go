package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns the filter applied to user word lists. English lists
// are limited to lowercase ASCII; other languages keep any single printable
// token.
func FilterForLang(lang string) FilterFunc {
	if strings.EqualFold(lang, "en") {
		return englishASCII
	}
	return typeable
}

// Filter returns the words accepted by keep, preserving order and dropping
// repeats.
func Filter(words []string, keep FilterFunc) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup || !keep(w) {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func englishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

// typeable rejects empty words and anything containing whitespace or
// non-printable runes, which cannot be matched key for key.
func typeable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
