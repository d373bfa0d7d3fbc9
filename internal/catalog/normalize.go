package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds s to lower-case ASCII-ish words: accents are removed and
// every run of non-alphanumeric characters becomes a single space.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	space := true
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// ContainsPhrase reports whether phrase occurs in text as whole words after
// normalization.
func ContainsPhrase(text, phrase string) bool {
	needle := Normalize(phrase)
	if needle == "" {
		return false
	}
	return strings.Contains(" "+Normalize(text)+" ", " "+needle+" ")
}
