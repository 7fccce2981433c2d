package roomtype

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// germanReplacer applies the explicit umlaut and eszett substitutions. These
// must run before combining marks are stripped so the vowels keep their
// trailing "e".
var germanReplacer = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// Normalize converts a room-type display label to its canonical token:
// lowercase, diacritics folded, whitespace runs replaced by single hyphens.
// The function is total and idempotent; unknown labels normalize like any
// other string.
func Normalize(label string) string {
	value := strings.ToLower(strings.TrimSpace(label))
	// Recompose decomposed sequences (a + combining diaeresis -> ä) so the
	// German substitutions match umlauts in either encoding; otherwise the
	// stripping step would collapse them to bare vowels.
	if !norm.NFC.IsNormalString(value) {
		value = norm.NFC.String(value)
	}
	value = germanReplacer.Replace(value)
	value = stripCombiningMarks(value)

	var b strings.Builder
	b.Grow(len(value))
	pendingHyphen := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_', r == '/':
			pendingHyphen = true
		default:
			// other runes dropped
		}
	}
	return b.String()
}

func stripCombiningMarks(value string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, value)
	if err != nil {
		return value
	}
	return folded
}
