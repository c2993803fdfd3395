package shared

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims and collapses whitespace and puts the text in NFC form,
// so that names typed with combining Vietnamese diacritics compare equal to
// their precomposed forms.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
