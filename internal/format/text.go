package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateTimeLayout = "Jan 2, 3:04 PM"

// TitleCase lower-cases s and upper-cases every ASCII letter that starts a
// word, where a word is a run of [A-Za-z0-9_]: "o'NEIL jean-luc" becomes
// "O'Neil Jean-Luc" and "PARTIALLY_PAID" becomes "Partially_paid".
func TitleCase(s string) string {
	lower := cases.Lower(language.English).String(s)

	var b strings.Builder
	b.Grow(len(lower))
	inWord := false
	for _, r := range lower {
		if !inWord && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		inWord = isWordRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// DateTime renders an RFC 3339 timestamp as "Jan 2, 3:04 PM" in UTC
func DateTime(value string) (string, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t.UTC().Format(dateTimeLayout), nil
}
