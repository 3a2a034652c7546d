package sanitize_utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// likeEscaper escapes the LIKE metacharacters so user-supplied terms
// match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Text strips all markup from free-text input.
func Text(raw string) string {
	cleaned := strictPolicy.Sanitize(raw)

	cleaned = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, cleaned)

	return strings.TrimSpace(cleaned)
}

// SearchTerm neutralizes a free-text search term before it is used in a
// LIKE pattern: markup and control characters are stripped and the LIKE
// metacharacters are escaped.
func SearchTerm(raw string) string {
	return likeEscaper.Replace(Text(raw))
}

// SplitFullName tokenizes a name search term. When the term is exactly two
// words, the two names are returned with ok set to true so callers can match
// first and last name independently. Otherwise only the first token is
// returned and the caller should match it against the first name.
func SplitFullName(term string) (first, last string, ok bool) {
	parts := strings.Fields(term)

	if len(parts) == 0 {
		return "", "", false
	}

	if len(parts) == 2 {
		return parts[0], parts[1], true
	}

	return parts[0], "", false
}
