package scaffold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// words splits s on separators and lower-to-upper case changes,
// so "my-token", "my_token", "MyToken" and "my token" all yield [my token].
func words(s string) []string {
	var (
		out     []string
		current []rune
		prev    rune
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, cases.Lower(language.Und).String(string(current)))
			current = current[:0]
		}
	}
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return out
}

// SnakeCase converts s to snake_case.
func SnakeCase(s string) string {
	return strings.Join(words(s), "_")
}

// UpperCamelCase converts s to UpperCamelCase.
func UpperCamelCase(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = cases.Title(language.Und).String(w)
	}
	return strings.Join(ws, "")
}
