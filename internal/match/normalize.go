package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy matching: CamelCase words are
// joined, lower-cased and stripped of separators (_, - and spaces).
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// TokenizeIdent splits an identifier into lowercase words.
// Examples:
//   - "FixOwnedFields" -> ["fix", "owned", "fields"]
//   - "HTTPClient" -> ["http", "client"]
//   - "after_clone" -> ["after", "clone"]
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

func tokenizeCamelCase(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsWord reports whether runes[i] begins a new word: a lower-to-upper
// transition ("ownedFields") or the last capital of an acronym followed by a
// lowercase letter ("HTTPClient").
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return !isSeparator(prev)
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
