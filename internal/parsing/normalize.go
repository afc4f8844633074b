// Package parsing provides text normalization and pattern helpers shared by skill
// extraction, matching and scoring.
package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// wordChars are the characters that glue onto a phrase and break a whole-word match.
const wordChars = `a-z0-9_`

// NormalizeText lowercases text and replaces every character outside the allow-list
// (ASCII letters, digits, '+', '.', '#', '%' and whitespace) with a single space.
// Tokens such as "c++", "c#", ".net" and "50%" survive normalization.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)

	var sb strings.Builder
	sb.Grow(len(lower))
	for _, r := range lower {
		if isAllowedRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func isAllowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '+', r == '.', r == '#', r == '%':
		return true
	default:
		return unicode.IsSpace(r)
	}
}

// WholeWordPattern compiles a pattern matching phrase as a whole word in normalized text.
// The phrase is normalized the same way as the text it is matched against, its words may
// be separated by any whitespace run, and the match must not touch another word character.
// Returns nil when the phrase normalizes to nothing.
func WholeWordPattern(phrase string) *regexp.Regexp {
	words := strings.Fields(NormalizeText(phrase))
	if len(words) == 0 {
		return nil
	}

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}

	expr := `(?:^|[^` + wordChars + `])` + strings.Join(quoted, `\s+`) + `(?:[^` + wordChars + `]|$)`
	return regexp.MustCompile(expr)
}

// ContainsWholeWord reports whether phrase occurs as a whole word in normalizedText.
// normalizedText must already be the output of NormalizeText.
func ContainsWholeWord(normalizedText, phrase string) bool {
	if normalizedText == "" {
		return false
	}
	pattern := WholeWordPattern(phrase)
	if pattern == nil {
		return false
	}
	return pattern.MatchString(normalizedText)
}
