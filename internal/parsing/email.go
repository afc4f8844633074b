package parsing

import "regexp"

// emailPattern is a conventional local@domain.tld pattern, not full RFC 5322.
// Every domain label is non-empty, so a sentence-ending dot is not part of the match.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)+`)

// ExtractEmail returns the first email address found in text, or nil when there is none.
func ExtractEmail(text string) *string {
	match := emailPattern.FindString(text)
	if match == "" {
		return nil
	}
	return &match
}
