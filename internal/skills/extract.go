package skills

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// ExtractRequired returns the dictionary skills whose name, or one of whose aliases, appears
// as a whole word in the job description. Results keep dictionary order and dictionary casing;
// duplicates (compared case-insensitively) are dropped. The result is never nil.
func (d *Dictionary) ExtractRequired(jdText string) []string {
	required := make([]string, 0)

	normalized := parsing.NormalizeText(jdText)
	if strings.TrimSpace(normalized) == "" {
		return required
	}

	seen := make(map[string]bool)
	for _, skill := range d.skills {
		lower := strings.ToLower(skill)
		if seen[lower] {
			continue
		}
		if d.Contains(normalized, skill) || d.hasAlias(normalized, skill) {
			seen[lower] = true
			required = append(required, skill)
		}
	}

	return required
}

func (d *Dictionary) hasAlias(normalizedText, skill string) bool {
	_, ok := d.MatchAlias(normalizedText, skill)
	return ok
}
