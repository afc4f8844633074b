// Package scoring computes a heuristic ATS (applicant tracking system) score for a resume.
package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Upper bounds of the sub-scores.
const (
	maxKeywords    = 30.0
	maxStructure   = 20.0
	maxMeasurable  = 20.0
	maxFormatting  = 15.0
	maxReadability = 15.0
)

// sections are the headings a parseable resume is expected to carry.
var sections = []string{"education", "experience", "skills", "projects", "certifications"}

// numberPattern counts a decimal such as 3.5 or 2.0 as one figure.
var numberPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?%?`)

// basicPunctuation does not count against formatting.
const basicPunctuation = `.,;:!?'"()-/`

// ScoreATS scores raw resume text against the required skills. The same input always
// yields the same breakdown.
func ScoreATS(raw string, required []string) types.ATSBreakdown {
	normalized := parsing.NormalizeText(raw)

	return types.ATSBreakdown{
		Keywords:    keywordScore(normalized, required),
		Structure:   structureScore(normalized),
		Measurable:  measurableScore(normalized),
		Formatting:  formattingScore(raw),
		Readability: readabilityScore(raw),
	}
}

// Total rounds the sum of the sub-scores to the nearest integer.
func Total(b types.ATSBreakdown) int {
	return int(math.Round(b.Total()))
}

// keywordScore credits a required skill only when its canonical name appears; aliases are a
// matcher concern and earn nothing here.
func keywordScore(normalized string, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	found := 0
	for _, skill := range required {
		if parsing.ContainsWholeWord(normalized, skill) {
			found++
		}
	}
	return types.Round2(float64(found) / float64(len(required)) * maxKeywords)
}

func structureScore(normalized string) float64 {
	found := 0
	for _, section := range sections {
		if strings.Contains(normalized, section) {
			found++
		}
	}
	return types.Round2(float64(found) / float64(len(sections)) * maxStructure)
}

func measurableScore(normalized string) float64 {
	count := len(numberPattern.FindAllString(normalized, -1))
	switch {
	case count > 10:
		return maxMeasurable
	case count > 5:
		return 15
	case count > 2:
		return 10
	default:
		return 5
	}
}

func formattingScore(raw string) float64 {
	symbols := 0
	for _, r := range raw {
		if isSymbol(r) {
			symbols++
		}
	}
	switch {
	case symbols > 200:
		return 5
	case symbols > 100:
		return 10
	default:
		return maxFormatting
	}
}

func isSymbol(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return false
	}
	return !strings.ContainsRune(basicPunctuation, r)
}

func readabilityScore(raw string) float64 {
	words := len(strings.Fields(raw))

	sentences := 0
	for _, s := range strings.Split(raw, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	avg := float64(words) / float64(max(1, sentences))
	switch {
	case avg < 20:
		return maxReadability
	case avg < 30:
		return 10
	default:
		return 5
	}
}
