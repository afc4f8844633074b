// Package matching decides which required skills a resume covers, trying an exact whole-word
// match, then a known alias, then statistical similarity.
package matching

import (
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/similarity"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultThreshold is the minimum similarity score for the similarity tier to accept a skill.
const DefaultThreshold = 0.4

// SimilarityFunc scores a resume against each skill, returning one score per skill in order.
type SimilarityFunc func(resume string, skills []string) []float64

// Result is the outcome of matching one resume against a required skill set.
// Matched and Missing partition the required skills and keep their order.
type Result struct {
	Matched    []string
	Missing    []string
	Percentage float64
	Details    []types.SkillMatch
}

// Matcher runs the three matching tiers. It holds no per-request state and is safe for
// concurrent use.
type Matcher struct {
	dict       *skills.Dictionary
	similarity SimilarityFunc
	threshold  float64
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithSimilarity replaces the similarity engine.
func WithSimilarity(fn SimilarityFunc) Option {
	return func(m *Matcher) {
		m.similarity = fn
	}
}

// WithThreshold overrides DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// NewMatcher creates a matcher that resolves aliases through dict.
func NewMatcher(dict *skills.Dictionary, opts ...Option) *Matcher {
	m := &Matcher{
		dict:       dict,
		similarity: similarity.Similarities,
		threshold:  DefaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match classifies every required skill as matched or missing.
// The similarity engine runs at most once, over the full required list, and only when a
// skill is left undecided by the exact and alias tiers. An empty required set yields empty
// lists and a percentage of 0.
func (m *Matcher) Match(resume string, required []string) Result {
	result := Result{
		Matched: make([]string, 0, len(required)),
		Missing: make([]string, 0),
		Details: make([]types.SkillMatch, 0, len(required)),
	}
	if len(required) == 0 {
		return result
	}

	normalized := parsing.NormalizeText(resume)

	var (
		scores []float64
		scored bool
	)
	for i, skill := range required {
		detail := types.SkillMatch{Skill: skill, Tier: types.TierNone}

		switch {
		case m.dict.Contains(normalized, skill):
			detail.Tier = types.TierExact
		default:
			if alias, ok := m.dict.MatchAlias(normalized, skill); ok {
				detail.Tier = types.TierAlias
				detail.Alias = alias
				break
			}
			if !scored {
				scores = m.similarity(resume, required)
				scored = true
			}
			score := scoreAt(scores, i)
			detail.Similarity = &score
			if score >= m.threshold {
				detail.Tier = types.TierSimilarity
			}
		}

		if detail.Matched() {
			result.Matched = append(result.Matched, skill)
		} else {
			result.Missing = append(result.Missing, skill)
		}
		result.Details = append(result.Details, detail)
	}

	result.Percentage = Percentage(len(result.Matched), len(required))
	return result
}

// Percentage returns matched/total as a percentage rounded to two decimals, or 0 when total is 0.
func Percentage(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return types.Round2(100 * float64(matched) / float64(total))
}

func scoreAt(scores []float64, i int) float64 {
	if i < len(scores) {
		return scores[i]
	}
	return 0
}
