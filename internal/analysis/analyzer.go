// Package analysis combines skill extraction, matching, ATS scoring and email extraction into
// one analysis of a resume against a job description.
package analysis

import (
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Analyzer runs analyses against one skill dictionary. It holds no mutable state and is safe
// for concurrent use.
type Analyzer struct {
	dict    *skills.Dictionary
	matcher *matching.Matcher
}

// NewAnalyzer creates an analyzer over dict. Matcher options are passed through.
func NewAnalyzer(dict *skills.Dictionary, opts ...matching.Option) *Analyzer {
	return &Analyzer{
		dict:    dict,
		matcher: matching.NewMatcher(dict, opts...),
	}
}

// Dictionary returns the skill dictionary the analyzer uses.
func (a *Analyzer) Dictionary() *skills.Dictionary {
	return a.dict
}

// Analyze matches the resume against the skills the job description requires.
// Degenerate input never fails: empty text yields empty lists and zero scores. When the job
// description names no known skill, matching is skipped but the ATS score and email are still
// computed.
func (a *Analyzer) Analyze(resume, jd string) *types.AnalysisResult {
	required := a.dict.ExtractRequired(jd)
	match := a.matcher.Match(resume, required)
	breakdown := scoring.ScoreATS(resume, required)

	result := &types.AnalysisResult{
		MatchedSkills:   match.Matched,
		MissingSkills:   match.Missing,
		MatchPercentage: match.Percentage,
		CandidateEmail:  parsing.ExtractEmail(resume),
		ATSScore:        scoring.Total(breakdown),
		ATSBreakdown:    breakdown,
		RequiredSkills:  required,
		SkillMatches:    match.Details,
	}

	logger.Debug().
		Int("resume_chars", len(resume)).
		Int("jd_chars", len(jd)).
		Int("required", len(required)).
		Int("matched", len(match.Matched)).
		Float64("match_percentage", match.Percentage).
		Int("ats_score", result.ATSScore).
		Bool("email_found", result.CandidateEmail != nil).
		Msg("analysis complete")

	return result
}
