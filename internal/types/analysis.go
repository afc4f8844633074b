// Package types provides type definitions for the analysis results and requests shared by the
// matcher, the HTTP service and the CLI.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// MaxDocumentChars bounds the resume and job description accepted in one request.
const MaxDocumentChars = 200000

// MatchTier names the tier that decided a skill's outcome.
type MatchTier string

// Match tiers, tried in this order.
const (
	TierExact      MatchTier = "exact"
	TierAlias      MatchTier = "alias"
	TierSimilarity MatchTier = "similarity"
	TierNone       MatchTier = "none"
)

// SkillMatch records how one required skill was decided.
type SkillMatch struct {
	Skill string    `json:"skill"`
	Tier  MatchTier `json:"tier"`
	// Alias is the alternate form found in the resume when Tier is alias.
	Alias string `json:"alias,omitempty"`
	// Similarity is set whenever the similarity engine scored the skill.
	Similarity *float64 `json:"similarity,omitempty"`
}

// Matched reports whether the skill counts as present in the resume.
func (m SkillMatch) Matched() bool {
	return m.Tier != TierNone
}

// ATSBreakdown holds the five ATS sub-scores.
type ATSBreakdown struct {
	Keywords    float64 `json:"keywords"`    // 0-30
	Structure   float64 `json:"structure"`   // 0-20
	Measurable  float64 `json:"measurable"`  // 0-20
	Formatting  float64 `json:"formatting"`  // 0-15
	Readability float64 `json:"readability"` // 0-15
}

// Total returns the sum of the sub-scores before rounding.
func (b ATSBreakdown) Total() float64 {
	return b.Keywords + b.Structure + b.Measurable + b.Formatting + b.Readability
}

// Round2 rounds a reported percentage or sub-score to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AnalysisResult is the full outcome of analyzing one resume against one job description.
type AnalysisResult struct {
	MatchedSkills   []string     `json:"matched_skills"`
	MissingSkills   []string     `json:"missing_skills"`
	MatchPercentage float64      `json:"match_percentage"`
	CandidateEmail  *string      `json:"candidate_email"`
	ATSScore        int          `json:"ats_score"`
	ATSBreakdown    ATSBreakdown `json:"ats_breakdown"`
	RequiredSkills  []string     `json:"required_skills"`
	SkillMatches    []SkillMatch `json:"skill_matches"`
}

// AnalyzeRequest is the JSON body of an analysis request.
// JD may be empty when JDURL points at a job posting to fetch instead.
type AnalyzeRequest struct {
	Resume string `json:"resume" validate:"max=200000"`
	JD     string `json:"jd" validate:"max=200000"`
	JDURL  string `json:"jd_url,omitempty" validate:"omitempty,url,startswith=http"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
