// Package observability provides formatted human-readable output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in short lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the text output mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the summary, per-skill outcome and ATS breakdown of an analysis.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	email := "not found"
	if result.CandidateEmail != nil {
		email = *result.CandidateEmail
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skill match:  %.2f%% (%d of %d)\n",
		result.MatchPercentage, len(result.MatchedSkills), len(result.RequiredSkills)))
	sb.WriteString(fmt.Sprintf("ATS score:    %d / 100\n", result.ATSScore))
	sb.WriteString(fmt.Sprintf("Email:        %s", email))
	p.printBox("RESUME ANALYSIS", sb.String())

	p.PrintSkillMatches(result.SkillMatches)
	p.PrintMissing(result.MissingSkills)
	p.PrintATSBreakdown(result.ATSBreakdown)
}

// PrintSkillMatches outputs one line per required skill with the tier that decided it.
func (p *Printer) PrintSkillMatches(matches []types.SkillMatch) {
	if len(matches) == 0 {
		p.printBox("SKILLS", "No known skills found in the job description")
		return
	}

	var sb strings.Builder
	for i, m := range matches {
		mark := "✓"
		if !m.Matched() {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s", mark, pad(truncate(m.Skill, 28), 28)))

		switch m.Tier {
		case types.TierAlias:
			sb.WriteString(fmt.Sprintf(" alias %q", m.Alias))
		case types.TierSimilarity, types.TierNone:
			if m.Similarity != nil {
				sb.WriteString(fmt.Sprintf(" %s %.2f", m.Tier, *m.Similarity))
			} else {
				sb.WriteString(" " + string(m.Tier))
			}
		default:
			sb.WriteString(" " + string(m.Tier))
		}
		if i < len(matches)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILLS", sb.String())
}

// PrintATSBreakdown outputs the five ATS sub-scores against their maxima.
func (p *Printer) PrintATSBreakdown(b types.ATSBreakdown) {
	rows := []struct {
		name  string
		score float64
		max   int
	}{
		{"Keywords", b.Keywords, 30},
		{"Structure", b.Structure, 20},
		{"Measurable results", b.Measurable, 20},
		{"Formatting", b.Formatting, 15},
		{"Readability", b.Readability, 15},
	}

	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%s %6.2f / %d", pad(row.name, 20), row.score, row.max))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ATS BREAKDOWN", sb.String())
}

// PrintSkillList outputs a titled list of skills, with aliases when given.
func (p *Printer) PrintSkillList(title string, skills []string, aliases map[string][]string) {
	if len(skills) == 0 {
		p.printBox(title, "(none)")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d skills:\n", len(skills)))
	for _, skill := range skills {
		sb.WriteString("  • " + skill)
		if alts := aliases[skill]; len(alts) > 0 {
			sb.WriteString(" (" + strings.Join(alts, ", ") + ")")
		}
		sb.WriteString("\n")
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMissing outputs the first few skills the resume lacks. Nothing is printed when none are missing.
func (p *Printer) PrintMissing(missing []string) {
	if len(missing) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(missing), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", missing[i]))
	}
	if len(missing) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(missing)-maxItemsToShow))
	}

	p.printBox("MISSING SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}
