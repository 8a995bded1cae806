// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func joinSkills(skills []string, n int) string {
	if len(skills) == 0 {
		return "(none)"
	}
	return truncate(strings.Join(skills, ", "), n)
}

// PrintProfile outputs a summary of an extracted resume profile.
func (p *Printer) PrintProfile(profile *types.ExtractedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", profile.Metadata.PageCount))
	sb.WriteString(fmt.Sprintf("Parser:   %s\n", profile.Metadata.ParserVersion))
	if profile.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Contact.Email))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
	count := min(len(profile.Skills), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
	}
	if len(profile.Skills) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-count))
	}

	if len(profile.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		for _, e := range profile.Experience {
			sb.WriteString(fmt.Sprintf("  • %s\n", e.Title))
			if e.Company != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", e.Company))
			}
		}
	}

	if len(profile.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, e := range profile.Education {
			sb.WriteString(fmt.Sprintf("  • %s\n", e.Degree))
		}
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGap outputs the comparison of a resume with one job.
func (p *Printer) PrintSkillGap(result *types.SkillGapResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Job:      %s\n", result.JobTitle))
	}
	if result.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", result.Company))
	}
	sb.WriteString(fmt.Sprintf("Match:    %d%% of %d required skills\n\n", result.MatchPercentage, result.TotalRequiredSkills))
	sb.WriteString(fmt.Sprintf("Have:     %s\n", joinSkills(result.MatchingSkills, 40)))
	sb.WriteString(fmt.Sprintf("Missing:  %s", joinSkills(result.MissingSkills, 40)))

	p.printBox("SKILL GAP", sb.String())
}

// PrintInsight outputs the ranked jobs and the most frequently missing skills.
func (p *Printer) PrintInsight(insight *types.AggregatedInsight) {
	if insight == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs analyzed:   %d\n", insight.TotalJobsAnalyzed))
	sb.WriteString(fmt.Sprintf("Average match:   %d%%\n", insight.AverageMatchPercentage))
	sb.WriteString(fmt.Sprintf("Resume skills:   %d\n", insight.ResumeSkillsCount))

	if len(insight.PerJobResults) > 0 {
		sb.WriteString("\nBest matches:\n")
		count := min(len(insight.PerJobResults), maxItemsToShow)
		for i := 0; i < count; i++ {
			r := insight.PerJobResults[i]
			title := r.JobTitle
			if title == "" {
				title = r.JobID.String()
			}
			sb.WriteString(fmt.Sprintf("  %3d%%  %s\n", r.MatchPercentage, truncate(title, 40)))
		}
		if len(insight.PerJobResults) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more jobs\n", len(insight.PerJobResults)-count))
		}
	}

	if len(insight.MissingSkillFrequency) > 0 {
		sb.WriteString("\nMost missing:\n")
		count := min(len(insight.MissingSkillFrequency), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := insight.MissingSkillFrequency[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d jobs, %d%%)\n", m.Skill, m.Count, m.FrequencyPercent))
		}
	}

	p.printBox("SKILL GAP ACROSS JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the recommended skills with their priority.
func (p *Printer) PrintRecommendations(set *types.RecommendationSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Current match:   %d%%\n", set.CurrentMatchPercentage))
	sb.WriteString(fmt.Sprintf("Potential:       up to %d%% (estimate)\n", set.PotentialImprovement))

	if len(set.Recommendations) == 0 {
		sb.WriteString("\nNo missing skills found.")
	} else {
		sb.WriteString("\n")
		for _, r := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("[%-6s] %s (%d%%)\n", r.Priority, r.Skill, r.DemandFrequency))
		}
	}

	p.printBox("RECOMMENDED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobMatches outputs the relevance listing for a resume.
func (p *Printer) PrintJobMatches(matches []types.JobMatch) {
	if len(matches) == 0 {
		p.printBox("RELEVANT JOBS", "No job shares a skill with this resume.")
		return
	}

	var sb strings.Builder
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, m.Job.Title))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Skills: %s\n", m.Score, joinSkills(m.MatchedSkills, 30)))
	}
	if len(matches) > count {
		sb.WriteString(fmt.Sprintf("... and %d more jobs\n", len(matches)-count))
	}

	p.printBox("RELEVANT JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNotifications outputs the notifications produced by an alert check.
func (p *Printer) PrintNotifications(notifications []types.Notification) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d notifications", len(notifications)))
	for _, n := range notifications {
		sb.WriteString(fmt.Sprintf("\n• %s (score %d)", n.Title, n.MatchScore))
	}
	p.printBox("ALERT CHECK", sb.String())
}
