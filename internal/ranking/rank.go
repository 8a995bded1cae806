package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

// RankJobs scores every job against the resume skills with the Jaccard formula and
// returns the jobs that share at least one skill, best first. Ties keep catalog order.
func RankJobs(resumeSkills []string, jobs []types.JobRecord) []types.JobMatch {
	matches := make([]types.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		r := MatchResumeToJob(resumeSkills, job.RequiredSkills, Jaccard)
		if r.Score <= 0 {
			continue
		}
		matches = append(matches, types.JobMatch{
			Job:           job,
			Score:         r.Score,
			MatchedSkills: r.MatchingSkills,
			Notes:         generateNotes(r),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// generateNotes creates a brief explanation of the ranking.
func generateNotes(r Result) string {
	var parts []string

	matched := strings.Join(r.MatchingSkills, ", ")
	switch {
	case r.Score >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", matched))
	case r.Score >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", matched))
	case r.Score > 0:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", matched))
	default:
		parts = append(parts, "No skill matches")
	}

	if n := len(r.MissingSkills); n > 0 {
		parts = append(parts, fmt.Sprintf("%d of %d required skills missing", n, r.JobSkillCount))
	} else if r.JobSkillCount > 0 {
		parts = append(parts, "All required skills covered")
	}

	return strings.Join(parts, ". ")
}
