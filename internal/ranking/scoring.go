// Package ranking scores a resume's skills against job requirements.
//
// Recall ("how much of this job do I satisfy") divides the matched count by the
// job's skill count. Jaccard ("how relevant is this job to me") divides it by the
// size of the union of both skill sets.
package ranking

import (
	"fmt"
	"math"

	"github.com/jonathan/skill-matcher/internal/skills"
)

// ScoringMode selects the similarity formula.
type ScoringMode string

// Scoring modes
const (
	Recall  ScoringMode = "recall"
	Jaccard ScoringMode = "jaccard"
)

// ParseScoringMode parses a mode name. The empty string selects Recall.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(s) {
	case "", Recall:
		return Recall, nil
	case Jaccard:
		return Jaccard, nil
	default:
		return "", fmt.Errorf("unknown scoring mode %q (want %q or %q)", s, Recall, Jaccard)
	}
}

// Result is the outcome of comparing one resume with one job.
// Matching and missing skills use the job's spelling.
type Result struct {
	Mode            ScoringMode `json:"mode"`
	MatchingSkills  []string    `json:"matching_skills"`
	MissingSkills   []string    `json:"missing_skills"`
	JobSkillCount   int         `json:"job_skill_count"`
	UnionSize       int         `json:"union_size"`
	Score           float64     `json:"score"`
	MatchPercentage int         `json:"match_percentage"`
}

// MatchResumeToJob normalizes both skill lists and scores them with mode.
// An unknown mode is scored as Recall. Empty denominators score 0.
func MatchResumeToJob(resumeSkills, jobSkills []string, mode ScoringMode) Result {
	resume := skills.NewSet(resumeSkills)
	job := skills.NewSet(jobSkills)

	r := Result{
		Mode:           mode,
		MatchingSkills: []string{},
		MissingSkills:  []string{},
		JobSkillCount:  job.Len(),
	}
	for _, token := range job.Tokens() {
		if resume.Contains(token) {
			r.MatchingSkills = append(r.MatchingSkills, job.Display(token))
		} else {
			r.MissingSkills = append(r.MissingSkills, job.Display(token))
		}
	}

	matched := len(r.MatchingSkills)
	r.UnionSize = resume.Len() + job.Len() - matched

	switch mode {
	case Jaccard:
		r.Score = ratio(matched, r.UnionSize)
		r.MatchPercentage = Percent(matched, r.UnionSize)
	default:
		r.Mode = Recall
		r.Score = ratio(matched, job.Len())
		r.MatchPercentage = Percent(matched, job.Len())
	}
	return r
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Percent returns round(100 * n / d) with halves rounded up, or 0 when d is 0.
func Percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return RoundHalfUp(100 * float64(n) / float64(d))
}

// RoundHalfUp rounds x to the nearest integer, with halves going up.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
