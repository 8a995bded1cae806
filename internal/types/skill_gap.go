// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Priority levels assigned to skill recommendations
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// SkillGapResult compares one resume against the requirements of one job.
// Skills are reported in the job's display form.
type SkillGapResult struct {
	JobID               uuid.UUID `json:"job_id"`
	JobTitle            string    `json:"job_title,omitempty"`
	Company             string    `json:"company,omitempty"`
	MatchingSkills      []string  `json:"matching_skills"`
	MissingSkills       []string  `json:"missing_skills"`
	TotalRequiredSkills int       `json:"total_required_skills"`
	MatchPercentage     int       `json:"match_percentage"`
	SkillGapScore       int       `json:"skill_gap_score"`
}

// MissingSkillFrequency counts how many analyzed jobs require a skill the resume lacks.
type MissingSkillFrequency struct {
	Skill            string `json:"skill"`
	Count            int    `json:"count"`
	FrequencyPercent int    `json:"frequency"`
}

// AggregatedInsight summarizes a resume against many jobs.
type AggregatedInsight struct {
	PerJobResults          []SkillGapResult        `json:"job_analyses"`
	MissingSkillFrequency  []MissingSkillFrequency `json:"most_missing_skills"`
	AverageMatchPercentage int                     `json:"average_match_percentage"`
	TotalJobsAnalyzed      int                     `json:"total_jobs_analyzed"`
	ResumeSkillsCount      int                     `json:"resume_skills_count"`
}

// Recommendation is one skill worth learning, ranked by market demand.
type Recommendation struct {
	Skill           string `json:"skill"`
	DemandFrequency int    `json:"demand_frequency"`
	JobsRequiring   int    `json:"jobs_requiring"`
	Priority        string `json:"priority"`
}

// RecommendationSet is the output of the recommendations operation.
// PotentialImprovement is an advisory upper-bound estimate, not a promise.
type RecommendationSet struct {
	ResumeID               uuid.UUID               `json:"resume_id,omitempty"`
	Recommendations        []Recommendation        `json:"recommendations"`
	CriticalSkills         []MissingSkillFrequency `json:"critical_skills"`
	ImprovementAreas       []MissingSkillFrequency `json:"improvement_areas"`
	CurrentMatchPercentage int                     `json:"current_match_percentage"`
	PotentialImprovement   int                     `json:"potential_improvement"`
	TotalJobsAnalyzed      int                     `json:"total_jobs_analyzed"`
	AnalysisDate           time.Time               `json:"analysis_date,omitempty"`
}

// JobMatch is one entry of the relevance listing for a resume.
// Score is the Jaccard similarity of the two skill sets, in [0, 1].
type JobMatch struct {
	Job           JobRecord `json:"job"`
	Score         float64   `json:"score"`
	MatchedSkills []string  `json:"matched_skills"`
	Notes         string    `json:"notes,omitempty"`
}
