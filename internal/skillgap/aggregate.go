// Package skillgap compares one resume against many jobs, aggregates the skills
// the resume is missing and turns the most demanded ones into recommendations.
// The functions in this file are pure and safe for concurrent use.
package skillgap

import (
	"sort"

	"github.com/jonathan/skill-matcher/internal/ranking"
	"github.com/jonathan/skill-matcher/internal/skills"
	"github.com/jonathan/skill-matcher/internal/types"
)

// MaxMissingSkills caps the missing-skill frequency list.
const MaxMissingSkills = 15

// Analyze compares resume skills with one job using the recall formula.
func Analyze(resumeSkills []string, job types.JobRecord) types.SkillGapResult {
	r := ranking.MatchResumeToJob(resumeSkills, job.RequiredSkills, ranking.Recall)
	return types.SkillGapResult{
		JobID:               job.ID,
		JobTitle:            job.Title,
		Company:             job.Company,
		MatchingSkills:      r.MatchingSkills,
		MissingSkills:       r.MissingSkills,
		TotalRequiredSkills: r.JobSkillCount,
		MatchPercentage:     r.MatchPercentage,
		SkillGapScore:       100 - r.MatchPercentage,
	}
}

// Aggregate analyzes every job, ranks the results by match percentage (ties keep
// input order), counts how often each missing skill is required and averages the
// match percentages.
func Aggregate(resumeSkills []string, jobs []types.JobRecord) *types.AggregatedInsight {
	results := make([]types.SkillGapResult, len(jobs))
	for i, job := range jobs {
		results[i] = Analyze(resumeSkills, job)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})

	total := 0
	for _, r := range results {
		total += r.MatchPercentage
	}
	average := 0
	if len(results) > 0 {
		average = ranking.RoundHalfUp(float64(total) / float64(len(results)))
	}

	return &types.AggregatedInsight{
		PerJobResults:          results,
		MissingSkillFrequency:  missingSkillFrequency(results),
		AverageMatchPercentage: average,
		TotalJobsAnalyzed:      len(results),
		ResumeSkillsCount:      len(skills.NormalizeSkills(resumeSkills)),
	}
}

// missingSkillFrequency counts missing skills by token across results. Each
// entry shows the first spelling seen; entries are ordered by count with ties
// in first-seen order.
func missingSkillFrequency(results []types.SkillGapResult) []types.MissingSkillFrequency {
	index := make(map[string]int)
	var entries []types.MissingSkillFrequency

	for _, r := range results {
		for _, skill := range r.MissingSkills {
			token := skills.NormalizeSkill(skill)
			if i, ok := index[token]; ok {
				entries[i].Count++
				continue
			}
			index[token] = len(entries)
			entries = append(entries, types.MissingSkillFrequency{Skill: skill, Count: 1})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > MaxMissingSkills {
		entries = entries[:MaxMissingSkills]
	}

	for i := range entries {
		entries[i].FrequencyPercent = ranking.Percent(entries[i].Count, len(results))
	}
	if entries == nil {
		entries = []types.MissingSkillFrequency{}
	}
	return entries
}
