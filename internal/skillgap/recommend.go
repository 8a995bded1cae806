package skillgap

import "github.com/jonathan/skill-matcher/internal/types"

// Recommendation list sizes
const (
	MaxRecommendations  = 10
	criticalSkillsCount = 5
)

// Priority thresholds on demand frequency, exclusive
const (
	highPriorityAbove   = 50
	mediumPriorityAbove = 25
)

// Improvement estimates added to the current average
const (
	improvementWithRecommendations    = 15
	improvementWithoutRecommendations = 5
)

// PriorityFor maps a demand frequency percentage to a priority level.
func PriorityFor(frequencyPercent int) string {
	switch {
	case frequencyPercent > highPriorityAbove:
		return types.PriorityHigh
	case frequencyPercent > mediumPriorityAbove:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// Recommend turns an aggregated insight into ranked skill recommendations.
// PotentialImprovement is an advisory estimate capped at 100.
func Recommend(insight *types.AggregatedInsight) *types.RecommendationSet {
	freq := insight.MissingSkillFrequency

	recs := make([]types.Recommendation, 0, min(len(freq), MaxRecommendations))
	for _, f := range freq[:min(len(freq), MaxRecommendations)] {
		recs = append(recs, types.Recommendation{
			Skill:           f.Skill,
			DemandFrequency: f.FrequencyPercent,
			JobsRequiring:   f.Count,
			Priority:        PriorityFor(f.FrequencyPercent),
		})
	}

	bump := improvementWithoutRecommendations
	if len(recs) > 0 {
		bump = improvementWithRecommendations
	}

	return &types.RecommendationSet{
		Recommendations:        recs,
		CriticalSkills:         window(freq, 0, criticalSkillsCount),
		ImprovementAreas:       window(freq, criticalSkillsCount, MaxRecommendations),
		CurrentMatchPercentage: insight.AverageMatchPercentage,
		PotentialImprovement:   min(100, insight.AverageMatchPercentage+bump),
		TotalJobsAnalyzed:      insight.TotalJobsAnalyzed,
	}
}

// RecommendSkills aggregates the jobs and derives recommendations in one step.
func RecommendSkills(resumeSkills []string, jobs []types.JobRecord) *types.RecommendationSet {
	return Recommend(Aggregate(resumeSkills, jobs))
}

func window(freq []types.MissingSkillFrequency, from, to int) []types.MissingSkillFrequency {
	from = min(from, len(freq))
	to = min(to, len(freq))
	out := make([]types.MissingSkillFrequency, to-from)
	copy(out, freq[from:to])
	return out
}
