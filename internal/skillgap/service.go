package skillgap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-matcher/internal/ranking"
	"github.com/jonathan/skill-matcher/internal/types"
)

// ResumeStore loads stored resumes. GetResume returns nil, nil when the resume does not exist.
type ResumeStore interface {
	GetResume(ctx context.Context, id uuid.UUID) (*types.StoredResume, error)
}

// JobCatalog is the read-only job catalog. GetJob returns nil, nil when the job does not exist.
type JobCatalog interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.JobRecord, error)
	ListJobs(ctx context.Context, q types.JobListQuery) ([]types.JobRecord, error)
}

// Limits bounds how many jobs an analysis covers.
type Limits struct {
	DefaultJobs        int
	MaxJobs            int
	RecommendationJobs int
}

// DefaultLimits returns the standard analysis bounds.
func DefaultLimits() Limits {
	return Limits{
		DefaultJobs:        10,
		MaxJobs:            50,
		RecommendationJobs: 20,
	}
}

// Service loads resumes and jobs and runs the analyses over them.
type Service struct {
	resumes ResumeStore
	jobs    JobCatalog
	limits  Limits
	now     func() time.Time
}

// NewService creates a Service. Zero limits fall back to DefaultLimits.
func NewService(resumes ResumeStore, jobs JobCatalog, limits Limits) *Service {
	defaults := DefaultLimits()
	if limits.DefaultJobs <= 0 {
		limits.DefaultJobs = defaults.DefaultJobs
	}
	if limits.MaxJobs <= 0 {
		limits.MaxJobs = defaults.MaxJobs
	}
	if limits.RecommendationJobs <= 0 {
		limits.RecommendationJobs = defaults.RecommendationJobs
	}
	return &Service{resumes: resumes, jobs: jobs, limits: limits, now: time.Now}
}

// WithClock sets the time source used to stamp recommendation sets.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Limits returns the bounds the service applies.
func (s *Service) Limits() Limits {
	return s.limits
}

// ClampLimit applies the default for non-positive values and the maximum otherwise.
func (s *Service) ClampLimit(limit int) int {
	if limit <= 0 {
		return s.limits.DefaultJobs
	}
	return min(limit, s.limits.MaxJobs)
}

func (s *Service) loadResumeSkills(ctx context.Context, resumeID uuid.UUID) ([]string, error) {
	resume, err := s.resumes.GetResume(ctx, resumeID)
	if err != nil {
		return nil, &InputUnavailableError{Kind: KindResume, ID: resumeID.String(), Cause: err}
	}
	if resume == nil {
		return nil, &InputUnavailableError{Kind: KindResume, ID: resumeID.String()}
	}
	return resume.Skills(), nil
}

func (s *Service) loadJob(ctx context.Context, jobID uuid.UUID) (*types.JobRecord, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, &InputUnavailableError{Kind: KindJob, ID: jobID.String(), Cause: err}
	}
	if job == nil {
		return nil, &InputUnavailableError{Kind: KindJob, ID: jobID.String()}
	}
	return job, nil
}

func (s *Service) listJobs(ctx context.Context, limit int) ([]types.JobRecord, error) {
	jobs, err := s.jobs.ListJobs(ctx, types.JobListQuery{Limit: limit})
	if err != nil {
		return nil, &InputUnavailableError{Kind: KindJob, ID: "catalog", Cause: err}
	}
	return jobs, nil
}

// SkillGapForJob compares a stored resume with one job.
func (s *Service) SkillGapForJob(ctx context.Context, resumeID, jobID uuid.UUID) (*types.SkillGapResult, error) {
	resumeSkills, err := s.loadResumeSkills(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	result := Analyze(resumeSkills, *job)
	return &result, nil
}

// MultiJob aggregates a stored resume against the first limit jobs of the catalog.
func (s *Service) MultiJob(ctx context.Context, resumeID uuid.UUID, limit int) (*types.AggregatedInsight, error) {
	resumeSkills, err := s.loadResumeSkills(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.listJobs(ctx, s.ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return Aggregate(resumeSkills, jobs), nil
}

// SkillGapForJobs aggregates a stored resume against an explicit list of jobs.
// Jobs are loaded concurrently; if any of them cannot be loaded the call fails.
func (s *Service) SkillGapForJobs(ctx context.Context, resumeID uuid.UUID, jobIDs []uuid.UUID) (*types.AggregatedInsight, error) {
	resumeSkills, err := s.loadResumeSkills(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	if len(jobIDs) > s.limits.MaxJobs {
		jobIDs = jobIDs[:s.limits.MaxJobs]
	}

	jobs := make([]types.JobRecord, len(jobIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range jobIDs {
		g.Go(func() error {
			job, err := s.loadJob(gctx, id)
			if err != nil {
				return err
			}
			jobs[i] = *job
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Aggregate(resumeSkills, jobs), nil
}

// Recommendations derives skill recommendations for a stored resume from the
// first RecommendationJobs jobs of the catalog.
func (s *Service) Recommendations(ctx context.Context, resumeID uuid.UUID) (*types.RecommendationSet, error) {
	resumeSkills, err := s.loadResumeSkills(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.listJobs(ctx, s.limits.RecommendationJobs)
	if err != nil {
		return nil, err
	}

	set := RecommendSkills(resumeSkills, jobs)
	set.ResumeID = resumeID
	set.AnalysisDate = s.now().UTC()
	return set, nil
}

// MatchJobs ranks the whole catalog against a stored resume by Jaccard similarity.
func (s *Service) MatchJobs(ctx context.Context, resumeID uuid.UUID) ([]types.JobMatch, error) {
	resumeSkills, err := s.loadResumeSkills(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.listJobs(ctx, 0)
	if err != nil {
		return nil, err
	}
	return ranking.RankJobs(resumeSkills, jobs), nil
}
