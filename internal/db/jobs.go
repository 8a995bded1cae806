package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Job Catalog Methods
// -----------------------------------------------------------------------------

var jobColumns = []string{"id", "title", "company", "location", "required_skills", "description", "created_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// CreateJob inserts a job into the catalog. A nil ID is replaced with a fresh one.
func (db *DB) CreateJob(ctx context.Context, job *types.JobRecord) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}

	query, args, err := psql.Insert("jobs").
		Columns("id", "title", "company", "location", "required_skills", "description").
		Values(job.ID, job.Title, job.Company, job.Location, job.RequiredSkills, job.Description).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build job insert: %w", err)
	}

	if err := db.pool.QueryRow(ctx, query, args...).Scan(&job.CreatedAt); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID. Returns nil, nil when it does not exist.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.JobRecord, error) {
	query, args, err := psql.Select(jobColumns...).From("jobs").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build job query: %w", err)
	}

	job, err := scanJob(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs returns catalog jobs, newest first. A zero limit returns every matching job.
func (db *DB) ListJobs(ctx context.Context, q types.JobListQuery) ([]types.JobRecord, error) {
	query, args, err := buildListJobsQuery(q)
	if err != nil {
		return nil, fmt.Errorf("failed to build job listing: %w", err)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.JobRecord{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// buildListJobsQuery renders the catalog filter. Company and location match as
// case-insensitive substrings; skill matches any required skill exactly, ignoring case.
func buildListJobsQuery(q types.JobListQuery) (string, []any, error) {
	b := psql.Select(jobColumns...).From("jobs")

	if q.Company != "" {
		b = b.Where(sq.ILike{"company": "%" + q.Company + "%"})
	}
	if q.Location != "" {
		b = b.Where(sq.ILike{"location": "%" + q.Location + "%"})
	}
	if q.Skill != "" {
		b = b.Where("EXISTS (SELECT 1 FROM unnest(required_skills) AS s WHERE lower(s) = lower(?))", q.Skill)
	}

	b = b.OrderBy("created_at DESC", "id")
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	return b.ToSql()
}

func scanJob(row pgx.Row) (*types.JobRecord, error) {
	var j types.JobRecord
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.RequiredSkills, &j.Description, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}
