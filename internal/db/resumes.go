package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Resume Methods
// -----------------------------------------------------------------------------

// ResumeCreateInput holds the fields needed to store an uploaded resume
type ResumeCreateInput struct {
	OwnerID      uuid.UUID
	Filename     string
	OriginalName string
	Profile      *types.ExtractedProfile
}

const resumeColumns = `id, owner_id, filename, original_name, parsed_data, uploaded_at`

// CreateResume stores a parsed resume. Returns ErrResumeExists if the owner already has one.
func (db *DB) CreateResume(ctx context.Context, input *ResumeCreateInput) (*types.StoredResume, error) {
	if input.Profile == nil {
		return nil, fmt.Errorf("resume profile is required")
	}
	profileJSON, err := json.Marshal(input.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	r := types.StoredResume{
		ID:           uuid.New(),
		OwnerID:      input.OwnerID,
		Filename:     input.Filename,
		OriginalName: input.OriginalName,
		Profile:      input.Profile,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, owner_id, filename, original_name, parsed_data)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING uploaded_at`,
		r.ID, r.OwnerID, r.Filename, r.OriginalName, profileJSON,
	).Scan(&r.UploadedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrResumeExists
		}
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// GetResume retrieves a resume by ID. Returns nil, nil when it does not exist.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.StoredResume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	r, err := scanResume(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// GetResumeByOwner retrieves the resume owned by a user, if any.
func (db *DB) GetResumeByOwner(ctx context.Context, ownerID uuid.UUID) (*types.StoredResume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1`, ownerID)
	r, err := scanResume(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume by owner: %w", err)
	}
	return r, nil
}

// ListResumesByOwner returns the owner's resumes, newest first
func (db *DB) ListResumesByOwner(ctx context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1 ORDER BY uploaded_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []types.ResumeSummary{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, Summarize(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return summaries, nil
}

// DeleteResume removes a resume owned by ownerID. Returns false if no such resume exists.
func (db *DB) DeleteResume(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// Summarize builds the list view of a stored resume.
func Summarize(r *types.StoredResume) types.ResumeSummary {
	skills := r.Skills()
	if skills == nil {
		skills = []string{}
	}
	return types.ResumeSummary{
		ID:          r.ID,
		FileName:    r.OriginalName,
		UploadedAt:  r.UploadedAt,
		SkillsCount: len(skills),
		Skills:      skills,
	}
}

func scanResume(row pgx.Row) (*types.StoredResume, error) {
	var r types.StoredResume
	var profileJSON []byte
	if err := row.Scan(&r.ID, &r.OwnerID, &r.Filename, &r.OriginalName, &profileJSON, &r.UploadedAt); err != nil {
		return nil, err
	}

	// Parse JSONB profile
	if profileJSON != nil {
		var p types.ExtractedProfile
		if err := json.Unmarshal(profileJSON, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		r.Profile = &p
	}
	return &r, nil
}
