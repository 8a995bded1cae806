// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// StoredResume is an uploaded resume together with its extracted profile.
type StoredResume struct {
	ID           uuid.UUID         `json:"id"`
	OwnerID      uuid.UUID         `json:"owner_id"`
	Filename     string            `json:"filename"`
	OriginalName string            `json:"original_name,omitempty"`
	UploadedAt   time.Time         `json:"uploaded_at"`
	Profile      *ExtractedProfile `json:"parsed_data,omitempty"`
}

// Skills returns the extracted skills, or nil when the resume has no profile.
func (r *StoredResume) Skills() []string {
	if r == nil || r.Profile == nil {
		return nil
	}
	return r.Profile.Skills
}

// ResumeSummary is the list view of a stored resume.
type ResumeSummary struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	UploadedAt  time.Time `json:"uploaded_at"`
	SkillsCount int       `json:"skills_count"`
	Skills      []string  `json:"skills"`
}
