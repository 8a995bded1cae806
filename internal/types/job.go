// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// JobRecord is a read-only job posting from the catalog.
type JobRecord struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location,omitempty"`
	RequiredSkills []string  `json:"required_skills"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}
