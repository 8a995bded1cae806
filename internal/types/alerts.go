// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Alert frequencies
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// JobAlert describes the criteria a user wants to be notified about.
type JobAlert struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Skills      []string  `json:"skills,omitempty"`
	Locations   []string  `json:"locations,omitempty"`
	Companies   []string  `json:"companies,omitempty"`
	Frequency   string    `json:"frequency"`
	IsActive    bool      `json:"is_active"`
	LastChecked time.Time `json:"last_checked"`
}

// HasCriteria reports whether the alert has at least one matching criterion.
func (a *JobAlert) HasCriteria() bool {
	return len(a.Skills) > 0 || len(a.Locations) > 0 || len(a.Companies) > 0
}

// Notification tells a user that a job matched one of their alerts.
type Notification struct {
	UserID     uuid.UUID `json:"user_id"`
	AlertID    uuid.UUID `json:"alert_id"`
	JobID      uuid.UUID `json:"job_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	MatchScore int       `json:"match_score"`
	CreatedAt  time.Time `json:"created_at"`
}
