// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// MatchRequest is an ad-hoc pairwise comparison of two free-text skill lists.
// Both lists must be present but are kept raw: a value that is not a list
// counts as an empty list and non-string entries are dropped before matching.
type MatchRequest struct {
	ResumeSkills json.RawMessage `json:"resume_skills" validate:"required"`
	JobSkills    json.RawMessage `json:"job_skills" validate:"required"`
	Mode         string          `json:"mode,omitempty" validate:"omitempty,oneof=recall jaccard"`
}

// JobIDsRequest asks for a skill-gap analysis against an explicit list of jobs.
type JobIDsRequest struct {
	JobIDs []string `json:"job_ids" validate:"required,min=1,max=50,dive,uuid"`
}

// JobListQuery filters the job catalog listing.
type JobListQuery struct {
	Company  string `validate:"max=200"`
	Location string `validate:"max=200"`
	Skill    string `validate:"max=100"`
	Limit    int    `validate:"gte=0,lte=200"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the JobIDsRequest using the validator.
func (r *JobIDsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the JobListQuery using the validator.
func (q *JobListQuery) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}
