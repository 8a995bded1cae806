// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ExtractedProfile is the structured result of scanning one resume document.
// A profile is created once per upload and is never mutated afterwards.
type ExtractedProfile struct {
	FullText   string            `json:"full_text"`
	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Contact    Contact           `json:"contact"`
	Metadata   ProfileMetadata   `json:"metadata"`
}

// EducationEntry is a best-effort guess at one education line.
type EducationEntry struct {
	RawLine     string `json:"raw"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Years       []int  `json:"years"`
}

// ExperienceEntry is a best-effort guess at one position held.
type ExperienceEntry struct {
	RawLine       string `json:"raw"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Years         []int  `json:"years"`
	DurationYears int    `json:"duration"`
}

// Contact holds the first match found for each contact field.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// IsEmpty reports whether no contact field was found.
func (c Contact) IsEmpty() bool {
	return c.Email == "" && c.Phone == "" && c.LinkedIn == "" && c.GitHub == ""
}

// ProfileMetadata describes how a profile was produced.
type ProfileMetadata struct {
	PageCount     int       `json:"pages"`
	ExtractedAt   time.Time `json:"extracted_at"`
	ParserVersion string    `json:"parser"`
}
