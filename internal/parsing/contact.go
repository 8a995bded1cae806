package parsing

import (
	"regexp"

	"github.com/jonathan/skill-matcher/internal/types"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	gitHubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
)

// ExtractContact returns the first email, phone number, LinkedIn profile and
// GitHub profile found in text. Fields that are not found stay empty.
func ExtractContact(text string) types.Contact {
	var c types.Contact
	c.Email = emailPattern.FindString(text)
	c.Phone = phonePattern.FindString(text)
	if m := linkedInPattern.FindString(text); m != "" {
		c.LinkedIn = "https://" + m
	}
	if m := gitHubPattern.FindString(text); m != "" {
		c.GitHub = "https://" + m
	}
	return c
}
