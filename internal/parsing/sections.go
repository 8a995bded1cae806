package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-matcher/internal/types"
)

var (
	yearPattern       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	displayStripChars = regexp.MustCompile(`[^\w\s.,()-]`)
	punctuationOnly   = regexp.MustCompile(`^[^\w\s]+$`)
	digitsOnly        = regexp.MustCompile(`^\d+$`)

	institutionWindow = Window{Before: 0, After: 2}
	companyWindow     = Window{Before: 2, After: 2}
)

// Exclusive length bounds, in runes
const (
	organisationMinLen = 3
	organisationMaxLen = 100
	educationMinLen    = 10
	educationMaxLen    = 150
	experienceMinLen   = 5
	experienceMaxLen   = 150
)

// Window is the neighbourhood searched around a line.
type Window struct {
	Before int
	After  int
}

// FindNearbyLine scans lines within the window around center, in document order,
// skipping center itself, and returns the index of the first line that satisfies pred.
func FindNearbyLine(lines []string, center int, w Window, pred func(string) bool) (int, bool) {
	start := max(center-w.Before, 0)
	end := min(center+w.After, len(lines)-1)
	for i := start; i <= end; i++ {
		if i == center {
			continue
		}
		if pred(lines[i]) {
			return i, true
		}
	}
	return -1, false
}

// CleanLine replaces characters outside a conservative display set with spaces.
func CleanLine(line string) string {
	return strings.TrimSpace(displayStripChars.ReplaceAllString(line, " "))
}

// ExtractYears returns every 4-digit year between 1900 and 2099 in line.
func ExtractYears(line string) []int {
	matches := yearPattern.FindAllString(line, -1)
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	return years
}

// DurationYears is the span between the earliest and latest year, or 0 with fewer than two years.
func DurationYears(years []int) int {
	if len(years) < 2 {
		return 0
	}
	lo, hi := years[0], years[0]
	for _, y := range years[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	return hi - lo
}

func looksCorrupted(line string) bool {
	return strings.ContainsRune(line, utf8.RuneError) || punctuationOnly.MatchString(line)
}

func isInstitution(line string) bool {
	cleaned := CleanLine(line)
	n := utf8.RuneCountInString(cleaned)
	return n > organisationMinLen && n < organisationMaxLen && !digitsOnly.MatchString(cleaned)
}

func (e *Extractor) isCompany(line string) bool {
	if e.company == nil {
		return false
	}
	cleaned := CleanLine(line)
	n := utf8.RuneCountInString(cleaned)
	return n > organisationMinLen && n < organisationMaxLen && e.company.MatchString(cleaned)
}

// candidate reports whether line can be a section entry of the given length bounds.
func candidate(line string, minLen, maxLen int, patterns []*regexp.Regexp) bool {
	n := utf8.RuneCountInString(line)
	if n <= minLen || n >= maxLen || looksCorrupted(line) {
		return false
	}
	return matchesAny(patterns, line)
}

type entryKey struct {
	title string
	org   string
}

// ExtractEducation finds up to three education entries.
func (e *Extractor) ExtractEducation(lines []string) []types.EducationEntry {
	out := make([]types.EducationEntry, 0, maxEducationEntries)
	seen := make(map[entryKey]bool)

	for i, line := range lines {
		if len(out) == maxEducationEntries {
			break
		}
		if !candidate(line, educationMinLen, educationMaxLen, e.education) {
			continue
		}

		entry := types.EducationEntry{
			RawLine: line,
			Degree:  CleanLine(line),
			Years:   ExtractYears(line),
		}
		if idx, ok := FindNearbyLine(lines, i, institutionWindow, isInstitution); ok {
			entry.Institution = CleanLine(lines[idx])
		}

		key := entryKey{entry.Degree, entry.Institution}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, entry)
	}
	return out
}

// ExtractExperience finds up to five experience entries.
func (e *Extractor) ExtractExperience(lines []string) []types.ExperienceEntry {
	out := make([]types.ExperienceEntry, 0, maxExperienceEntries)
	seen := make(map[entryKey]bool)

	for i, line := range lines {
		if len(out) == maxExperienceEntries {
			break
		}
		if !candidate(line, experienceMinLen, experienceMaxLen, e.experience) {
			continue
		}

		years := ExtractYears(line)
		entry := types.ExperienceEntry{
			RawLine:       line,
			Title:         CleanLine(line),
			Years:         years,
			DurationYears: DurationYears(years),
		}
		if idx, ok := FindNearbyLine(lines, i, companyWindow, e.isCompany); ok {
			entry.Company = CleanLine(lines[idx])
		}

		key := entryKey{entry.Title, entry.Company}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, entry)
	}
	return out
}
