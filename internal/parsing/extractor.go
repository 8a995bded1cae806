// Package parsing turns resume text into a structured profile using keyword
// tables and line heuristics. Results are best-effort: empty fields are normal.
package parsing

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/skills"
	"github.com/jonathan/skill-matcher/internal/types"
)

// ParserVersion identifies the heuristics that produced a profile.
const ParserVersion = "skill-matcher-heuristic/1"

// Entry caps, first occurrences in document order win
const (
	maxEducationEntries  = 3
	maxExperienceEntries = 5
)

type skillPattern struct {
	display string
	re      *regexp.Regexp
}

// Extractor scans resume text. It holds only compiled, read-only tables and
// is safe for concurrent use.
type Extractor struct {
	skills     []skillPattern
	education  []*regexp.Regexp
	experience []*regexp.Regexp
	company    *regexp.Regexp
	now        func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the time source used for profile metadata.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor compiles the catalog into an Extractor.
func NewExtractor(catalog *skills.Catalog, opts ...Option) (*Extractor, error) {
	if catalog == nil {
		return nil, &CatalogError{Message: "catalog is nil"}
	}

	e := &Extractor{now: time.Now}
	for _, kw := range catalog.Keywords() {
		e.skills = append(e.skills, skillPattern{
			display: catalog.DisplayName(kw),
			re:      skills.KeywordPattern(kw),
		})
	}

	var err error
	if e.education, err = compileSection(catalog.Education); err != nil {
		return nil, err
	}
	if e.experience, err = compileSection(catalog.Experience); err != nil {
		return nil, err
	}

	if len(catalog.CompanySuffixes) > 0 {
		quoted := make([]string, len(catalog.CompanySuffixes))
		for i, s := range catalog.CompanySuffixes {
			quoted[i] = regexp.QuoteMeta(s)
		}
		e.company, err = skills.SectionPattern(strings.Join(quoted, "|"))
		if err != nil {
			return nil, &CatalogError{Message: "company suffixes", Cause: err}
		}
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewDefaultExtractor builds an Extractor over the embedded catalog.
func NewDefaultExtractor(opts ...Option) (*Extractor, error) {
	catalog, err := skills.DefaultCatalog()
	if err != nil {
		return nil, &CatalogError{Message: "default catalog", Cause: err}
	}
	return NewExtractor(catalog, opts...)
}

func compileSection(fragments []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(fragments))
	for _, f := range fragments {
		re, err := skills.SectionPattern(f)
		if err != nil {
			return nil, &CatalogError{Message: "pattern " + f, Cause: err}
		}
		out = append(out, re)
	}
	return out, nil
}

// Extract builds a profile from plain document text.
func (e *Extractor) Extract(text string, pageCount int) *types.ExtractedProfile {
	lines := SplitLines(text)
	return &types.ExtractedProfile{
		FullText:   text,
		Skills:     e.ExtractSkills(text),
		Education:  e.ExtractEducation(lines),
		Experience: e.ExtractExperience(lines),
		Contact:    ExtractContact(text),
		Metadata: types.ProfileMetadata{
			PageCount:     pageCount,
			ExtractedAt:   e.now().UTC(),
			ParserVersion: ParserVersion,
		},
	}
}

// ExtractDocument converts raw document bytes to text and extracts a profile.
// A conversion failure fails the whole parse.
func (e *Extractor) ExtractDocument(data []byte, filename, contentType string) (*types.ExtractedProfile, error) {
	doc, err := ingestion.Convert(data, filename, contentType)
	if err != nil {
		return nil, &ExtractionError{Source: filename, Cause: err}
	}
	return e.Extract(doc.Text, doc.PageCount), nil
}

// ExtractSkills returns the display names of every catalog keyword found as a
// whole word in text, deduplicated and sorted alphabetically.
func (e *Extractor) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, p := range e.skills {
		if _, ok := found[p.display]; ok {
			continue
		}
		if p.re.MatchString(lower) {
			found[p.display] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SplitLines splits text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
