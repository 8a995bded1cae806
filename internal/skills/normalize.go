package skills

import (
	"regexp"
	"strings"
)

var (
	parentheticalPattern = regexp.MustCompile(`\s*\(.*?\)`)
	disallowedPattern    = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// NormalizeSkill converts a free-text skill into a comparable token.
// Parenthetical qualifiers are removed, everything but letters, digits,
// whitespace and hyphens is stripped, and the result is trimmed, inner runs of
// whitespace become one space, and it is lowercased.
// An empty return value means the input carried no skill.
func NormalizeSkill(raw string) string {
	s := parentheticalPattern.ReplaceAllString(raw, "")
	s = disallowedPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.ToLower(s)
}

// NormalizeSkills normalizes every entry, drops empty tokens and collapses duplicates.
// The first occurrence of each token keeps its position.
func NormalizeSkills(raw []string) []string {
	return NewSet(raw).Tokens()
}

// CoerceSkills turns a loosely typed value into a list of skill strings.
// Non-string entries are dropped; anything that is not a list yields nil.
func CoerceSkills(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Set is an ordered collection of distinct skill tokens that remembers the
// first raw spelling seen for each token.
type Set struct {
	tokens  []string
	display map[string]string
}

// NewSet normalizes raw skills into a Set.
func NewSet(raw []string) *Set {
	s := &Set{display: make(map[string]string, len(raw))}
	for _, r := range raw {
		token := NormalizeSkill(r)
		if token == "" {
			continue
		}
		if _, seen := s.display[token]; seen {
			continue
		}
		s.display[token] = strings.TrimSpace(r)
		s.tokens = append(s.tokens, token)
	}
	return s
}

// Len returns the number of distinct tokens.
func (s *Set) Len() int {
	return len(s.tokens)
}

// Contains reports whether token is in the set. The argument must already be normalized.
func (s *Set) Contains(token string) bool {
	_, ok := s.display[token]
	return ok
}

// Tokens returns the tokens in first-seen order.
func (s *Set) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Display returns the raw spelling first seen for token.
func (s *Set) Display(token string) string {
	return s.display[token]
}
