package ingestion

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRun       = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2000}-\x{200B}\x{3000}]+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes converted document text while preserving line structure.
// Line endings become LF, control characters are dropped, runs of spaces collapse
// to one, and at most one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = excessiveBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line
func cleanLine(line string) string {
	line = strings.Map(func(r rune) rune {
		if r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, line)

	line = spaceRun.ReplaceAllString(line, " ")
	line = strings.TrimSpace(line)

	if isBulletLine(line) {
		return "- " + strings.TrimSpace(line[strings.IndexRune(line, ' ')+1:])
	}
	return line
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ") ||
		strings.HasPrefix(line, "▪ ")
}
