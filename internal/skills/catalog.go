// Package skills holds the keyword tables used to detect skills in resume text
// and the normalizer that turns free-text skill strings into comparable tokens.
// The tables are plain data embedded at compile time.
package skills

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Category is one named group of skill keywords.
type Category struct {
	Name     string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Catalog is the full set of keyword tables. A Catalog is read-only once built.
type Catalog struct {
	Categories      []Category        `yaml:"skills"`
	Display         map[string]string `yaml:"display"`
	Education       []string          `yaml:"education"`
	Experience      []string          `yaml:"experience"`
	CompanySuffixes []string          `yaml:"company_suffixes"`
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded keyword tables.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(defaultCatalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// MustDefaultCatalog returns the embedded keyword tables, panicking if they are invalid.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("failed to load skill catalog: %v", err))
	}
	return c
}

// ParseCatalog decodes a YAML catalog and checks that it is usable.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse skill catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every table is present and every pattern compiles.
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("skill catalog has no categories")
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("skill catalog has a category without a name")
		}
		for _, kw := range cat.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("category %s has an empty keyword", cat.Name)
			}
			if kw != strings.ToLower(kw) {
				return fmt.Errorf("category %s keyword %q must be lowercase", cat.Name, kw)
			}
		}
	}
	for _, p := range append(append([]string{}, c.Education...), c.Experience...) {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid section pattern %q: %w", p, err)
		}
	}
	return nil
}

// Keywords returns every skill keyword across all categories, in table order.
func (c *Catalog) Keywords() []string {
	var out []string
	for _, cat := range c.Categories {
		out = append(out, cat.Keywords...)
	}
	return out
}

// CategoryNames returns the category names sorted alphabetically.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	sort.Strings(names)
	return names
}

// DisplayName returns the form of a keyword shown to users.
// Without an override each space-separated word is capitalised.
func (c *Catalog) DisplayName(keyword string) string {
	if name, ok := c.Display[keyword]; ok {
		return name
	}
	words := strings.Split(keyword, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// wordBoundaryLeft and wordBoundaryRight stand in for \b so that keywords
// ending in symbols (c++, c#) still match as whole words.
const (
	wordBoundaryLeft  = `(?:^|[^a-z0-9_])`
	wordBoundaryRight = `(?:$|[^a-z0-9_])`
)

// KeywordPattern compiles a literal keyword into a whole-word matcher for lowercased text.
func KeywordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(wordBoundaryLeft + regexp.QuoteMeta(keyword) + wordBoundaryRight)
}

// SectionPattern compiles a regular expression fragment into a case-insensitive whole-word
// matcher. A trailing plural "s" is accepted, so "developer" also finds "Developers".
func SectionPattern(fragment string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)` + wordBoundaryLeft + `(?:` + fragment + `)s?` + wordBoundaryRight)
}
