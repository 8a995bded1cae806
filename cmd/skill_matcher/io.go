package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/schemas"
	"github.com/jonathan/skill-matcher/internal/types"
)

// loadAppConfig reads the config file when one is given and fills defaults.
func loadAppConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v as indented JSON, creating parent directories as needed.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// validateOutput checks v against a schema when the schema file can be found.
func validateOutput(schemaFile string, v any) error {
	schemaPath := schemas.ResolveSchemaPath(schemaFile)
	if schemaPath == "" {
		return nil
	}
	if err := schemas.ValidateValue(schemaPath, v); err != nil {
		return fmt.Errorf("output does not match %s: %w", filepath.Base(schemaFile), err)
	}
	return nil
}

// loadResumeSkills accepts either an extracted profile or a plain JSON list of skills.
func loadResumeSkills(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var profile types.ExtractedProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse %s: expected an extracted profile or a list of skills", path)
	}
	return profile.Skills, nil
}

// loadJobs reads a JSON list of job records.
func loadJobs(path string) ([]types.JobRecord, error) {
	var jobs []types.JobRecord
	if err := readJSON(path, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
