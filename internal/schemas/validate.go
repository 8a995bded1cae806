// Package schemas validates JSON outputs against the JSON Schemas shipped in schemas/.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema files, relative to the repository root
const (
	ExtractedProfile  = "schemas/extracted_profile.schema.json"
	AggregatedInsight = "schemas/aggregated_insight.schema.json"
	Recommendations   = "schemas/recommendations.schema.json"
)

// ResolveSchemaPath finds a schema file relative to the working directory or up
// to two levels above it, so commands and tests can run from subdirectories.
// Returns the empty string if the file cannot be found.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

func schemaLoader(schemaPath string) (gojsonschema.JSONLoader, string, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve schema path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, "", fmt.Errorf("schema file not found: %s", absPath)
	}
	// file:// references let $ref resolve sibling schema files
	return gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(absPath)), absPath, nil
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	schema, absSchema, err := schemaLoader(schemaPath)
	if err != nil {
		return err
	}

	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	document := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(jsonAbsPath))
	return validate(schema, document, absSchema)
}

// ValidateValue validates an in-memory value, as it would be encoded to JSON,
// against a JSON Schema file.
func ValidateValue(schemaPath string, v any) error {
	schema, absSchema, err := schemaLoader(schemaPath)
	if err != nil {
		return err
	}
	return validate(schema, gojsonschema.NewGoLoader(v), absSchema)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
		"(string schema)",
	)
}

func validate(schema, document gojsonschema.JSONLoader, schemaName string) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
