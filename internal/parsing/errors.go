package parsing

import "fmt"

// ExtractionError reports that a document could not be converted to text.
// No partial profile is produced when this error is returned.
type ExtractionError struct {
	Source string
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("resume parsing failed: %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("resume parsing failed: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// CatalogError reports that the keyword tables could not be compiled.
type CatalogError struct {
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid keyword catalog: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid keyword catalog: %s", e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}
