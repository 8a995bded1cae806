// Package server provides the HTTP REST API for resume upload, job matching and skill-gap analysis.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/parsing"
	"github.com/jonathan/skill-matcher/internal/skillgap"
)

// ErrNotFound indicates a resource owned by the caller does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrNotFound
		invalid     *ErrValidation
		fields      validator.ValidationErrors
		unavailable *skillgap.InputUnavailableError
		unsupported *ingestion.UnsupportedFormatError
		extraction  *parsing.ExtractionError
		tooLarge    *http.MaxBytesError
	)

	switch {
	case errors.Is(err, db.ErrResumeExists):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &fields):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		if unavailable.NotFound() {
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal failures from clients.
func errorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
