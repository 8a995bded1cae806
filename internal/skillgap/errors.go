package skillgap

import "fmt"

// Input kinds
const (
	KindResume = "resume"
	KindJob    = "job"
)

// InputUnavailableError reports that a resume or job needed for an analysis
// could not be loaded. The whole analysis fails; no partial result is returned.
// Cause is nil when the record does not exist.
type InputUnavailableError struct {
	Kind  string
	ID    string
	Cause error
}

func (e *InputUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %s %s: %v", e.Kind, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *InputUnavailableError) Unwrap() error {
	return e.Cause
}

// NotFound reports whether the record is missing, as opposed to the store failing.
func (e *InputUnavailableError) NotFound() bool {
	return e.Cause == nil
}
