package workflow

import "errors"

// Sentinel errors forming the transition error taxonomy. Controllers
// map these onto HTTP status codes; the engine itself never retries.
var (
	// ErrUnauthorized means no valid acting identity was supplied.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the actor holds a valid identity but may not
	// perform this transition at the document's current stage.
	ErrForbidden = errors.New("actor is not authorized to act on this document at its current stage")

	// ErrNotFound means the document (or related row) does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrConflict means a concurrent transition won the race; the caller
	// saw stale state and must re-read before retrying.
	ErrConflict = errors.New("document state changed concurrently")

	// ErrTerminal means the document already reached APPROVED or
	// REJECTED and no further transitions are legal.
	ErrTerminal = errors.New("document is in a terminal state")
)

// ValidationError reports malformed or missing transition input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
