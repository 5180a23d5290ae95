package internaltypes

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrCursorNotFound   = errors.New("cursor not found or expired")
	ErrSuperseded       = errors.New("query superseded by a newer one")
	ErrMissingID        = errors.New("missing id")
	ErrUnavailable      = errors.New("venue is not available for the selected dates")
)

// ValidationError is bad caller input. Its message is fit for display.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}
