package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Recognition errors.
	ErrRecognitionUnavailable = errors.New("recognition produced nothing usable")

	// Clipboard errors.
	ErrClipboardWriteFailed = errors.New("clipboard write failed")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// Capture errors.
	ErrWatchUnavailable = errors.New("capture watch unavailable")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
