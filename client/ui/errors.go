package ui

import "errors"

// ActionableError carries a message meant for the player.
type ActionableError struct {
	Message string
}

func (e *ActionableError) Error() string {
	return e.Message
}

func NewActionableError(message string) *ActionableError {
	return &ActionableError{Message: message}
}

// MessageFor returns the player facing message of err, or fallback when err
// is not actionable.
func MessageFor(err error, fallback string) string {
	var actionable *ActionableError
	if errors.As(err, &actionable) {
		return actionable.Message
	}
	return fallback
}
