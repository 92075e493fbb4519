package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSubmissionInFlight is returned when a submit is attempted while a
// previous submission has not yet settled.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// ValidationError is a user-facing precondition failure. The triggering
// action is aborted in full; no state is mutated.
type ValidationError struct {
	Message string
	// MissingDays holds the display labels of week days lacking a
	// location when the submit gate fails that check.
	MissingDays []string
}

func (e *ValidationError) Error() string {
	if len(e.MissingDays) > 0 {
		return fmt.Sprintf("%s Missing for: %s", e.Message, strings.Join(e.MissingDays, ", "))
	}
	return e.Message
}

func validationErr(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// AsValidation unwraps a ValidationError from err, if there is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
