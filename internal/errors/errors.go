package errors

import (
	"errors"
	"fmt"
)

// Common error types for the GymBuddy front-end
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnknownRole      = errors.New("unknown role")

	// Form errors
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidBookingWindow = errors.New("start time must be before end time")
	ErrClassNotFound        = errors.New("class not found")
	ErrTrainerNotFound      = errors.New("trainer not found for class")

	// Upstream errors
	ErrUnexpectedResponse = errors.New("unexpected response structure")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
