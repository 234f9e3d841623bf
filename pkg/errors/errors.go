package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrExternal indicates an upstream API failure
	ErrExternal = errors.New("external service error")
)

// Orchestration-specific errors

var (
	// ErrNoAgentsEnabled indicates an orchestration run was configured with zero roles
	ErrNoAgentsEnabled = errors.New("no agents enabled")

	// ErrDialogueUnavailable indicates the dialogue coordinator has no LLM client
	ErrDialogueUnavailable = errors.New("dialogue unavailable: no LLM client configured")

	// ErrMissingProjectData indicates required project input is absent
	ErrMissingProjectData = errors.New("required project data missing")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
