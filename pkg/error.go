package pkg

// Sentinel errors for the runr package and its subpackages.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrReadInput is returned when reading input fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrProjectNotFound is returned when no pyproject.toml with a project name
// can be located in a directory or any of its parent directories.
var ErrProjectNotFound = MakeErrorf("project file not found")

// ErrProjectInvalid is returned when a pyproject.toml file cannot be parsed
// or does not declare a project name.
//
// This error should be wrapped with the underlying parse error
// to preserve the error chain.
var ErrProjectInvalid = MakeErrorf("invalid project file")

// ErrTaskNotFound is returned when a requested task is neither defined in
// the project file nor installed as a script in the virtual environment.
//
// This error should be wrapped with the name of the task that was
// not found.
var ErrTaskNotFound = MakeErrorf("task not found")

// ErrTaskInvalid is returned when a task table entry cannot be interpreted
// as a task definition.
//
// This error should be wrapped with additional context identifying the
// offending entry.
var ErrTaskInvalid = MakeErrorf("invalid task definition")

// ErrTaskEnvironment is returned when composing a task's environment fails.
//
// This error should be wrapped with the underlying syntax or I/O error
// to preserve the error chain.
var ErrTaskEnvironment = MakeErrorf("failed to compose task environment")

// ErrInvalidFormat is returned when an invalid output format is specified.
//
// This error should be wrapped with additional context that specifies the
// invalid format along with a list of valid formats.
var ErrInvalidFormat = MakeErrorf("invalid format")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
func (e Error) Wrap(err ...error) Error {
	return append(e, err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(e, fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
