package errors

import (
	"github.com/cockroachdb/errors"
)

// Exit codes for the generate flow. These are the externally observable
// contract of the tool: scripts and the create command key off them, so
// their values must never change.
const (
	// ExitSuccess indicates the flow completed, or the user declined to
	// continue a re-run on an existing project.
	ExitSuccess = 0

	// ExitUnsupportedSchema indicates the existing manifest declares a
	// schema version this tool cannot work with.
	ExitUnsupportedSchema = 1

	// ExitNoUpdater indicates no core-files updater exists for the
	// stored generator version.
	ExitNoUpdater = 2

	// ExitNothingToUpdate indicates a build-system update was requested
	// but no generator version was ever stored for the project.
	ExitNothingToUpdate = 3

	// ExitUpdaterFailed indicates the core-files updater ran and
	// reported failure.
	ExitUpdaterFailed = 4
)

// Sentinel errors for the fatal configuration-state conditions.
var (
	// ErrUnsupportedSchema indicates an existing manifest schema version
	// outside the supported set.
	ErrUnsupportedSchema = errors.New("unsupported manifest schema version")

	// ErrNoUpdater indicates no core-files updater is registered for the
	// stored generator version.
	ErrNoUpdater = errors.New("no core files updater available")

	// ErrNothingToUpdate indicates an update was requested for a project
	// that has no stored generator version.
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrUpdaterFailed indicates the core-files updater reported failure.
	ErrUpdaterFailed = errors.New("core files updater failed")

	// ErrMissingName indicates a required name field is missing.
	ErrMissingName = errors.New("name is required")

	// ErrFolderExists indicates the target solution folder already exists.
	ErrFolderExists = errors.New("folder already exists")
)

// ExitError wraps an error with a process exit code and an optional
// suggestion. It implements the error interface and supports unwrapping
// via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and
// exit code. If err is nil, the returned ExitError will have a nil Err
// field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       code,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the
// exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return errors.Newf("exit code %d", e.Code).Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code from an error chain. A nil error maps
// to ExitSuccess; an error without an ExitError in its chain maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Re-exports so callers need a single errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)
