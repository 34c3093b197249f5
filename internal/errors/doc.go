// Package errors provides error handling conventions for the teamsgen CLI.
//
// This package defines sentinel errors for the fatal configuration-state
// conditions of the generate flow, an ExitError type for CLI exit code
// handling, and the exit code contract of the tool.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, tgerrors.ErrNoUpdater) {
//	    // handle missing updater case
//	}
//
// # Exit Codes
//
// The generate flow signals its outcome through distinct exit codes:
//
//   - ExitSuccess (0): flow completed, or user declined a re-run
//   - ExitUnsupportedSchema (1): existing manifest schema not supported
//   - ExitNoUpdater (2): no core-files updater for the stored version
//   - ExitNothingToUpdate (3): build-system update with no stored version
//   - ExitUpdaterFailed (4): the core-files updater reported failure
//
// # ExitError
//
// [ExitError] carries the exit code through the error chain to a single
// top-level handler in main:
//
//	err := tgerrors.NewExitError(tgerrors.ErrNoUpdater, tgerrors.ExitNoUpdater)
//	os.Exit(tgerrors.ExitCode(err))
package errors
