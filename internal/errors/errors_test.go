package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNoUpdater, ExitNoUpdater),
			want: "no core files updater available",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("updating project: %w", ErrUpdaterFailed), ExitUpdaterFailed),
			want: "updating project: core files updater failed",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitNothingToUpdate),
			want: "exit code 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	err := NewExitError(fmt.Errorf("loading manifest: %w", ErrUnsupportedSchema), ExitUnsupportedSchema)

	if !Is(err, ErrUnsupportedSchema) {
		t.Error("errors.Is should find the sentinel through the ExitError")
	}

	var exitErr *ExitError
	if !As(err, &exitErr) {
		t.Fatal("errors.As should find the ExitError")
	}
	if exitErr.Code != ExitUnsupportedSchema {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUnsupportedSchema)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "plain error", err: New("boom"), want: 1},
		{name: "unsupported schema", err: NewExitError(ErrUnsupportedSchema, ExitUnsupportedSchema), want: 1},
		{name: "no updater", err: NewExitError(ErrNoUpdater, ExitNoUpdater), want: 2},
		{name: "nothing to update", err: NewExitError(ErrNothingToUpdate, ExitNothingToUpdate), want: 3},
		{name: "updater failed", err: NewExitError(ErrUpdaterFailed, ExitUpdaterFailed), want: 4},
		{
			name: "wrapped exit error",
			err:  Wrap(NewExitError(ErrNoUpdater, ExitNoUpdater), "running generate"),
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError_Suggestion(t *testing.T) {
	err := NewExitErrorWithSuggestion(ErrNoUpdater, ExitNoUpdater,
		"Upgrade manually or re-run the generator on a fresh folder")

	var exitErr *ExitError
	if !As(err, &exitErr) {
		t.Fatal("errors.As should find the ExitError")
	}
	if exitErr.Suggestion == "" {
		t.Error("Suggestion should not be empty")
	}
}
