// Package editor provides utilities for opening the generated project
// in the user's editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/teamsgen/teamsgen/internal/errors"
)

// OpenFolder opens the given folder in the user's editor.
// The path is normalized for the current platform before the open call.
func OpenFolder(path string) error {
	return openFolder(NormalizePath(path, runtime.GOOS), runCommand)
}

// runner abstracts command execution for tests.
type runner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func openFolder(path string, run runner) error {
	editorCmd, args := detectEditor(path)
	if editorCmd == "" {
		return errors.Newf("no editor found to open %s (set $EDITOR or install the 'code' CLI)", path)
	}

	fmt.Printf("Opening: %s\n", path)

	if err := run(editorCmd, args...); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// detectEditor returns the editor command and arguments to open a folder.
// Preference order: the 'code' CLI (opens a folder as a workspace), then
// $VISUAL, then $EDITOR.
func detectEditor(path string) (string, []string) {
	if _, err := exec.LookPath("code"); err == nil {
		return "code", []string{"--new-window", path}
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual, []string{path}
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed, []string{path}
	}
	return "", nil
}

// NormalizePath applies platform-specific path normalization before the
// open call. Only the Windows family needs it: backslashes become
// forward slashes and a lower-case drive letter is upper-cased, which
// keeps workspace identity stable across invocations.
func NormalizePath(path, goos string) string {
	if goos != "windows" {
		return path
	}

	path = strings.ReplaceAll(path, `\`, "/")
	if len(path) >= 2 && path[1] == ':' && path[0] >= 'a' && path[0] <= 'z' {
		path = strings.ToUpper(path[:1]) + path[1:]
	}
	return path
}
