// Package main is the entry point for the teamsgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/teamsgen/teamsgen/cmd/teamsgen/commands"
	"github.com/teamsgen/teamsgen/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	os.Exit(errors.ExitCode(err))
}
