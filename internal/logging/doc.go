// Package logging provides structured logging for the teamsgen CLI.
//
// It builds on log/slog with a TTY-aware text handler for interactive
// use, a JSON handler for log files, and a MultiHandler for writing to
// both at once. Verbosity flags map to levels via [LevelFromVerbosity];
// a Trace level below Debug covers per-file scaffolding detail.
//
// The default logger stays at Warn so the interactive prompt flow owns
// stdout; pass -v flags to surface Info and Debug records.
package logging
