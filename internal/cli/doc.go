// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates flags and the two positional numbers into the application's
// configuration, and every failure into an ExitError.
package cli
