package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, invalid paths)
)

// ErrorResponse is the JSON shape of a command failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// outputJSON writes a value as indented JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// fail reports an error in the selected output format and exits.
func fail(code int, format string, args ...interface{}) {
	if humanOutput {
		outputError(code, format, args...)
	} else {
		_ = outputJSON(ErrorResponse{Error: fmt.Sprintf(format, args...)})
	}
	os.Exit(code)
}
