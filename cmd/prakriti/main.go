package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess          = 0 // Evaluation or command succeeded
	ExitValidationFailed = 1 // An answer sheet or rules file failed validation
	ExitError            = 2 // Configuration or runtime error
)

// ValidationFailureError indicates that the command ran, but its input (an
// answer sheet or rules file) was rejected.
type ValidationFailureError struct {
	Message string
	Err     error
}

func (e *ValidationFailureError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ValidationFailureError) Unwrap() error {
	return e.Err
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var validationErr *ValidationFailureError
	if errors.As(err, &validationErr) {
		return ExitValidationFailed
	}
	// All other errors are configuration/runtime errors
	return ExitError
}
