package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationFailureError(t *testing.T) {
	inner := errors.New("prakriti: P1 missing")

	tests := []struct {
		name string
		err  *ValidationFailureError
		want string
	}{
		{"message only", &ValidationFailureError{Message: "sheet rejected"}, "sheet rejected"},
		{"error only", &ValidationFailureError{Err: inner}, "prakriti: P1 missing"},
		{"both", &ValidationFailureError{Message: "answers.yaml", Err: inner}, "answers.yaml: prakriti: P1 missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	err := &ValidationFailureError{Message: "x", Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation failure", &ValidationFailureError{Message: "bad"}, ExitValidationFailed},
		{"wrapped validation failure", fmt.Errorf("evaluate: %w", &ValidationFailureError{Message: "bad"}), ExitValidationFailed},
		{"joined validation failure", errors.Join(errors.New("context"), &ValidationFailureError{Message: "bad"}), ExitValidationFailed},
		{"regular error", errors.New("config error"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
