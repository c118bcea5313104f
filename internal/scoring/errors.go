package scoring

import (
	"fmt"
	"strings"
)

// ValidationError lists the answers a strict scorer rejected.
type ValidationError struct {
	Bank       string
	Missing    []string
	OutOfRange []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.OutOfRange) > 0 {
		parts = append(parts, fmt.Sprintf("out of range %s", strings.Join(e.OutOfRange, ", ")))
	}
	return fmt.Sprintf("%s answers invalid: %s", e.Bank, strings.Join(parts, "; "))
}
