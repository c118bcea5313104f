package recommend

import (
	"fmt"
	"strings"

	"github.com/kakunje/prakriti/internal/rules"
)

// SeverityLevel classifies a combined category percentage.
type SeverityLevel string

const (
	SeverityBalanced SeverityLevel = "balanced"
	SeverityMild     SeverityLevel = "mild"
	SeverityModerate SeverityLevel = "moderate"
	SeveritySevere   SeverityLevel = "severe"
)

var severityRank = map[SeverityLevel]int{
	SeverityBalanced: 0,
	SeverityMild:     1,
	SeverityModerate: 2,
	SeveritySevere:   3,
}

// SeverityLevels lists the levels in ascending order.
var SeverityLevels = []SeverityLevel{SeverityBalanced, SeverityMild, SeverityModerate, SeveritySevere}

func (s SeverityLevel) String() string {
	return string(s)
}

// AtLeast returns true if s is at or above the target level.
func (s SeverityLevel) AtLeast(target SeverityLevel) bool {
	return severityRank[s] >= severityRank[target]
}

// ParseSeverityLevel converts a string flag value to a SeverityLevel.
func ParseSeverityLevel(s string) (SeverityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "balanced":
		return SeverityBalanced, nil
	case "mild":
		return SeverityMild, nil
	case "moderate":
		return SeverityModerate, nil
	case "severe":
		return SeveritySevere, nil
	default:
		return "", fmt.Errorf("invalid severity level %q: must be balanced, mild, moderate, or severe", s)
	}
}

// Classify maps a percentage onto a level. Each threshold is an inclusive
// lower bound.
func Classify(value float64, t rules.Thresholds) SeverityLevel {
	switch {
	case value >= t.Severe:
		return SeveritySevere
	case value >= t.Moderate:
		return SeverityModerate
	case value >= t.Mild:
		return SeverityMild
	default:
		return SeverityBalanced
	}
}
