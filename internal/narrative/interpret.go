package narrative

import (
	"fmt"
	"strings"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/recommend"
	"github.com/kakunje/prakriti/internal/rules"
	"github.com/kakunje/prakriti/internal/scoring"
)

// InterpretSeverity returns a plain-language label for a severity level.
func InterpretSeverity(level recommend.SeverityLevel, t rules.Thresholds) string {
	switch level {
	case recommend.SeveritySevere:
		return fmt.Sprintf("Severe (≥%.0f%%): clinician review recommended", t.Severe)
	case recommend.SeverityModerate:
		return fmt.Sprintf("Moderate (%.0f-%.0f%%): needs steady attention", t.Moderate, t.Severe)
	case recommend.SeverityMild:
		return fmt.Sprintf("Mild (%.0f-%.0f%%): minor adjustments", t.Mild, t.Moderate)
	default:
		return fmt.Sprintf("Balanced (<%.0f%%)", t.Mild)
	}
}

// InterpretTrait returns a plain-language band for a trait percentage.
func InterpretTrait(pct float64) string {
	switch {
	case pct > 65:
		return "High"
	case pct >= 35:
		return "Moderate"
	default:
		return "Low"
	}
}

// CareerRationale expands a career item into the longer explanation used in
// reports: the evaluator's reason, the constitutional note and a stress cue.
func CareerRationale(item recommend.CareerItem, constitution scoring.Distribution, traits scoring.TraitDistribution) string {
	var parts []string
	if r := strings.TrimSpace(item.Rationale); r != "" {
		parts = append(parts, r)
	}
	parts = append(parts, constitutionNotes[constitution.Dominant()])
	if traits[q.Emotionality] > recommend.HighEmotionality {
		parts = append(parts, "Manageable stress and clear routines will help sustain performance.")
	}
	parts = append(parts, fmt.Sprintf("Score: %d", item.Score))
	return strings.Join(parts, " ")
}
