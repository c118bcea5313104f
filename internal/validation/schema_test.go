package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validRulesYAML = `meta:
  app_name: prakriti
  version: "2.0"
questions:
  prakriti:
    - id: P1
      text: "Natural body frame: thin/slender"
      weights:
        Vata: 1.0
  psychometric:
    - id: E1
      text: Outgoing, enthusiastic
mappings:
  career_rules:
    Vata: [Writer, Designer]
  dosha_thresholds:
    mild: 55
    moderate: 70
    severe: 85
  career_bonuses:
    - trait: Openness
      threshold: 60
      keywords: [Research, Creative]
      bonus: 10
`

const invalidRulesYAML = `questions:
  prakriti:
    - id: P1
      weights:
        Ether: 1.0
mappings:
  career_rules:
    Akasha: [Writer]
  dosha_thresholds:
    severe: 150
  career_bonuses:
    - trait: Grit
      threshold: 60
      keywords: []
      bonus: 10
`

const validSheetYAML = `patient:
  name: Asha Rao
  age: 34
  gender: female
prakriti:
  P1: 4
  P2: "5"
vikriti:
  V1: 2
psychometric:
  E1: 6
`

const validSheetJSON = `{"patient": {"name": "Asha"}, "prakriti": {"P1": 3}}`

const invalidSheetYAML = `patient:
  age: 34
prakriti:
  P1: four
`

func TestValidateRulesBytes_Valid(t *testing.T) {
	errs := ValidateRulesBytes([]byte(validRulesYAML))
	require.Empty(t, errs, "valid rules should have no errors")
}

func TestValidateRulesBytes_Empty(t *testing.T) {
	errs := ValidateRulesBytes([]byte(""))
	require.Empty(t, errs, "an empty rules file falls back to defaults")
}

func TestValidateRulesBytes_Invalid(t *testing.T) {
	errs := ValidateRulesBytes([]byte(invalidRulesYAML))
	require.NotEmpty(t, errs, "invalid rules should have errors")

	joined := joinErrs(errs)
	require.Contains(t, joined, "/questions/prakriti/0/weights")
	require.Contains(t, joined, "/mappings/career_rules")
	require.Contains(t, joined, "/mappings/dosha_thresholds/severe")
	require.Contains(t, joined, "/mappings/career_bonuses/0/trait")
	require.Contains(t, joined, "/mappings/career_bonuses/0/keywords")
}

func TestValidateRulesBytes_MalformedYAML(t *testing.T) {
	errs := ValidateRulesBytes([]byte("mappings: [unclosed"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateSheetBytes(t *testing.T) {
	require.Empty(t, ValidateSheetBytes([]byte(validSheetYAML)))
	require.Empty(t, ValidateSheetBytes([]byte(validSheetJSON)))

	errs := ValidateSheetBytes([]byte(invalidSheetYAML))
	require.NotEmpty(t, errs)
	joined := joinErrs(errs)
	require.Contains(t, joined, "/patient")
	require.Contains(t, joined, "/prakriti/P1")
}

func TestValidateSheet_IntegerKeys(t *testing.T) {
	doc := map[string]any{
		"patient":  map[string]any{"name": "Asha"},
		"prakriti": map[any]any{1: 4},
	}
	require.Empty(t, ValidateSheet(doc))
}

func joinErrs(errs []string) string {
	return strings.Join(errs, "\n")
}
