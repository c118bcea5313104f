package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Constitution, 25)
	assert.Len(t, c.State, 20)
	assert.Len(t, c.Personality, 10)
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Constitution[0].Weights[Vata] = 42
	b := Default()
	assert.Equal(t, 1.0, b.Constitution[0].Weights[Vata])
}

func TestPairs_FollowTraitOrder(t *testing.T) {
	pairs := Default().Pairs()
	require.Len(t, pairs, 5)

	want := []TraitPair{
		{Trait: Extraversion, Positive: "E1", Reversed: "E6"},
		{Trait: Agreeableness, Positive: "A6", Reversed: "A1"},
		{Trait: Conscientiousness, Positive: "C1", Reversed: "C6"},
		{Trait: Emotionality, Positive: "N1", Reversed: "N6"},
		{Trait: Openness, Positive: "O1", Reversed: "O6"},
	}
	assert.Equal(t, want, pairs)
	assert.Equal(t, []string{"E1", "E6", "A6", "A1", "C1", "C6", "N1", "N6", "O1", "O6"}, Default().RequiredPersonalityIDs())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"vata", Vata, false},
		{"PITTA", Pitta, false},
		{" Kapha ", Kapha, false},
		{"ether", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_ReportsProblems(t *testing.T) {
	c := &Catalog{
		Constitution: []Question{
			{ID: "P1", Weights: map[Category]float64{Vata: 1}},
			{ID: "P1", Weights: map[Category]float64{"Ether": 1}},
			{ID: "P2", Weights: map[Category]float64{Kapha: -0.5}},
		},
		Personality: []Item{
			{ID: "E1", Trait: Extraversion},
			{ID: "E2", Trait: Extraversion},
		},
	}

	err := c.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `duplicate id "P1"`)
	assert.Contains(t, msg, `unknown category "Ether"`)
	assert.Contains(t, msg, "negative weight")
	assert.Contains(t, msg, "trait Extraversion needs exactly one positive and one reversed item (got 2/0)")
	assert.Contains(t, msg, "trait Openness")
}

func TestAnswersLookup(t *testing.T) {
	a := Answers{"P1": 4}
	v, ok := a.Lookup("P1")
	assert.True(t, ok)
	assert.Equal(t, 4, v)
	_, ok = a.Lookup("P2")
	assert.False(t, ok)
}
