package scoring

import (
	"errors"
	"testing"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allAnswers(questions []q.Question, v int) q.Answers {
	a := make(q.Answers, len(questions))
	for _, question := range questions {
		a[question.ID] = v
	}
	return a
}

func TestCategoryScorer_MidpointFollowsWeightRatios(t *testing.T) {
	cat := q.Default()

	tests := []struct {
		name      string
		questions []q.Question
		want      Distribution
	}{
		{
			name:      "full prakriti bank",
			questions: cat.Constitution,
			// Vata 9.4, Pitta 6.6, Kapha 7.8 of 23.8 total weight.
			want: Distribution{q.Vata: 39.5, q.Pitta: 27.7, q.Kapha: 32.8},
		},
		{
			name:      "first ten prakriti items",
			questions: cat.Constitution[:10],
			// Vata 4.9, Pitta 2.9, Kapha 2.0 of 9.8 total weight.
			want: Distribution{q.Vata: 50.0, q.Pitta: 29.6, q.Kapha: 20.4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryScorer{}.Score(allAnswers(tt.questions, 3), tt.questions)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryScorer_MissingAnswersDefaultToMidpoint(t *testing.T) {
	cat := q.Default()
	scorer := CategoryScorer{}

	explicit := scorer.Score(allAnswers(cat.Constitution, 3), cat.Constitution)
	res := scorer.Evaluate(q.Answers{}, cat.Constitution)

	assert.Equal(t, explicit, res.Distribution)
	assert.Len(t, res.Defaulted, 25)
	assert.False(t, res.Degenerate)
}

func TestCategoryScorer_DegenerateFallsBackToUniform(t *testing.T) {
	questions := []q.Question{
		{ID: "Z1", Weights: map[q.Category]float64{}},
		{ID: "Z2", Weights: map[q.Category]float64{q.Vata: 0}},
	}

	res := CategoryScorer{}.Evaluate(q.Answers{"Z1": 5, "Z2": 1}, questions)
	assert.True(t, res.Degenerate)
	assert.Equal(t, Distribution{q.Vata: 33.3, q.Pitta: 33.3, q.Kapha: 33.3}, res.Distribution)

	empty := CategoryScorer{}.Score(q.Answers{}, nil)
	assert.Equal(t, Uniform(), empty)
}

func TestCategoryScorer_SumWithinRoundingSlack(t *testing.T) {
	cat := q.Default()
	for _, bank := range [][]q.Question{cat.Constitution, cat.State} {
		for v := q.ScaleMin; v <= q.ScaleMax; v++ {
			answers := allAnswers(bank, v)
			// Skew the sheet so the shares are not pure weight ratios.
			answers[bank[0].ID] = q.ScaleMax
			answers[bank[len(bank)-1].ID] = q.ScaleMin

			d := CategoryScorer{}.Score(answers, bank)
			for _, c := range q.Categories {
				assert.GreaterOrEqual(t, d[c], 0.0)
			}
			assert.InDelta(t, 100.0, d.Sum(), 0.3)
		}
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"binary value below the tie", 0.35, 0.3},
		{"float sum of 10.1 and 99.8 halved", 54.949999999999996, 54.9},
		{"exact tie rounds to even down", 0.25, 0.2},
		{"exact tie rounds to even up", 0.75, 0.8},
		{"one third", 100.0 / 3, 33.3},
		{"already one decimal", 39.5, 39.5},
		{"whole number", 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round1(tt.in))
		})
	}
}

func TestCategoryScorer_RoundsTiesToEven(t *testing.T) {
	questions := []q.Question{
		{ID: "a", Weights: map[q.Category]float64{q.Vata: 1}},
		{ID: "b", Weights: map[q.Category]float64{q.Pitta: 79}},
	}

	got := CategoryScorer{}.Score(q.Answers{}, questions)
	assert.Equal(t, Distribution{q.Vata: 1.2, q.Pitta: 98.8, q.Kapha: 0}, got)
	assert.InDelta(t, 100.0, got.Sum(), 1e-9)
}

func TestCategoryScorer_Idempotent(t *testing.T) {
	cat := q.Default()
	answers := q.Answers{"V1": 5, "V4": 2, "V7": 4, "V20": 1}

	first := CategoryScorer{}.Score(answers, cat.State)
	second := CategoryScorer{}.Score(answers, cat.State)
	assert.Equal(t, first, second)
}

func TestCategoryScorer_ScoreStrict(t *testing.T) {
	questions := q.Default().Constitution[:3]

	d, err := CategoryScorer{}.ScoreStrict("prakriti", q.Answers{"P1": 4, "P2": 9}, questions)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "prakriti", verr.Bank)
	assert.Equal(t, []string{"P3"}, verr.Missing)
	assert.Equal(t, []string{"P2"}, verr.OutOfRange)
	assert.Equal(t, Distribution{q.Vata: 100, q.Pitta: 0, q.Kapha: 0}, d)
	assert.Equal(t, "prakriti answers invalid: missing P3; out of range P2", err.Error())

	_, err = CategoryScorer{}.ScoreStrict("prakriti", q.Answers{"P1": 1, "P2": 2, "P3": 5}, questions)
	require.NoError(t, err)
}

func TestDistribution_Dominant(t *testing.T) {
	tests := []struct {
		name string
		d    Distribution
		want q.Category
	}{
		{"clear pitta", Distribution{q.Vata: 20, q.Pitta: 50, q.Kapha: 30}, q.Pitta},
		{"clear kapha", Distribution{q.Vata: 20, q.Pitta: 30, q.Kapha: 50}, q.Kapha},
		{"three-way tie", Distribution{q.Vata: 33.3, q.Pitta: 33.3, q.Kapha: 33.3}, q.Vata},
		{"pitta kapha tie", Distribution{q.Vata: 10, q.Pitta: 45, q.Kapha: 45}, q.Pitta},
		{"vata kapha tie", Distribution{q.Vata: 40, q.Pitta: 20, q.Kapha: 40}, q.Vata},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.d.Dominant())
		})
	}
}

func fullPersonality(v int) q.Answers {
	a := q.Answers{}
	for _, id := range q.Default().RequiredPersonalityIDs() {
		a[id] = v
	}
	return a
}

func TestTraitScorer_PairedAveraging(t *testing.T) {
	scorer := NewTraitScorer(q.Default().Pairs())

	answers := q.Answers{
		"E1": 7, "E6": 1, // raw 7   -> 100
		"A6": 1, "A1": 7, // raw 1   -> 0
		"C1": 6, "C6": 2, // raw 6   -> 83.3
		"N1": 4, "N6": 4, // raw 4   -> 50
		"O1": 5, "O6": 2, // raw 5.5 -> 75
	}
	got := scorer.Score(answers)
	assert.Equal(t, TraitDistribution{
		q.Extraversion:      100,
		q.Agreeableness:     0,
		q.Conscientiousness: 83.3,
		q.Emotionality:      50,
		q.Openness:          75,
	}, got)
}

func TestTraitScorer_RangeBounds(t *testing.T) {
	scorer := NewTraitScorer(nil)
	for v := q.PersonalityMin; v <= q.PersonalityMax; v++ {
		for _, pct := range scorer.Score(fullPersonality(v)) {
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
		}
	}
}

func TestTraitScorer_MissingItemFallsBackToNeutral(t *testing.T) {
	scorer := NewTraitScorer(nil)
	want := TraitDistribution{
		q.Extraversion:      50,
		q.Agreeableness:     50,
		q.Conscientiousness: 50,
		q.Emotionality:      50,
		q.Openness:          50,
	}

	for _, id := range q.Default().RequiredPersonalityIDs() {
		t.Run(id, func(t *testing.T) {
			answers := fullPersonality(7)
			delete(answers, id)

			res := scorer.Evaluate(answers)
			assert.True(t, res.Fallback)
			assert.Equal(t, []string{id}, res.Missing)
			assert.Equal(t, want, res.Traits)
		})
	}
}

func TestTraitScorer_ScoreStrict(t *testing.T) {
	scorer := NewTraitScorer(nil)

	answers := fullPersonality(4)
	delete(answers, "O6")
	answers["E1"] = 8

	_, err := scorer.ScoreStrict(answers)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "psychometric", verr.Bank)
	assert.Equal(t, []string{"O6"}, verr.Missing)
	assert.Equal(t, []string{"E1"}, verr.OutOfRange)

	traits, err := scorer.ScoreStrict(fullPersonality(4))
	require.NoError(t, err)
	assert.Equal(t, NeutralTraits(), traits)
}
