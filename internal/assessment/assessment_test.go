package assessment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kakunje/prakriti/internal/intake"
	"github.com/kakunje/prakriti/internal/lifestyle"
	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/recommend"
	"github.com/kakunje/prakriti/internal/rules"
	"github.com/kakunje/prakriti/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var evalTime = time.Date(2026, time.May, 10, 8, 30, 0, 0, time.UTC)

// vataSheet answers every question: Vata-weighted items high, others low,
// personality items neutral.
func vataSheet() *intake.Sheet {
	cat := q.Default()
	s := &intake.Sheet{
		Patient:      intake.Patient{Name: "asha rao", Age: 34, Gender: "F"},
		Assessor:     "Dr. K",
		Constitution: q.Answers{},
		State:        q.Answers{},
		Personality:  q.Answers{},
	}
	for _, question := range cat.Constitution {
		if question.Weight(q.Vata) > 0 {
			s.Constitution[question.ID] = 5
		} else {
			s.Constitution[question.ID] = 1
		}
	}
	for _, question := range cat.State {
		if question.Weight(q.Pitta) > 0 {
			s.State[question.ID] = 5
		} else {
			s.State[question.ID] = 1
		}
	}
	for _, it := range cat.Personality {
		s.Personality[it.ID] = 4
	}
	return s
}

func TestEvaluate_FullSheet(t *testing.T) {
	e := NewEngine(nil, nil)

	r, err := e.Evaluate(context.Background(), vataSheet(), Options{Now: evalTime})
	require.NoError(t, err)

	assert.Equal(t, q.Vata, r.DominantConstitution)
	assert.Equal(t, q.Pitta, r.DominantState)
	assert.InDelta(t, 100, r.Constitution.Sum(), 0.11)
	assert.Equal(t, scoring.NeutralTraits(), r.Traits)
	assert.Equal(t, evalTime, r.CreatedAt)
	assert.Equal(t, "Dr. K", r.Assessor)
	assert.Equal(t, "Asha Rao", r.DisplayName())
	assert.Equal(t, rules.DefaultAppName, r.App.AppName)
	assert.Equal(t, rules.DefaultThresholds(), r.Thresholds)
	assert.False(t, r.Fallbacks.Any())

	require.NotEmpty(t, r.Recommendations.Careers)
	assert.Len(t, r.CareerNotes, len(r.Recommendations.Careers))
	for i, note := range r.CareerNotes {
		assert.Equal(t, r.Recommendations.Careers[i].Label, note.Label)
		assert.Contains(t, note.Text, "Score: ")
	}

	assert.Contains(t, r.Narrative.Summary, "Asha Rao — you have Vata-style strengths")
	assert.Contains(t, r.Narrative.Summary, "hot & impatient")
	assert.Equal(t, lifestyle.Grishma, r.Profile.Season)
	assert.Equal(t, lifestyle.Adult, r.Profile.AgeGroup)
	assert.Contains(t, r.Profile.Focus, q.Pitta)
}

func TestEvaluate_EmptySheetFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEngine(rules.Default(), zap.New(core))

	sheet := &intake.Sheet{
		Patient:      intake.Patient{Name: "Ravi"},
		Constitution: q.Answers{"P99": 3},
		State:        q.Answers{},
		Personality:  q.Answers{"E1": 9},
	}
	r, err := e.Evaluate(context.Background(), sheet, Options{Now: evalTime})
	require.NoError(t, err)

	assert.Len(t, r.Fallbacks.ConstitutionDefaulted, 25)
	assert.Len(t, r.Fallbacks.StateDefaulted, 20)
	assert.True(t, r.Fallbacks.NeutralTraits)
	assert.Equal(t, []string{"P99"}, r.Fallbacks.UnknownIDs)
	assert.Equal(t, []string{"E1"}, r.Fallbacks.OutOfRange)
	assert.Equal(t, scoring.NeutralTraits(), r.Traits)
	assert.ElementsMatch(t,
		[]string{FallbackDefaulted, FallbackOutOfRange, FallbackNeutralTraits, FallbackUnknownID},
		r.Fallbacks.Kinds())

	assert.Equal(t, 1, logs.FilterMessage("personality items missing, using neutral traits").Len())
	assert.Equal(t, 1, logs.FilterMessage("missing answers scored at midpoint").Len())
	assert.Equal(t, 1, logs.FilterMessage("assessment evaluated").Len())
}

func TestEvaluate_DegenerateDistribution(t *testing.T) {
	cfg := rules.Default()
	cfg.Questions.State = []q.Question{{ID: "X1", Prompt: "Zero", Weights: map[q.Category]float64{q.Vata: 0}}}
	e := NewEngine(cfg, nil)

	sheet := vataSheet()
	sheet.State = q.Answers{"X1": 4}
	r, err := e.Evaluate(context.Background(), sheet, Options{Now: evalTime})
	require.NoError(t, err)

	assert.True(t, r.Fallbacks.StateDegenerate)
	assert.Equal(t, scoring.Uniform(), r.State)
	assert.Equal(t, q.Vata, r.DominantState)
	assert.Contains(t, r.Fallbacks.Kinds(), FallbackDegenerate)
}

func TestEvaluate_StrictJoinsValidationErrors(t *testing.T) {
	e := NewEngine(nil, nil)

	sheet := vataSheet()
	delete(sheet.Constitution, "P3")
	delete(sheet.Personality, "O6")
	sheet.State["V2"] = 7

	_, err := e.Evaluate(context.Background(), sheet, Options{Strict: true, Now: evalTime})
	require.Error(t, err)

	var banks []string
	for _, wrapped := range err.(interface{ Unwrap() []error }).Unwrap() {
		var verr *scoring.ValidationError
		require.True(t, errors.As(wrapped, &verr))
		banks = append(banks, verr.Bank)
	}
	assert.Equal(t, []string{"prakriti", "vikriti", "psychometric"}, banks)
	assert.Contains(t, err.Error(), "missing P3")
	assert.Contains(t, err.Error(), "out of range V2")
}

func TestEvaluate_StrictAcceptsCompleteSheet(t *testing.T) {
	e := NewEngine(nil, nil)
	_, err := e.Evaluate(context.Background(), vataSheet(), Options{Strict: true, Now: evalTime})
	require.NoError(t, err)
}

func TestEvaluate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(nil, nil).Evaluate(ctx, vataSheet(), Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate_NilSheet(t *testing.T) {
	_, err := NewEngine(nil, nil).Evaluate(context.Background(), nil, Options{})
	require.Error(t, err)
}

func TestEvaluate_DefaultsNow(t *testing.T) {
	before := time.Now().UTC()
	r, err := NewEngine(nil, nil).Evaluate(context.Background(), vataSheet(), Options{})
	require.NoError(t, err)
	assert.False(t, r.CreatedAt.Before(before.Add(-time.Second)))
}

func TestEvaluate_CareersDeduplicated(t *testing.T) {
	cfg := rules.Default()
	cfg.Mappings.CareerRules[q.Vata] = []string{"Writer", "Writer", "Designer"}
	e := NewEngine(cfg, nil)

	r, err := e.Evaluate(context.Background(), vataSheet(), Options{Now: evalTime})
	require.NoError(t, err)

	var labels []string
	for _, c := range r.Recommendations.Careers {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Writer", "Designer"}, labels)
}

func TestEvaluate_SeverityUsesConfiguredThresholds(t *testing.T) {
	cfg := rules.Default()
	cfg.Mappings.Thresholds = rules.Thresholds{Mild: 10, Moderate: 20, Severe: 30}
	e := NewEngine(cfg, nil)

	r, err := e.Evaluate(context.Background(), vataSheet(), Options{Now: evalTime})
	require.NoError(t, err)
	assert.Equal(t, recommend.SeveritySevere, r.Recommendations.Health.Severity[q.Vata])
	assert.Equal(t, cfg.Mappings.Thresholds, r.Thresholds)
}
