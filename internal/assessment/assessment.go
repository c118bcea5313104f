// Package assessment runs the full evaluation pipeline for one answer sheet:
// category and trait scoring, recommendations, narrative and the personal
// lifestyle context.
package assessment

import (
	"context"
	"errors"
	"time"

	"github.com/kakunje/prakriti/internal/intake"
	"github.com/kakunje/prakriti/internal/lifestyle"
	"github.com/kakunje/prakriti/internal/narrative"
	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/recommend"
	"github.com/kakunje/prakriti/internal/rules"
	"github.com/kakunje/prakriti/internal/scoring"
	"go.uber.org/zap"
)

// Fallback kinds reported in Fallbacks.Kinds.
const (
	FallbackDefaulted     = "defaulted_answer"
	FallbackOutOfRange    = "out_of_range"
	FallbackDegenerate    = "degenerate_distribution"
	FallbackNeutralTraits = "neutral_traits"
	FallbackUnknownID     = "unknown_id"
)

// Options controls a single evaluation.
type Options struct {
	// Strict rejects sheets with missing or out-of-range answers instead
	// of falling back to defaults.
	Strict bool
	// Now stamps the report. Zero means time.Now.
	Now time.Time
}

// Fallbacks records which silent fallbacks fired during scoring.
type Fallbacks struct {
	ConstitutionDefaulted  []string `json:"prakriti_defaulted,omitempty"`
	StateDefaulted         []string `json:"vikriti_defaulted,omitempty"`
	ConstitutionDegenerate bool     `json:"prakriti_degenerate,omitempty"`
	StateDegenerate        bool     `json:"vikriti_degenerate,omitempty"`
	PersonalityMissing     []string `json:"psychometric_missing,omitempty"`
	NeutralTraits          bool     `json:"neutral_traits,omitempty"`
	OutOfRange             []string `json:"out_of_range,omitempty"`
	UnknownIDs             []string `json:"unknown_ids,omitempty"`
}

// Any reports whether any fallback fired.
func (f Fallbacks) Any() bool {
	return len(f.Kinds()) > 0
}

// Kinds lists the distinct fallback kinds that fired.
func (f Fallbacks) Kinds() []string {
	var kinds []string
	if len(f.ConstitutionDefaulted) > 0 || len(f.StateDefaulted) > 0 {
		kinds = append(kinds, FallbackDefaulted)
	}
	if len(f.OutOfRange) > 0 {
		kinds = append(kinds, FallbackOutOfRange)
	}
	if f.ConstitutionDegenerate || f.StateDegenerate {
		kinds = append(kinds, FallbackDegenerate)
	}
	if f.NeutralTraits {
		kinds = append(kinds, FallbackNeutralTraits)
	}
	if len(f.UnknownIDs) > 0 {
		kinds = append(kinds, FallbackUnknownID)
	}
	return kinds
}

// CareerNote is the long-form rationale printed for one career suggestion.
type CareerNote struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Report is the complete outcome of one evaluation. It is what the renderers,
// the store and the HTTP API consume.
type Report struct {
	ID        string         `json:"id,omitempty"`
	PatientID string         `json:"patient_id,omitempty"`
	App       rules.Meta     `json:"app"`
	Patient   intake.Patient `json:"patient"`
	Assessor  string         `json:"assessor,omitempty"`
	CreatedAt time.Time      `json:"created_at"`

	Constitution         scoring.Distribution      `json:"prakriti"`
	State                scoring.Distribution      `json:"vikriti"`
	Traits               scoring.TraitDistribution `json:"traits"`
	DominantConstitution q.Category                `json:"dominant_prakriti"`
	DominantState        q.Category                `json:"dominant_vikriti"`

	Thresholds      rules.Thresholds    `json:"thresholds"`
	Recommendations recommend.Result    `json:"recommendations"`
	CareerNotes     []CareerNote        `json:"career_notes"`
	Narrative       narrative.Narrative `json:"narrative"`
	Profile         lifestyle.Profile   `json:"profile"`
	Fallbacks       Fallbacks           `json:"fallbacks"`
}

// DisplayName is the patient name as printed on the report.
func (r *Report) DisplayName() string {
	return narrative.DisplayName(r.Patient.Name)
}

// Engine evaluates answer sheets against a catalog and rule set.
type Engine struct {
	rules     *rules.Config
	category  scoring.CategoryScorer
	traits    *scoring.TraitScorer
	recommend *recommend.Engine
	logger    *zap.Logger
}

// NewEngine builds an engine over cfg. A nil cfg uses rules.Default() and a
// nil logger discards output.
func NewEngine(cfg *rules.Config, logger *zap.Logger) *Engine {
	if cfg == nil {
		cfg = rules.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		rules:     cfg,
		traits:    scoring.NewTraitScorer(cfg.Questions.Pairs()),
		recommend: recommend.NewEngine(cfg),
		logger:    logger,
	}
}

// Rules returns the rule configuration the engine was built with.
func (e *Engine) Rules() *rules.Config {
	return e.rules
}

// Evaluate scores sheet and assembles the report. In strict mode every
// *scoring.ValidationError is returned joined and no report is produced.
func (e *Engine) Evaluate(ctx context.Context, sheet *intake.Sheet, opts Options) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, errors.New("assessment: nil answer sheet")
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	cat := &e.rules.Questions
	log := e.logger.With(zap.String("patient", sheet.Patient.Name))

	if opts.Strict {
		if err := e.validateStrict(sheet); err != nil {
			log.Debug("strict validation failed", zap.Error(err))
			return nil, err
		}
	}

	cons := e.category.Evaluate(sheet.Constitution, cat.Constitution)
	state := e.category.Evaluate(sheet.State, cat.State)
	traits := e.traits.Evaluate(sheet.Personality)

	fb := Fallbacks{
		ConstitutionDefaulted:  cons.Defaulted,
		StateDefaulted:         state.Defaulted,
		ConstitutionDegenerate: cons.Degenerate,
		StateDegenerate:        state.Degenerate,
		PersonalityMissing:     traits.Missing,
		NeutralTraits:          traits.Fallback,
		UnknownIDs:             sheet.UnknownIDs(cat),
	}
	fb.OutOfRange = append(fb.OutOfRange, cons.OutOfRange...)
	fb.OutOfRange = append(fb.OutOfRange, state.OutOfRange...)
	fb.OutOfRange = append(fb.OutOfRange, traits.OutOfRange...)
	e.logFallbacks(log, fb)

	recs := e.recommend.Recommend(cons.Distribution, state.Distribution, traits.Traits)
	recs.Careers = recommend.Dedupe(recs.Careers)

	notes := make([]CareerNote, 0, len(recs.Careers))
	for _, item := range recs.Careers {
		notes = append(notes, CareerNote{
			Label: item.Label,
			Text:  narrative.CareerRationale(item, cons.Distribution, traits.Traits),
		})
	}

	report := &Report{
		App:                  e.rules.Meta,
		Patient:              sheet.Patient,
		Assessor:             sheet.Assessor,
		CreatedAt:            now.UTC(),
		Constitution:         cons.Distribution,
		State:                state.Distribution,
		Traits:               traits.Traits,
		DominantConstitution: cons.Distribution.Dominant(),
		DominantState:        state.Distribution.Dominant(),
		Thresholds:           e.rules.Mappings.Thresholds,
		Recommendations:      recs,
		CareerNotes:          notes,
		Narrative: narrative.Synthesize(narrative.Input{
			Name:            sheet.Patient.Name,
			Constitution:    cons.Distribution,
			State:           state.Distribution,
			Traits:          traits.Traits,
			Recommendations: recs,
		}),
		Profile:   lifestyle.Build(sheet.Patient.Age, sheet.Patient.Gender, now, cons.Distribution, state.Distribution),
		Fallbacks: fb,
	}

	log.Debug("assessment evaluated",
		zap.Stringer("prakriti", report.DominantConstitution),
		zap.Stringer("vikriti", report.DominantState),
		zap.Int("careers", len(recs.Careers)))
	return report, nil
}

func (e *Engine) validateStrict(sheet *intake.Sheet) error {
	cat := &e.rules.Questions
	var errs []error
	if _, err := e.category.ScoreStrict("prakriti", sheet.Constitution, cat.Constitution); err != nil {
		errs = append(errs, err)
	}
	if _, err := e.category.ScoreStrict("vikriti", sheet.State, cat.State); err != nil {
		errs = append(errs, err)
	}
	if _, err := e.traits.ScoreStrict(sheet.Personality); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Engine) logFallbacks(log *zap.Logger, fb Fallbacks) {
	if n := len(fb.ConstitutionDefaulted) + len(fb.StateDefaulted); n > 0 {
		log.Debug("missing answers scored at midpoint",
			zap.Strings("prakriti", fb.ConstitutionDefaulted),
			zap.Strings("vikriti", fb.StateDefaulted))
	}
	if fb.ConstitutionDegenerate || fb.StateDegenerate {
		log.Warn("degenerate distribution replaced by uniform",
			zap.Bool("prakriti", fb.ConstitutionDegenerate),
			zap.Bool("vikriti", fb.StateDegenerate))
	}
	if fb.NeutralTraits {
		log.Warn("personality items missing, using neutral traits", zap.Strings("missing", fb.PersonalityMissing))
	}
	if len(fb.OutOfRange) > 0 {
		log.Warn("answers outside the scale", zap.Strings("ids", fb.OutOfRange))
	}
	if len(fb.UnknownIDs) > 0 {
		log.Debug("ignoring unknown answer ids", zap.Strings("ids", fb.UnknownIDs))
	}
}
