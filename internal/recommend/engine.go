// Package recommend turns category and trait percentages into career,
// relationship and health recommendations. The evaluators are stateless and
// read only the rule configuration they were built with.
package recommend

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/rules"
	"github.com/kakunje/prakriti/internal/scoring"
)

// CareerItem is one ranked career suggestion.
type CareerItem struct {
	Label     string   `json:"label"`
	Score     int      `json:"score"`
	Rationale string   `json:"rationale"`
	Bonuses   []string `json:"bonuses,omitempty"`
}

// Tip is one relationship suggestion.
type Tip struct {
	Title     string `json:"title"`
	Rationale string `json:"rationale"`
}

// Health holds the canned advice for the dominant constitutional category and
// the severity of every category's combined percentage.
type Health struct {
	Diet      []string                     `json:"diet"`
	Lifestyle []string                     `json:"lifestyle"`
	Herbs     []string                     `json:"herbs"`
	Severity  map[q.Category]SeverityLevel `json:"severity"`
	Combined  scoring.Distribution         `json:"combined"`
}

// Result bundles the three evaluator outputs.
type Result struct {
	Careers      []CareerItem `json:"careers"`
	Relationship []Tip        `json:"relationship"`
	Health       Health       `json:"health"`
}

// Engine evaluates recommendation rules against score distributions.
type Engine struct {
	rules *rules.Config
}

// NewEngine creates an engine over cfg. A nil cfg uses rules.Default().
func NewEngine(cfg *rules.Config) *Engine {
	if cfg == nil {
		cfg = rules.Default()
	}
	return &Engine{rules: cfg}
}

// Recommend runs all three evaluators.
func (e *Engine) Recommend(constitution, state scoring.Distribution, traits scoring.TraitDistribution) Result {
	return Result{
		Careers:      e.Career(constitution, traits),
		Relationship: e.Relationship(constitution, traits),
		Health:       e.Health(constitution, state),
	}
}

// Career scores the role list configured for the dominant constitutional
// category. Results are sorted by score descending; ties keep configured order.
func (e *Engine) Career(constitution scoring.Distribution, traits scoring.TraitDistribution) []CareerItem {
	dominant := constitution.Dominant()
	m := e.rules.Mappings
	base := m.CareerBaseScore
	if base == 0 {
		base = rules.DefaultCareerBaseScore
	}

	roles := e.rules.Roles(dominant)
	items := make([]CareerItem, 0, len(roles)+len(m.SyntheticRoles))
	for _, role := range roles {
		item := CareerItem{Label: role, Score: base}
		for _, rule := range m.CareerBonuses {
			if rule.Matches(dominant, role, traitValue(traits, rule.Trait)) {
				item.Score += rule.Bonus
				if rule.Tag != "" {
					item.Bonuses = append(item.Bonuses, rule.Tag)
				}
			}
		}
		item.Rationale = careerRationale(dominant, item.Bonuses)
		items = append(items, item)
	}

	for _, syn := range m.SyntheticRoles {
		if traitValue(traits, syn.Trait) <= syn.Threshold {
			continue
		}
		if syn.UnlessLabel != "" && hasLabel(items, syn.UnlessLabel) {
			continue
		}
		items = append(items, CareerItem{Label: syn.Label, Score: syn.Score, Rationale: syn.Rationale})
	}

	// Sort descending by score; stable sort preserves configured order for ties
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Score > items[b].Score
	})
	return items
}

// Dedupe drops later items whose label repeats an earlier one.
func Dedupe(items []CareerItem) []CareerItem {
	seen := make(map[string]bool, len(items))
	out := make([]CareerItem, 0, len(items))
	for _, it := range items {
		if seen[it.Label] {
			continue
		}
		seen[it.Label] = true
		out = append(out, it)
	}
	return out
}

func careerRationale(dominant q.Category, bonuses []string) string {
	r := fmt.Sprintf("Matches dominant %s + personality cues.", dominant)
	if len(bonuses) > 0 {
		r += " Boosted by " + strings.Join(bonuses, ", ") + "."
	}
	return r
}

func hasLabel(items []CareerItem, label string) bool {
	for _, it := range items {
		if it.Label == label {
			return true
		}
	}
	return false
}

// Relationship returns the dominant-category tip followed by the
// agreeableness and emotionality tips when their conditions hold.
func (e *Engine) Relationship(constitution scoring.Distribution, traits scoring.TraitDistribution) []Tip {
	var tips []Tip
	if tip, ok := relationshipByCategory[constitution.Dominant()]; ok {
		tips = append(tips, tip)
	}
	if traitValue(traits, q.Agreeableness) < LowAgreeableness {
		tips = append(tips, reflectiveListeningTip)
	}
	if traitValue(traits, q.Emotionality) > HighEmotionality {
		tips = append(tips, emotionRegulationTip)
	}
	return tips
}

// Health averages constitution and state per category, classifies each
// combined value and picks advice for the dominant constitutional category.
func (e *Engine) Health(constitution, state scoring.Distribution) Health {
	h := Health{
		Severity: make(map[q.Category]SeverityLevel, len(q.Categories)),
		Combined: make(scoring.Distribution, len(q.Categories)),
	}
	for _, c := range q.Categories {
		combined := scoring.Round1((constitution[c] + state[c]) / 2)
		h.Combined[c] = combined
		h.Severity[c] = Classify(combined, e.rules.Mappings.Thresholds)
	}

	advice := healthByCategory[constitution.Dominant()]
	h.Diet = slices.Clone(advice.diet)
	h.Lifestyle = slices.Clone(advice.lifestyle)
	h.Herbs = slices.Clone(advice.herbs)
	return h
}

// traitValue reads a trait percentage, treating an absent trait as neutral.
func traitValue(traits scoring.TraitDistribution, t q.Trait) float64 {
	if v, ok := traits[t]; ok {
		return v
	}
	return neutralTraitValue
}
