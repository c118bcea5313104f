// Package rules provides the rule configuration consumed by the scoring and
// recommendation packages: the question banks, per-category career roles,
// career bonus rules and severity thresholds. It is loaded once at startup
// and must not be mutated afterwards.
package rules

import (
	"errors"
	"fmt"
	"os"
	"strings"

	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/kakunje/prakriti/internal/validation"
	"gopkg.in/yaml.v3"
)

// Default values for the rule configuration. These are the single source of
// truth; Default() references them and no other code should duplicate them.
const (
	DefaultAppName = "AyurPrakriti Pro"
	DefaultVersion = "2.0"

	DefaultMildThreshold     = 55
	DefaultModerateThreshold = 70
	DefaultSevereThreshold   = 85

	DefaultCareerBaseScore = 50

	ResearchLabel          = "Research & Innovation"
	ResearchSyntheticLabel = "Research & Innovation / R&D"
)

// Meta describes the rules file itself.
type Meta struct {
	AppName string `yaml:"app_name,omitempty" json:"app_name,omitempty"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Author  string `yaml:"author,omitempty" json:"author,omitempty"`
}

// Thresholds are the inclusive lower bounds of the mild, moderate and severe
// severity levels. They must be ascending.
type Thresholds struct {
	Mild     float64 `yaml:"mild" json:"mild"`
	Moderate float64 `yaml:"moderate" json:"moderate"`
	Severe   float64 `yaml:"severe" json:"severe"`
}

// BonusRule adds Bonus to a career role's score when the trait percentage is
// strictly above Threshold and the role label contains any of Keywords. An
// empty Category applies to every dominant category.
type BonusRule struct {
	Category  q.Category `yaml:"category,omitempty" json:"category,omitempty"`
	Trait     q.Trait    `yaml:"trait" json:"trait"`
	Threshold float64    `yaml:"threshold" json:"threshold"`
	Keywords  []string   `yaml:"keywords" json:"keywords"`
	Bonus     int        `yaml:"bonus" json:"bonus"`
	Tag       string     `yaml:"tag,omitempty" json:"tag,omitempty"`
}

// Matches reports whether the rule fires for role under the given dominant
// category and trait value.
func (r BonusRule) Matches(dominant q.Category, role string, trait float64) bool {
	if r.Category != "" && r.Category != dominant {
		return false
	}
	if trait <= r.Threshold {
		return false
	}
	for _, kw := range r.Keywords {
		if strings.Contains(role, kw) {
			return true
		}
	}
	return false
}

// SyntheticRole appends a role that is not in the configured list when the
// trait is strictly above Threshold and no existing role is labelled exactly
// UnlessLabel.
type SyntheticRole struct {
	Trait       q.Trait `yaml:"trait" json:"trait"`
	Threshold   float64 `yaml:"threshold" json:"threshold"`
	UnlessLabel string  `yaml:"unless_label,omitempty" json:"unless_label,omitempty"`
	Label       string  `yaml:"label" json:"label"`
	Score       int     `yaml:"score" json:"score"`
	Rationale   string  `yaml:"rationale,omitempty" json:"rationale,omitempty"`
}

// Mappings holds the recommendation rule tables.
type Mappings struct {
	CareerRules     map[q.Category][]string `yaml:"career_rules" json:"career_rules"`
	Thresholds      Thresholds              `yaml:"dosha_thresholds" json:"dosha_thresholds"`
	CareerBaseScore int                     `yaml:"career_base_score,omitempty" json:"career_base_score,omitempty"`
	CareerBonuses   []BonusRule             `yaml:"career_bonuses,omitempty" json:"career_bonuses,omitempty"`
	SyntheticRoles  []SyntheticRole         `yaml:"synthetic_roles,omitempty" json:"synthetic_roles,omitempty"`
}

// Config is the complete rule configuration.
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Questions q.Catalog `yaml:"questions" json:"questions"`
	Mappings  Mappings  `yaml:"mappings" json:"mappings"`
}

// Default returns the built-in rule configuration.
func Default() *Config {
	return &Config{
		Meta: Meta{
			AppName: DefaultAppName,
			Version: DefaultVersion,
		},
		Questions: *q.Default(),
		Mappings: Mappings{
			CareerRules:     DefaultCareerRules(),
			Thresholds:      DefaultThresholds(),
			CareerBaseScore: DefaultCareerBaseScore,
			CareerBonuses:   DefaultCareerBonuses(),
			SyntheticRoles:  DefaultSyntheticRoles(),
		},
	}
}

// DefaultThresholds returns the 55/70/85 severity thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Mild:     DefaultMildThreshold,
		Moderate: DefaultModerateThreshold,
		Severe:   DefaultSevereThreshold,
	}
}

// DefaultCareerRules returns the per-category role lists.
func DefaultCareerRules() map[q.Category][]string {
	return map[q.Category][]string{
		q.Vata:  {"Writer", "Designer", "Consultant - Creative", "Researcher"},
		q.Pitta: {"Clinician", "Analyst", "Manager", "Engineer"},
		q.Kapha: {"Teacher", "Counselor", "Hospitality", "HR", "Agriculture"},
	}
}

// DefaultCareerBonuses returns the keyword bonus table.
func DefaultCareerBonuses() []BonusRule {
	return []BonusRule{
		{Trait: q.Conscientiousness, Threshold: 65, Keywords: []string{"Manager"}, Bonus: 10, Tag: "high conscientiousness"},
		{Trait: q.Openness, Threshold: 60, Keywords: []string{"Research", "Creative"}, Bonus: 10, Tag: "high openness"},
		{Trait: q.Extraversion, Threshold: 60, Keywords: []string{"Sales", "Clinician", "Manager"}, Bonus: 8, Tag: "high extraversion"},
	}
}

// DefaultSyntheticRoles returns the roles appended on strong trait signals.
func DefaultSyntheticRoles() []SyntheticRole {
	return []SyntheticRole{
		{
			Trait:       q.Openness,
			Threshold:   70,
			UnlessLabel: ResearchLabel,
			Label:       ResearchSyntheticLabel,
			Score:       65,
			Rationale:   "high openness",
		},
	}
}

// Load reads a rules file, validates it against the embedded schema, fills
// unset sections from Default() and checks the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes rules YAML. See Load.
func Parse(data []byte) (*Config, error) {
	if errs := validation.ValidateRulesBytes(data); len(errs) > 0 {
		return nil, &SchemaError{Problems: errs}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}
	return nil
}

// SchemaError lists schema violations found in a rules file.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "rules schema violations:\n  " + strings.Join(e.Problems, "\n  ")
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Meta.AppName == "" {
		cfg.Meta.AppName = def.Meta.AppName
	}
	if cfg.Meta.Version == "" {
		cfg.Meta.Version = def.Meta.Version
	}
	if len(cfg.Questions.Constitution) == 0 {
		cfg.Questions.Constitution = def.Questions.Constitution
	}
	if len(cfg.Questions.State) == 0 {
		cfg.Questions.State = def.Questions.State
	}
	if len(cfg.Questions.Personality) == 0 {
		cfg.Questions.Personality = def.Questions.Personality
	} else {
		inferTraits(cfg.Questions.Personality, def.Questions.Personality)
	}
	if cfg.Mappings.CareerRules == nil {
		cfg.Mappings.CareerRules = def.Mappings.CareerRules
	}
	if cfg.Mappings.Thresholds == (Thresholds{}) {
		cfg.Mappings.Thresholds = def.Mappings.Thresholds
	}
	if cfg.Mappings.CareerBaseScore == 0 {
		cfg.Mappings.CareerBaseScore = def.Mappings.CareerBaseScore
	}
	if cfg.Mappings.CareerBonuses == nil {
		cfg.Mappings.CareerBonuses = def.Mappings.CareerBonuses
	}
	if cfg.Mappings.SyntheticRoles == nil {
		cfg.Mappings.SyntheticRoles = def.Mappings.SyntheticRoles
	}
}

// inferTraits fills trait and direction for items that name neither, using
// the built-in item with the same ID. Older rules files list only id and text.
func inferTraits(items, known []q.Item) {
	byID := make(map[string]q.Item, len(known))
	for _, it := range known {
		byID[it.ID] = it
	}
	for i := range items {
		if items[i].Trait != "" {
			continue
		}
		if k, ok := byID[items[i].ID]; ok {
			items[i].Trait = k.Trait
			items[i].Reversed = k.Reversed
		}
	}
}

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Questions.Validate(); err != nil {
		errs = append(errs, err)
	}

	t := c.Mappings.Thresholds
	if !(t.Mild < t.Moderate && t.Moderate < t.Severe) {
		errs = append(errs, fmt.Errorf("dosha_thresholds must be ascending (mild %v, moderate %v, severe %v)", t.Mild, t.Moderate, t.Severe))
	}
	for cat := range c.Mappings.CareerRules {
		if !cat.Valid() {
			errs = append(errs, fmt.Errorf("career_rules: unknown category %q", cat))
		}
	}
	for i, r := range c.Mappings.CareerBonuses {
		if len(r.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("career_bonuses[%d]: keywords are required", i))
		}
	}

	return errors.Join(errs...)
}

// Roles returns the configured role list for a category.
func (c *Config) Roles(cat q.Category) []string {
	return c.Mappings.CareerRules[cat]
}
