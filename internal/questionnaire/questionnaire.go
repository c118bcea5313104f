// Package questionnaire defines the question banks used to profile a patient:
// the constitutional (Prakriti) and state (Vikriti) banks scored against the
// three categories, and the ten-item personality inventory.
package questionnaire

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the three constitutional classifications.
type Category string

const (
	Vata  Category = "Vata"
	Pitta Category = "Pitta"
	Kapha Category = "Kapha"
)

// Categories is the fixed enumeration order. Ties between categories are
// always resolved to the one that appears first here.
var Categories = []Category{Vata, Pitta, Kapha}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a case-insensitive name to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q: must be Vata, Pitta, or Kapha", s)
}

// Trait is one of the five personality dimensions.
type Trait string

const (
	Extraversion      Trait = "Extraversion"
	Agreeableness     Trait = "Agreeableness"
	Conscientiousness Trait = "Conscientiousness"
	Emotionality      Trait = "Emotionality"
	Openness          Trait = "Openness"
)

// Traits is the fixed trait order used for output.
var Traits = []Trait{Extraversion, Agreeableness, Conscientiousness, Emotionality, Openness}

func (t Trait) String() string {
	return string(t)
}

// ParseTrait converts a case-insensitive name to a Trait.
func ParseTrait(s string) (Trait, error) {
	for _, t := range Traits {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid trait %q", s)
}

// Answer scales.
const (
	ScaleMin      = 1
	ScaleMax      = 5
	ScaleMidpoint = 3

	PersonalityMin = 1
	PersonalityMax = 7
)

// Question is a constitutional or state item weighted across categories.
// Weights need not sum to 1.
type Question struct {
	ID      string               `yaml:"id" json:"id"`
	Prompt  string               `yaml:"text" json:"text"`
	Weights map[Category]float64 `yaml:"weights" json:"weights"`
}

// Weight returns the question's weight for c, or 0 when unset.
func (q Question) Weight(c Category) float64 {
	return q.Weights[c]
}

// Item is a personality inventory item on the 1..7 scale. Reversed items are
// scored as 8 - answer.
type Item struct {
	ID       string `yaml:"id" json:"id"`
	Prompt   string `yaml:"text" json:"text"`
	Trait    Trait  `yaml:"trait" json:"trait"`
	Reversed bool   `yaml:"reversed,omitempty" json:"reversed,omitempty"`
}

// Answers maps question or item IDs to a response.
type Answers map[string]int

// Lookup returns the answer for id and whether it was present.
func (a Answers) Lookup(id string) (int, bool) {
	v, ok := a[id]
	return v, ok
}

// Catalog holds the three ordered question banks.
type Catalog struct {
	Constitution []Question `yaml:"prakriti" json:"prakriti"`
	State        []Question `yaml:"vikriti" json:"vikriti"`
	Personality  []Item     `yaml:"psychometric" json:"psychometric"`
}

// TraitPair is the positive and reversed item for one trait.
type TraitPair struct {
	Trait    Trait
	Positive string
	Reversed string
}

// Pairs returns the positive/reversed item IDs for every trait, in trait order.
// Traits without a complete pair are omitted; Validate reports them.
func (c *Catalog) Pairs() []TraitPair {
	pairs := make([]TraitPair, 0, len(Traits))
	for _, t := range Traits {
		p := TraitPair{Trait: t}
		for _, it := range c.Personality {
			if it.Trait != t {
				continue
			}
			if it.Reversed {
				p.Reversed = it.ID
			} else {
				p.Positive = it.ID
			}
		}
		if p.Positive != "" && p.Reversed != "" {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// RequiredPersonalityIDs lists the item IDs the trait scorer needs.
func (c *Catalog) RequiredPersonalityIDs() []string {
	var ids []string
	for _, p := range c.Pairs() {
		ids = append(ids, p.Positive, p.Reversed)
	}
	return ids
}

// Validate checks the catalog for structural problems.
func (c *Catalog) Validate() error {
	var errs []error

	errs = append(errs, validateQuestions("prakriti", c.Constitution)...)
	errs = append(errs, validateQuestions("vikriti", c.State)...)

	seen := make(map[string]bool)
	counts := make(map[Trait][2]int)
	for _, it := range c.Personality {
		if it.ID == "" {
			errs = append(errs, errors.New("psychometric: item with empty id"))
			continue
		}
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("psychometric: duplicate id %q", it.ID))
		}
		seen[it.ID] = true
		if _, err := ParseTrait(string(it.Trait)); err != nil {
			errs = append(errs, fmt.Errorf("psychometric %s: %w", it.ID, err))
			continue
		}
		n := counts[it.Trait]
		if it.Reversed {
			n[1]++
		} else {
			n[0]++
		}
		counts[it.Trait] = n
	}
	for _, t := range Traits {
		n := counts[t]
		if n[0] != 1 || n[1] != 1 {
			errs = append(errs, fmt.Errorf("psychometric: trait %s needs exactly one positive and one reversed item (got %d/%d)", t, n[0], n[1]))
		}
	}

	return errors.Join(errs...)
}

func validateQuestions(bank string, qs []Question) []error {
	var errs []error
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		if q.ID == "" {
			errs = append(errs, fmt.Errorf("%s: question with empty id", bank))
			continue
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", bank, q.ID))
		}
		seen[q.ID] = true
		for cat, w := range q.Weights {
			if !cat.Valid() {
				errs = append(errs, fmt.Errorf("%s %s: unknown category %q", bank, q.ID, cat))
			}
			if w < 0 {
				errs = append(errs, fmt.Errorf("%s %s: negative weight %v for %s", bank, q.ID, w, cat))
			}
		}
	}
	return errs
}
