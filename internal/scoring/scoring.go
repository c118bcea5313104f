// Package scoring turns raw questionnaire answers into percentage
// distributions: category shares for the constitutional and state banks,
// and trait percentages for the personality inventory.
package scoring

import (
	"slices"
	"strconv"

	q "github.com/kakunje/prakriti/internal/questionnaire"
)

// Distribution maps each category to a percentage rounded to one decimal.
// Values are rounded independently, so the sum may be 99.9 or 100.1.
type Distribution map[q.Category]float64

// Dominant returns the category with the highest share. Ties go to the
// category that comes first in q.Categories.
func (d Distribution) Dominant() q.Category {
	best := q.Categories[0]
	for _, c := range q.Categories[1:] {
		if d[c] > d[best] {
			best = c
		}
	}
	return best
}

// Sum adds every category share.
func (d Distribution) Sum() float64 {
	total := 0.0
	for _, c := range q.Categories {
		total += d[c]
	}
	return total
}

// Uniform returns the fallback distribution used when the weighted sum is zero.
func Uniform() Distribution {
	d := make(Distribution, len(q.Categories))
	share := Round1(100.0 / float64(len(q.Categories)))
	for _, c := range q.Categories {
		d[c] = share
	}
	return d
}

// CategoryResult carries a distribution along with the fallbacks that fired
// while computing it.
type CategoryResult struct {
	Distribution Distribution
	// Defaulted lists question IDs with no answer, scored at the midpoint.
	Defaulted []string
	// OutOfRange lists question IDs whose answer fell outside 1..5.
	OutOfRange []string
	// Degenerate is set when every weighted sum was zero.
	Degenerate bool
}

// CategoryScorer computes category distributions from weighted questions.
type CategoryScorer struct{}

// Evaluate scores answers against questions and reports any fallbacks.
func (CategoryScorer) Evaluate(answers q.Answers, questions []q.Question) CategoryResult {
	var res CategoryResult
	acc := make(map[q.Category]float64, len(q.Categories))

	for _, question := range questions {
		val, ok := answers.Lookup(question.ID)
		if !ok {
			val = q.ScaleMidpoint
			res.Defaulted = append(res.Defaulted, question.ID)
		} else if val < q.ScaleMin || val > q.ScaleMax {
			res.OutOfRange = append(res.OutOfRange, question.ID)
		}
		for _, c := range q.Categories {
			acc[c] += question.Weight(c) * float64(val)
		}
	}

	total := 0.0
	for _, c := range q.Categories {
		total += acc[c]
	}
	if total <= 0 {
		res.Degenerate = true
		res.Distribution = Uniform()
		return res
	}

	res.Distribution = make(Distribution, len(q.Categories))
	for _, c := range q.Categories {
		res.Distribution[c] = Round1(acc[c] / total * 100)
	}
	return res
}

// Score returns the category distribution. Missing answers count as the
// scale midpoint and a zero weighted sum yields Uniform; it never fails.
func (s CategoryScorer) Score(answers q.Answers, questions []q.Question) Distribution {
	return s.Evaluate(answers, questions).Distribution
}

// ScoreStrict is like Score but returns a *ValidationError when answers are
// missing or out of range. The distribution is still computed.
func (s CategoryScorer) ScoreStrict(bank string, answers q.Answers, questions []q.Question) (Distribution, error) {
	res := s.Evaluate(answers, questions)
	if len(res.Defaulted) > 0 || len(res.OutOfRange) > 0 {
		return res.Distribution, &ValidationError{
			Bank:       bank,
			Missing:    res.Defaulted,
			OutOfRange: res.OutOfRange,
		}
	}
	return res.Distribution, nil
}

// TraitDistribution maps each trait to a percentage in [0, 100].
type TraitDistribution map[q.Trait]float64

// NeutralTraits is the fallback used when a required item is missing.
func NeutralTraits() TraitDistribution {
	d := make(TraitDistribution, len(q.Traits))
	for _, t := range q.Traits {
		d[t] = 50
	}
	return d
}

// TraitResult carries trait percentages and whether the neutral fallback fired.
type TraitResult struct {
	Traits     TraitDistribution
	Missing    []string
	OutOfRange []string
	Fallback   bool
}

// TraitScorer converts paired personality items into trait percentages.
type TraitScorer struct {
	pairs []q.TraitPair
}

// NewTraitScorer builds a scorer over the catalog's item pairs. An empty
// slice falls back to the built-in pairs.
func NewTraitScorer(pairs []q.TraitPair) *TraitScorer {
	if len(pairs) == 0 {
		pairs = q.Default().Pairs()
	}
	return &TraitScorer{pairs: slices.Clone(pairs)}
}

// Evaluate scores answers and reports missing items.
func (s *TraitScorer) Evaluate(answers q.Answers) TraitResult {
	var res TraitResult
	for _, p := range s.pairs {
		for _, id := range []string{p.Positive, p.Reversed} {
			v, ok := answers.Lookup(id)
			if !ok {
				res.Missing = append(res.Missing, id)
			} else if v < q.PersonalityMin || v > q.PersonalityMax {
				res.OutOfRange = append(res.OutOfRange, id)
			}
		}
	}
	if len(res.Missing) > 0 {
		res.Fallback = true
		res.Traits = NeutralTraits()
		return res
	}

	res.Traits = make(TraitDistribution, len(s.pairs))
	for _, p := range s.pairs {
		pos := float64(answers[p.Positive])
		rev := float64(q.PersonalityMax + 1 - answers[p.Reversed])
		raw := (pos + rev) / 2
		res.Traits[p.Trait] = Round1((raw - 1) / 6 * 100)
	}
	return res
}

// Score returns trait percentages, or NeutralTraits when any required item
// is missing.
func (s *TraitScorer) Score(answers q.Answers) TraitDistribution {
	return s.Evaluate(answers).Traits
}

// ScoreStrict is like Score but reports missing or out-of-range items as a
// *ValidationError instead of masking them.
func (s *TraitScorer) ScoreStrict(answers q.Answers) (TraitDistribution, error) {
	res := s.Evaluate(answers)
	if len(res.Missing) > 0 || len(res.OutOfRange) > 0 {
		return res.Traits, &ValidationError{
			Bank:       "psychometric",
			Missing:    res.Missing,
			OutOfRange: res.OutOfRange,
		}
	}
	return res.Traits, nil
}

// Round1 rounds v to one decimal place. The exact binary value is rounded,
// with exact ties going to the even digit, so 54.9499... stays 54.9 and
// 0.35 becomes 0.3.
func Round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
