package scoring

import (
	"math"
	"strings"

	"dqlens/domain/quality"
)

// Penalty model constants. The model is additive: every failed result takes
// a bounded bite out of its category, scaled by severity.
const (
	percentagePenaltyFactor = 0.5
	percentagePenaltyCap    = 30.0
	conformityPenaltyFactor = 0.3
	uniquenessPenaltyFactor = 0.2
)

var severityMultiplier = map[quality.Severity]float64{
	quality.SeverityOK:       0.0,
	quality.SeverityWarning:  0.5,
	quality.SeverityCritical: 1.0,
}

var flatPenalty = map[quality.Severity]float64{
	quality.SeverityWarning:  5,
	quality.SeverityCritical: 15,
}

// categoryByPrefix maps a rule id prefix (the part before the first
// underscore) to its score category.
var categoryByPrefix = map[string]quality.Category{
	"R001": quality.CategoryCompleteness,
	"R002": quality.CategoryUniqueness,
	"R003": quality.CategoryValidity,
	"R004": quality.CategoryValidity,
	"R005": quality.CategoryValidity,
	"R006": quality.CategoryConsistency,
	"R007": quality.CategoryCompleteness,
	"R008": quality.CategoryConsistency,
	"R009": quality.CategoryConsistency,
	"R010": quality.CategoryValidity,
}

// CategoryForRule resolves the category a rule id maps to
func CategoryForRule(ruleID string) (quality.Category, bool) {
	prefix, _, _ := strings.Cut(ruleID, "_")
	cat, ok := categoryByPrefix[prefix]
	return cat, ok
}

// Aggregator converts rule results into category scores and a weighted
// global score.
type Aggregator struct {
	weights quality.Weights
}

// NewAggregator creates an aggregator with validated weights
func NewAggregator(weights quality.Weights) *Aggregator {
	return &Aggregator{weights: weights}
}

// Score folds all rule results into the four category scores and the global
// score. Categories start at 100 and only decrease, floored at 0; the global
// score is the weighted sum, rounded to one decimal and clamped to [0, 100].
func (a *Aggregator) Score(eval quality.Evaluation) quality.Scoring {
	categoryScores := quality.CategoryScores{}
	for _, cat := range quality.Categories() {
		categoryScores[cat] = 100.0
	}

	apply := func(result quality.RuleResult) {
		category, ok := CategoryForRule(result.RuleID)
		if !ok {
			return
		}
		penalty := Penalty(result)
		categoryScores[category] = math.Max(0, categoryScores[category]-penalty)
	}
	for _, result := range eval.DatasetResults {
		apply(result)
	}
	for _, results := range eval.ColumnResults {
		for _, result := range results {
			apply(result)
		}
	}

	// Sum in the fixed category order; map order would let float rounding
	// drift between runs of the same input.
	global := 0.0
	for _, cat := range quality.Categories() {
		score := categoryScores[cat]
		categoryScores[cat] = round1(score)
		global += score * a.weights[cat]
	}
	global = round1(math.Min(100, math.Max(0, global)))

	return quality.Scoring{
		GlobalScore:    global,
		CategoryScores: categoryScores,
		Details:        eval.Summary,
	}
}

// Penalty computes the score deduction for one result: zero when passed,
// otherwise a metric-derived base scaled by the severity multiplier.
func Penalty(result quality.RuleResult) float64 {
	if result.Passed {
		return 0
	}

	var base float64
	switch {
	case result.Percentage != nil:
		base = math.Min(*result.Percentage*percentagePenaltyFactor, percentagePenaltyCap)
	case result.Conformity != nil:
		base = (100 - *result.Conformity) * conformityPenaltyFactor
	case result.Uniqueness != nil:
		base = (100 - *result.Uniqueness) * uniquenessPenaltyFactor
	default:
		base = flatPenalty[result.Severity]
	}
	return base * severityMultiplier[result.Severity]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
