package quality

import (
	"fmt"
	"math"

	"dqlens/domain/core"
)

// weightEpsilon bounds the accepted drift when checking that weights sum to 1
const weightEpsilon = 1e-9

// Weights maps each category to its share of the global score
type Weights map[Category]float64

// DefaultWeights returns the standard category weighting
func DefaultWeights() Weights {
	return Weights{
		CategoryCompleteness: 0.25,
		CategoryValidity:     0.35,
		CategoryUniqueness:   0.20,
		CategoryConsistency:  0.20,
	}
}

// NewWeights validates and returns a weight set. Every category must be
// present and the weights must sum to 1.0; the engine never renormalizes
// silently.
func NewWeights(w map[Category]float64) (Weights, error) {
	sum := 0.0
	for _, cat := range Categories() {
		weight, ok := w[cat]
		if !ok {
			return nil, fmt.Errorf("%w: missing weight for %s", core.ErrInvalidWeights, cat)
		}
		if weight < 0 {
			return nil, fmt.Errorf("%w: negative weight for %s", core.ErrInvalidWeights, cat)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > weightEpsilon {
		return nil, fmt.Errorf("%w: got %.6f", core.ErrInvalidWeights, sum)
	}
	out := make(Weights, len(w))
	for cat, weight := range w {
		out[cat] = weight
	}
	return out, nil
}
