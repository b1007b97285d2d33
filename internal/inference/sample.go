package inference

import (
	"math/rand"
	"sort"
)

// Sampling bounds the per-column work on arbitrarily large inputs. The seed
// is an explicit parameter so repeated runs draw identical samples.
type Sampling struct {
	Size           int   `json:"size"`            // cap for actual-type detection
	ConformitySize int   `json:"conformity_size"` // cap for conformity re-validation
	Seed           int64 `json:"seed"`
}

// DefaultSampling mirrors the standard bounds: 1000 values for detection,
// 500 for conformity re-validation, seed 42.
func DefaultSampling() Sampling {
	return Sampling{Size: 1000, ConformitySize: 500, Seed: 42}
}

// sample draws at most k values deterministically. When the input fits the
// cap it is returned as-is; otherwise a seeded permutation picks k indices,
// kept in ascending order so the sample preserves input order.
func sample(values []string, k int, seed int64) []string {
	if k <= 0 || len(values) <= k {
		return values
	}
	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(len(values))[:k]
	sort.Ints(indices)
	out := make([]string, k)
	for i, idx := range indices {
		out[i] = values[idx]
	}
	return out
}
