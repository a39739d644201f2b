// Package usac implements a generic Universal Sample Consensus driver and
// the homography / fundamental-matrix instantiations built on it.
package usac

import (
	"math/rand"
	"time"
)

// Sampler draws distinct indices from [0, n) for minimal-sample selection.
// It owns the only mutable process state this package needs: a single PRNG,
// created on first use and explicitly seedable for reproducible runs.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler seeded with the current time.
func NewSampler() *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSamplerWithSeed returns a Sampler seeded deterministically, for
// reproducible estimation runs and tests.
func NewSamplerWithSeed(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// DistinctIndices draws n distinct indices from [0, limit), the pattern
// every USAC minimal sampler in this package follows (rejection sampling
// against the indices already drawn).
func (s *Sampler) DistinctIndices(n, limit int) []int {
	ids := make([]int, n)
	for i := range ids {
		for {
			candidate := s.rng.Intn(limit)
			if !containsInt(ids[:i], candidate) {
				ids[i] = candidate
				break
			}
		}
	}
	return ids
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
