// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"

	"go-raycaster/internal/defs"
)

// PRNGService wraps a seeded generator so a run can be replayed from its seed.
type PRNGService struct {
	rng  *rand.Rand
	seed int64
}

// NewPRNGService creates a service with the given seed. Zero seeds from the clock.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed in use.
func (s *PRNGService) Seed() int64 { return s.seed }

// Intn returns a number in [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a number in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Chance reports true with probability p.
func (s *PRNGService) Chance(p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return s.rng.Float64() < p
}

// ChooseWeighted picks a drop table row proportionally to its weight.
// ok is false for an empty table or one with no positive weight.
func (s *PRNGService) ChooseWeighted(entries []defs.DropEntry) (defs.DropEntry, bool) {
	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return defs.DropEntry{}, false
	}

	r := s.Intn(total)
	upto := 0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if upto+e.Weight > r {
			return e, true
		}
		upto += e.Weight
	}
	return entries[len(entries)-1], true
}
