// Package feed implements boost-weighted feed page sampling.
package feed

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/google/uuid"
)

const (
	// weightScale converts a boost value into an integer sampling weight.
	weightScale = 20

	// DefaultAttemptFactor bounds the draw loop at limit * factor attempts.
	// A skewed weight distribution can keep re-drawing ids already selected;
	// the cap trades an occasional short page for a bounded worst case.
	DefaultAttemptFactor = 5
)

// Sampler selects distinct video IDs with probability proportional to boost.
// It samples against a cumulative weight array instead of materializing a
// duplicated id pool, so memory stays linear in the candidate count.
type Sampler struct {
	mu            sync.Mutex
	rng           *rand.Rand
	attemptFactor int
}

// NewSampler creates a sampler drawing from rng. attemptFactor values < 1
// fall back to DefaultAttemptFactor.
func NewSampler(rng *rand.Rand, attemptFactor int) *Sampler {
	if attemptFactor < 1 {
		attemptFactor = DefaultAttemptFactor
	}
	return &Sampler{rng: rng, attemptFactor: attemptFactor}
}

// Sample returns up to min(limit, distinct candidates) distinct ids in draw
// order. It never fails: an empty candidate list or an exhausted attempt
// budget yields a short (possibly empty) page, and callers must treat the
// returned length as "at most limit".
func (s *Sampler) Sample(candidates []domain.RankingEntry, limit int) []uuid.UUID {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}

	// Cumulative weights over the candidate list. Duplicate ids keep their
	// slots (extra weight) but only count once toward the result.
	cumulative := make([]float64, len(candidates))
	distinct := make(map[uuid.UUID]struct{}, len(candidates))
	total := 0.0
	for i, c := range candidates {
		weight := math.Ceil(c.Boost * weightScale)
		if weight < 1 {
			weight = 1
		}
		total += weight
		cumulative[i] = total
		distinct[c.ID] = struct{}{}
	}

	want := limit
	if len(distinct) < want {
		want = len(distinct)
	}

	selected := make([]uuid.UUID, 0, want)
	seen := make(map[uuid.UUID]struct{}, want)
	maxAttempts := limit * s.attemptFactor

	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < maxAttempts && len(selected) < want; attempt++ {
		x := s.rng.Float64() * total
		i := sort.Search(len(cumulative), func(j int) bool { return cumulative[j] > x })
		if i >= len(candidates) {
			i = len(candidates) - 1
		}

		id := candidates[i].ID
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selected = append(selected, id)
	}

	return selected
}
