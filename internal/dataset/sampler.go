package dataset

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidBatch is returned when a batch size is non-positive or larger
// than the population it is drawn from.
var ErrInvalidBatch = errors.New("invalid batch size")

// Sampler draws row indices without replacement from [0, population).
//
// Drawn indices are removed from the pool. When the pool holds fewer indices
// than a draw needs, it is refilled to the full population first, so the
// leftover indices of the previous cycle are discarded. Cycles therefore do
// not line up with clean epochs; an index can only repeat after a refill.
//
// A Sampler is not safe for concurrent use.
type Sampler struct {
	population int
	pool       []int
	rng        *rand.Rand
}

// NewSampler creates a sampler over [0, population) with a full pool.
func NewSampler(population int, rng *rand.Rand) (*Sampler, error) {
	if population <= 0 {
		return nil, fmt.Errorf("NewSampler: population must be > 0, got %d", population)
	}
	if rng == nil {
		return nil, errors.New("NewSampler: rng is nil")
	}
	s := &Sampler{
		population: population,
		pool:       make([]int, 0, population),
		rng:        rng,
	}
	s.refill()
	return s, nil
}

// Population returns the size of the index range.
func (s *Sampler) Population() int {
	return s.population
}

// Remaining returns the number of indices not yet drawn in this cycle.
func (s *Sampler) Remaining() int {
	return len(s.pool)
}

// Draw returns batch distinct indices chosen uniformly at random from the pool.
func (s *Sampler) Draw(batch int) ([]int, error) {
	if batch <= 0 || batch > s.population {
		return nil, fmt.Errorf("Draw: batch %d for population %d: %w", batch, s.population, ErrInvalidBatch)
	}
	if len(s.pool) < batch {
		s.refill()
	}

	out := make([]int, batch)
	for i := range out {
		k := s.rng.Intn(len(s.pool))
		out[i] = s.pool[k]
		last := len(s.pool) - 1
		s.pool[k] = s.pool[last]
		s.pool = s.pool[:last]
	}
	return out, nil
}

func (s *Sampler) refill() {
	s.pool = s.pool[:0]
	for i := 0; i < s.population; i++ {
		s.pool = append(s.pool, i)
	}
}
