package models

import (
	"math/rand"
	"sync"
)

// LocationPool draws locations uniformly at random, without replacement,
// for one category's search space. Randomizing the draw spreads searches
// across geography instead of hammering the same duplicate-heavy cities.
// Safe for use by concurrent workers sharing one pool.
type LocationPool struct {
	mu        sync.Mutex
	remaining []Location
	rng       *rand.Rand
}

// NewLocationPool copies locs so the caller's master list survives the run.
func NewLocationPool(locs []Location, seed int64) *LocationPool {
	remaining := make([]Location, len(locs))
	copy(remaining, locs)
	return &LocationPool{
		remaining: remaining,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Next removes one random location from the pool and pairs it with the
// category. The second return is false once the pool is exhausted, which is
// the normal terminal signal for a category, not an error.
func (p *LocationPool) Next(category string) (SearchTask, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.remaining) == 0 {
		return SearchTask{}, false
	}

	i := p.rng.Intn(len(p.remaining))
	loc := p.remaining[i]
	p.remaining[i] = p.remaining[len(p.remaining)-1]
	p.remaining = p.remaining[:len(p.remaining)-1]

	return SearchTask{Category: category, Location: loc}, true
}

// Remaining reports how many locations have not been drawn yet.
func (p *LocationPool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.remaining)
}
