// Package dedup tracks which businesses a scrape run has already emitted.
package dedup

import (
	"sync"

	"MapsScraper/internal/models"
)

// Store keeps the identity keys seen during one run plus the buffer of
// businesses accepted since the last drain. One store is owned by exactly
// one orchestration run; concurrent workers share it through the mutex.
type Store struct {
	mu     sync.Mutex
	seen   map[models.IdentityKey]struct{}
	buffer []models.Business
}

func New() *Store {
	return &Store{seen: make(map[models.IdentityKey]struct{})}
}

// Admit accepts the business if its identity key has not been seen in this
// run. Admission is monotonic: once a key is in, replaying the same business
// always returns false. An admit of two identical records racing from
// different workers lets exactly one through.
func (s *Store) Admit(b models.Business) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := b.Identity()
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	s.buffer = append(s.buffer, b)
	return true
}

// Drain returns the businesses accepted since the last drain and clears the
// buffer. The identity set is kept: deduplication spans the whole run, the
// buffer only spans one category.
func (s *Store) Drain() []models.Business {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.buffer
	s.buffer = nil
	return batch
}

// Seen reports how many unique businesses have been admitted so far.
func (s *Store) Seen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
