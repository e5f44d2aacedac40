// Package progress reports scrape progress to observers. Observers are
// purely observational and never affect control flow.
package progress

import (
	"fmt"
	"sync"

	"MapsScraper/internal/models"
)

// Observer receives progress events in emission order. No replay.
type Observer interface {
	// OnAccepted is called once per accepted business with the global
	// running count and the run-wide quota.
	OnAccepted(current, total int, b models.Business)
	// OnStatus carries human-readable status transitions.
	OnStatus(message string)
}

// Tracker holds the running count of accepted businesses across all
// categories and fans events out to its observers.
type Tracker struct {
	mu        sync.Mutex
	accepted  int
	total     int
	observers []Observer
}

// NewTracker creates a tracker with total = categories x per-category quota.
func NewTracker(total int, observers ...Observer) *Tracker {
	return &Tracker{total: total, observers: observers}
}

// Accepted increments the running count and notifies observers.
func (t *Tracker) Accepted(b models.Business) {
	t.mu.Lock()
	t.accepted++
	current := t.accepted
	obs := t.observers
	t.mu.Unlock()

	for _, o := range obs {
		o.OnAccepted(current, t.total, b)
	}
}

// Status formats and emits a status message.
func (t *Tracker) Status(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t.mu.Lock()
	obs := t.observers
	t.mu.Unlock()

	for _, o := range obs {
		o.OnStatus(msg)
	}
}

// Count returns the global number of accepted businesses so far.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.accepted
}
