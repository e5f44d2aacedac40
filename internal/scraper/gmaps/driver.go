package gmaps

import (
	"errors"
	"time"
)

// Sentinel errors for driver operations.
var (
	// ErrTimeout means a driver call exceeded its bound. It abandons the
	// current task or listing, never the run.
	ErrTimeout = errors.New("driver call timed out")
	// ErrAbsent means a DOM read found no element or an empty one. The
	// extractor recovers by defaulting the field.
	ErrAbsent = errors.New("element absent")
)

// Locator is an opaque handle to one result anchor in the listings panel.
type Locator interface {
	// Attribute reads an attribute of the anchor, ErrAbsent when unset.
	Attribute(name string) (string, error)
}

// PageDriver is the browser capability the scrape core drives. Every
// operation may fail with ErrTimeout. Implementations own one page in one
// browser session; drivers are not safe for concurrent use, each worker
// gets its own.
type PageDriver interface {
	// Search issues the query and waits until at least one result anchor
	// is present.
	Search(query string) error
	// CountResultAnchors counts the currently loaded result anchors.
	CountResultAnchors() (int, error)
	// ListResultAnchors enumerates the currently loaded result anchors.
	ListResultAnchors() ([]Locator, error)
	// Click focuses a listing, opening its detail panel.
	Click(l Locator) error
	// ReadText reads the trimmed text of the element at sel, ErrAbsent when
	// the element is missing or empty.
	ReadText(sel string) (string, error)
	// ReadAttribute reads an attribute of the element at sel.
	ReadAttribute(sel, name string) (string, error)
	// PanelHTML returns the detail panel's HTML for structural parsing.
	PanelHTML() (string, error)
	// Scroll moves the results panel forward by delta pixels.
	Scroll(delta int) error
	// EndOfListVisible reports whether the panel shows its end-of-results
	// marker.
	EndOfListVisible() bool
	// CurrentURL returns the page's current navigation URL.
	CurrentURL() string
	// Wait pauses to let the page settle after a click or scroll.
	Wait(d time.Duration)
	// Close tears down the page and its browser session.
	Close()
}

// DriverFactory opens a fresh browser session. The orchestrator calls it
// once per worker; tests substitute a fake.
type DriverFactory func() (PageDriver, error)
