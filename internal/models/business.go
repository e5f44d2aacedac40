package models

import (
	"fmt"
	"time"
)

// Sentinel values written when a detail-panel field cannot be read.
const (
	DefaultName    = "Unknown"
	DefaultAddress = "No Address"
	DefaultWebsite = "No Website"
	DefaultPhone   = "No Phone"
)

// Business holds all data harvested for a single map listing.
type Business struct {
	ID             int64     `db:"id"`
	RunID          string    `db:"run_id"`
	Category       string    `db:"category"`
	Name           string    `db:"name"`
	Address        string    `db:"address"`
	Website        string    `db:"website"`
	PhoneNumber    string    `db:"phone_number"`
	ReviewsCount   int       `db:"reviews_count"`
	ReviewsAverage float64   `db:"reviews_average"`
	Latitude       *float64  `db:"latitude"`
	Longitude      *float64  `db:"longitude"`
	ScrapedAt      time.Time `db:"scraped_at"`
}

// NewBusiness returns a Business with every field at its sentinel default.
// Fields are filled in independently by the extractor; a field that cannot
// be read keeps its default instead of failing the whole record.
func NewBusiness(category string) Business {
	return Business{
		Category:    category,
		Name:        DefaultName,
		Address:     DefaultAddress,
		Website:     DefaultWebsite,
		PhoneNumber: DefaultPhone,
		ScrapedAt:   time.Now(),
	}
}

// IdentityKey is the deduplication tuple. Two businesses with the same key
// are the same business no matter which category or location surfaced them.
type IdentityKey struct {
	Name    string
	Address string
	Phone   string
}

// Identity derives the deduplication key for this business.
func (b Business) Identity() IdentityKey {
	return IdentityKey{Name: b.Name, Address: b.Address, Phone: b.PhoneNumber}
}

// Location is one row of the operator-supplied city list.
type Location struct {
	City  string
	State string
}

// SearchTask pairs a category with a location for one search iteration.
// Tasks are created by the location pool and consumed immediately.
type SearchTask struct {
	Category string
	Location Location
}

// Query renders the search string issued to the map driver.
func (t SearchTask) Query() string {
	return fmt.Sprintf("%s in %s, %s", t.Category, t.Location.City, t.Location.State)
}

// Run records one orchestrator invocation.
type Run struct {
	ID            string    `db:"id"`
	Status        string    `db:"status"`
	Categories    []string  `db:"categories"`
	Quota         int       `db:"quota"`
	StartedAt     time.Time `db:"started_at"`
	FinishedAt    time.Time `db:"finished_at"`
	TotalAccepted int       `db:"total_accepted"`
}

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusCanceled  = "canceled"
)

// BusinessFilters holds the query parameters for filtering stored businesses.
type BusinessFilters struct {
	RunID      string
	Category   string
	MinReviews int
	// For pagination
	Limit  int
	Offset int
}
