package scraper

import (
	"context"

	"MapsScraper/internal/dedup"
	"MapsScraper/internal/models"
	"MapsScraper/internal/progress"
)

// Scraper defines the basic behavior for all directory scrapers. It ensures
// that any new scraper we add (e.g., for another map site) will follow a
// standard structure.
type Scraper interface {
	// ScrapeCategory searches one category across locations drawn from the
	// pool until quota unique businesses are accepted, the pool empties, or
	// ctx is canceled. Accepted businesses go through the shared dedup store
	// and are reported on the tracker. Returns the number accepted for this
	// category.
	ScrapeCategory(ctx context.Context, category string, quota int, pool *models.LocationPool, results *dedup.Store, tracker *progress.Tracker) (int, error)
}
