package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"MapsScraper/internal/database"
	"MapsScraper/internal/dedup"
	"MapsScraper/internal/export"
	"MapsScraper/internal/locations"
	"MapsScraper/internal/models"
	"MapsScraper/internal/progress"
	"MapsScraper/internal/scraper"
	"MapsScraper/internal/scraper/gmaps"
	"MapsScraper/pkg/config"
)

// App is the main application structure holding all dependencies.
type App struct {
	Config *config.Config
	Repo   *database.DBRepository
}

// New creates a new application instance with all initial settings.
func New() *App {
	cfg := config.LoadConfig("config.yml")
	repo := database.InitDB(cfg.Output.Database)
	return &App{
		Config: cfg,
		Repo:   repo,
	}
}

// RunScraper orchestrates one full scrape run: for each selected category it
// pairs locations with searches, harvests and deduplicates listings, and
// flushes the accepted batch after the category completes. Cancellation via
// ctx is cooperative; batches flushed before the stop remain valid.
func (a *App) RunScraper(ctx context.Context) {
	locs, err := locations.Load(a.Config.Locations.File)
	if err != nil {
		log.Fatalf("Failed to load locations: %v", err)
	}
	if len(locs) == 0 {
		log.Fatalf("Locations file %s contains no usable rows", a.Config.Locations.File)
	}
	log.Infof("Loaded %d cities from %s", len(locs), a.Config.Locations.File)

	sink, err := export.NewCSVSink(a.Config.Output.Dir, a.Config.Output.CSVName)
	if err != nil {
		log.Fatalf("Failed to prepare output: %v", err)
	}

	categories := a.Config.Categories
	quota := a.Config.Scraper.ListingsPerCategory

	console := progress.NewConsole()
	defer console.Stop()
	tracker := progress.NewTracker(len(categories)*quota, console, progress.Log{})

	run := models.Run{
		ID:         uuid.NewString(),
		Status:     models.RunStatusRunning,
		Categories: categories,
		Quota:      quota,
		StartedAt:  time.Now(),
	}
	if err := a.Repo.CreateRun(run); err != nil {
		log.Fatalf("Failed to record run: %v", err)
	}

	var mapsScraper scraper.Scraper = gmaps.New(a.Config.Scraper, a.Config.Maps)
	results := dedup.New()

	a.runCategories(ctx, mapsScraper, categories, quota, locs, results, tracker, sink, run.ID)

	status := models.RunStatusCompleted
	if ctx.Err() != nil {
		status = models.RunStatusCanceled
	}
	if err := a.Repo.FinishRun(run.ID, status, tracker.Count()); err != nil {
		log.Warnf("Failed to finalize run %s: %v", run.ID, err)
	}
	log.Infof("Run %s %s: %d unique businesses written to %s", run.ID, status, tracker.Count(), sink.Path())
}

// runCategories is the category loop, split out so tests can drive it with a
// fake scraper and an in-memory location list.
func (a *App) runCategories(
	ctx context.Context,
	mapsScraper scraper.Scraper,
	categories []string,
	quota int,
	locs []models.Location,
	results *dedup.Store,
	tracker *progress.Tracker,
	sink *export.CSVSink,
	runID string,
) {
	for _, category := range categories {
		if ctx.Err() != nil {
			break
		}
		tracker.Status("Scraping for: %s", category)

		pool := models.NewLocationPool(locs, time.Now().UnixNano())
		accepted, err := mapsScraper.ScrapeCategory(ctx, category, quota, pool, results, tracker)
		if err != nil && ctx.Err() == nil {
			log.Warnf("Category %s ended early: %v", category, err)
		}
		if accepted < quota && pool.Remaining() == 0 {
			tracker.Status("Locations exhausted for %s with %d of %d scraped.", category, accepted, quota)
		}

		// Flush whatever was accepted, even on cancellation: partial
		// results already harvested stay valid.
		batch := results.Drain()
		if err := sink.FlushCategory(batch); err != nil {
			log.Fatalf("Failed to write results for %s: %v", category, err)
		}
		if err := a.Repo.SaveBusinesses(runID, batch); err != nil {
			log.Fatalf("Failed to store results for %s: %v", category, err)
		}
	}
}
