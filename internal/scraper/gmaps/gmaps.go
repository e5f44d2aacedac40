// Package gmaps scrapes business listings from the Google Maps search
// surface through a pool of browser sessions.
package gmaps

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"MapsScraper/internal/dedup"
	"MapsScraper/internal/models"
	"MapsScraper/internal/progress"
	"MapsScraper/pkg/config"
	"MapsScraper/utils"
)

// GmapsScraper holds the config and the driver factory. The factory defaults
// to launching real browsers; tests substitute a fake driver.
type GmapsScraper struct {
	ScraperConf config.ScraperConfig
	MapsConf    config.MapsConfig
	NewDriver   DriverFactory
}

func New(scraperConf config.ScraperConfig, mapsConf config.MapsConfig) *GmapsScraper {
	s := &GmapsScraper{ScraperConf: scraperConf, MapsConf: mapsConf}
	s.NewDriver = func() (PageDriver, error) {
		return NewRodDriver(s.ScraperConf, s.MapsConf)
	}
	return s
}

// categoryState tracks per-category quota consumption across workers.
type categoryState struct {
	mu       sync.Mutex
	accepted int
	quota    int
}

func (c *categoryState) remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quota - c.accepted
}

// accept builds the callback that filters a harvested business through the
// run-wide dedup store under the category quota. Admission and the quota
// check share one critical section so concurrent workers cannot overshoot.
func (c *categoryState) accept(results *dedup.Store, tracker *progress.Tracker) AcceptFunc {
	return func(b models.Business) bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.accepted >= c.quota {
			return false
		}
		if !results.Admit(b) {
			return false
		}
		c.accepted++
		tracker.Accepted(b)
		return true
	}
}

// ScrapeCategory harvests one category. Workers each own an independent
// browser session and draw disjoint tasks from the shared pool until the
// quota is met, the pool empties, or ctx is canceled. With workers set to 1
// this is the strictly sequential baseline.
func (s *GmapsScraper) ScrapeCategory(ctx context.Context, category string, quota int, pool *models.LocationPool, results *dedup.Store, tracker *progress.Tracker) (int, error) {
	state := &categoryState{quota: quota}
	acceptFn := state.accept(results, tracker)
	numWorkers := utils.OptimalWorkerCount(s.ScraperConf.Workers)

	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			driver, err := s.NewDriver()
			if err != nil {
				log.Errorf("[Worker %d] Could not open a browser session: %v", workerID, err)
				return
			}
			defer driver.Close()

			harvester := NewHarvester(driver, s.ScraperConf)

			for ctx.Err() == nil && state.remaining() > 0 {
				task, ok := pool.Next(category)
				if !ok {
					// Location pool exhausted: normal terminal signal.
					return
				}
				tracker.Status("Searching: %s", task.Query())

				harvested, err := harvester.Harvest(ctx, task, state.remaining, acceptFn)
				switch {
				case errors.Is(err, ErrTimeout):
					tracker.Status("Timeout for %s. Skipping...", task.Query())
				case errors.Is(err, context.Canceled):
					return
				case err != nil:
					log.Warnf("[Worker %d] Harvest failed for %s: %v", workerID, task.Query(), err)
				case harvested == 0:
					tracker.Status("No results for %s. Moving to next city.", task.Query())
				}
			}
		}(w)
	}
	wg.Wait()

	return state.quota - state.remaining(), ctx.Err()
}
