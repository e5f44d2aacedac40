package gmaps

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"MapsScraper/internal/models"
	"MapsScraper/pkg/config"
)

// AcceptFunc offers an extracted business downstream. It returns true when
// the business was accepted (unique and within quota).
type AcceptFunc func(models.Business) bool

// Harvester drives the scroll-and-harvest loop over one search's result
// panel. The panel is a virtualized, incrementally loaded list whose true
// size is unknown, so the loop pages defensively: it stops on the panel's
// positive end-of-results signal, and falls back to a stagnation check when
// scrolling stops producing new listings.
type Harvester struct {
	driver PageDriver

	settleDelay  time.Duration
	scrollDelay  time.Duration
	scrollDelta  int
	maxRounds    int
	stalledLimit int
}

func NewHarvester(driver PageDriver, conf config.ScraperConfig) *Harvester {
	return &Harvester{
		driver:       driver,
		settleDelay:  time.Duration(conf.SettleDelayMs) * time.Millisecond,
		scrollDelay:  time.Duration(conf.ScrollDelayMs) * time.Millisecond,
		scrollDelta:  conf.ScrollDelta,
		maxRounds:    conf.MaxScrollRounds,
		stalledLimit: conf.StalledScrollLimit,
	}
}

// Harvest runs one task to completion: search, then harvest listings until
// remaining() hits zero, the panel is exhausted, the listing count stalls,
// or ctx is canceled. A search timeout abandons the task with zero harvested;
// the caller simply advances to the next location. Returns the number of
// businesses the accept callback took.
func (h *Harvester) Harvest(ctx context.Context, task models.SearchTask, remaining func() int, accept AcceptFunc) (int, error) {
	if err := h.driver.Search(task.Query()); err != nil {
		return 0, err
	}

	if n, err := h.driver.CountResultAnchors(); err != nil || n == 0 {
		return 0, err
	}

	accepted := 0
	stalled := 0

	for round := 0; round < h.maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return accepted, err
		}

		anchors, err := h.driver.ListResultAnchors()
		if err != nil {
			return accepted, err
		}

		for _, anchor := range anchors {
			if remaining() <= 0 {
				return accepted, nil
			}
			if err := ctx.Err(); err != nil {
				return accepted, err
			}
			if err := h.driver.Click(anchor); err != nil {
				// One unfocusable listing is abandoned, not the task.
				log.Debugf("skipping listing for %q: %v", task.Query(), err)
				continue
			}
			// Let the detail panel render before reading its fields.
			h.driver.Wait(h.settleDelay)

			b := ExtractBusiness(h.driver, anchor, task.Category)
			if accept(b) {
				accepted++
			}
		}

		if remaining() <= 0 {
			return accepted, nil
		}

		before, err := h.driver.CountResultAnchors()
		if err != nil {
			return accepted, err
		}
		if err := h.driver.Scroll(h.scrollDelta); err != nil {
			return accepted, err
		}
		h.driver.Wait(h.scrollDelay)

		if h.driver.EndOfListVisible() {
			return accepted, nil
		}

		after, err := h.driver.CountResultAnchors()
		if err != nil {
			return accepted, err
		}
		if after == before {
			// Tolerate a lazy-loading panel once before calling it stalled.
			stalled++
			if stalled >= h.stalledLimit {
				log.Debugf("results panel stalled at %d listings for %q", after, task.Query())
				return accepted, nil
			}
		} else {
			stalled = 0
		}
	}

	return accepted, nil
}
