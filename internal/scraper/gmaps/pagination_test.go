package gmaps

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"MapsScraper/internal/models"
)

func gymListing(n int) *fakeListing {
	return &fakeListing{
		label: fmt.Sprintf("Gym %d", n),
		fields: map[string]string{
			addressSelector: fmt.Sprintf("%d Main St", n),
			phoneSelector:   fmt.Sprintf("(555) 000-%04d", n),
		},
	}
}

func austinTask() models.SearchTask {
	return models.SearchTask{Category: "Gyms", Location: models.Location{City: "Austin", State: "TX"}}
}

// acceptAllUnique accepts every business not seen before, mimicking the
// dedup store without the quota.
func acceptAllUnique() (AcceptFunc, *[]models.Business) {
	var accepted []models.Business
	seen := make(map[models.IdentityKey]bool)
	return func(b models.Business) bool {
		if seen[b.Identity()] {
			return false
		}
		seen[b.Identity()] = true
		accepted = append(accepted, b)
		return true
	}, &accepted
}

func unlimited() int { return 1 << 30 }

func TestHarvestStopsAtQuota(t *testing.T) {
	d := newFakeDriver()
	d.results["Gyms in Austin, TX"] = &fakeResults{
		listings: []*fakeListing{gymListing(1), gymListing(2), gymListing(3)},
		visible:  3,
	}

	h := NewHarvester(d, testConf())
	remaining := 2
	accept, accepted := acceptAllUnique()

	got, err := h.Harvest(context.Background(), austinTask(), func() int { return remaining - len(*accepted) }, accept)
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}
	if got != 2 || len(*accepted) != 2 {
		t.Errorf("Harvest accepted %d; want exactly the quota of 2", got)
	}
	if d.scrolls != 0 {
		t.Errorf("driver scrolled %d times; quota should stop before scrolling", d.scrolls)
	}
}

func TestHarvestSearchTimeoutAbandonsTask(t *testing.T) {
	d := newFakeDriver() // no scripted results: every search times out
	h := NewHarvester(d, testConf())
	accept, _ := acceptAllUnique()

	got, err := h.Harvest(context.Background(), austinTask(), unlimited, accept)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Harvest error = %v; want ErrTimeout", err)
	}
	if got != 0 {
		t.Errorf("Harvest accepted %d on timeout; want 0", got)
	}
}

func TestHarvestStopsOnEndOfList(t *testing.T) {
	d := newFakeDriver()
	d.results["Gyms in Austin, TX"] = &fakeResults{
		listings: []*fakeListing{gymListing(1), gymListing(2)},
		visible:  2,
		showEnd:  true,
	}

	h := NewHarvester(d, testConf())
	accept, _ := acceptAllUnique()

	got, err := h.Harvest(context.Background(), austinTask(), unlimited, accept)
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}
	if got != 2 {
		t.Errorf("Harvest accepted %d; want 2", got)
	}
	if d.scrolls != 1 {
		t.Errorf("driver scrolled %d times; end marker should stop after the first", d.scrolls)
	}
}

// The panel never shows its end marker and never loads more listings: the
// stagnation fallback must terminate the loop after tolerating one stalled
// scroll for lazy loading.
func TestHarvestTerminatesOnStagnation(t *testing.T) {
	d := newFakeDriver()
	d.results["Gyms in Austin, TX"] = &fakeResults{
		listings: []*fakeListing{gymListing(1), gymListing(2)},
		visible:  2,
		// loadPerScroll 0, showEnd false: the panel under-reports forever.
	}

	h := NewHarvester(d, testConf())
	accept, accepted := acceptAllUnique()

	got, err := h.Harvest(context.Background(), austinTask(), unlimited, accept)
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}
	if got != 2 || len(*accepted) != 2 {
		t.Errorf("Harvest accepted %d; want 2 unique", got)
	}
	if d.scrolls != testConf().StalledScrollLimit {
		t.Errorf("driver scrolled %d times; want %d (one retry, then stalled)", d.scrolls, testConf().StalledScrollLimit)
	}
}

func TestHarvestLazyLoadingSurvivesOneStall(t *testing.T) {
	d := newFakeDriver()
	d.results["Gyms in Austin, TX"] = &fakeResults{
		listings: []*fakeListing{gymListing(1), gymListing(2), gymListing(3)},
		visible:  2,
	}

	// First scroll loads nothing (a lazy-loading stall), the second loads
	// the third listing, then the panel stalls for good.
	loads := []int{0, 1}
	i := 0
	h := NewHarvester(&lazyDriver{fakeDriver: d, loads: loads, i: &i}, testConf())
	accept, _ := acceptAllUnique()

	got, err := h.Harvest(context.Background(), austinTask(), unlimited, accept)
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}
	if got != 3 {
		t.Errorf("Harvest accepted %d; want all 3 after the lazy load", got)
	}
}

// lazyDriver overrides Scroll to load a scripted number of listings per call.
type lazyDriver struct {
	*fakeDriver
	loads []int
	i     *int
}

func (d *lazyDriver) Scroll(delta int) error {
	load := 0
	if *d.i < len(d.loads) {
		load = d.loads[*d.i]
	}
	*d.i++
	d.current.loadPerScroll = load
	return d.fakeDriver.Scroll(delta)
}

func TestHarvestRespectsCancellation(t *testing.T) {
	d := newFakeDriver()
	d.results["Gyms in Austin, TX"] = &fakeResults{
		listings: []*fakeListing{gymListing(1), gymListing(2)},
		visible:  2,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewHarvester(d, testConf())
	accept, _ := acceptAllUnique()

	if _, err := h.Harvest(ctx, austinTask(), unlimited, accept); !errors.Is(err, context.Canceled) {
		t.Fatalf("Harvest error = %v; want context.Canceled", err)
	}
}
