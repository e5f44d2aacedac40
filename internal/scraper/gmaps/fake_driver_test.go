package gmaps

import (
	"time"

	"MapsScraper/pkg/config"
)

// fakeListing scripts one result anchor and the detail panel it opens.
type fakeListing struct {
	label     string            // aria-label of the anchor
	fields    map[string]string // selector -> text for ReadText
	attrs     map[string]string // "selector|attr" -> value for ReadAttribute
	panelHTML string
	url       string
}

type fakeLocator struct {
	listing *fakeListing
	driver  *fakeDriver
}

func (l *fakeLocator) Attribute(name string) (string, error) {
	if name == "aria-label" && l.listing.label != "" {
		return l.listing.label, nil
	}
	return "", ErrAbsent
}

// fakeResults scripts one search's virtualized panel: `visible` listings are
// loaded initially and `loadPerScroll` more appear per scroll.
type fakeResults struct {
	listings      []*fakeListing
	visible       int
	loadPerScroll int
	showEnd       bool // whether the end marker appears once fully loaded
}

type fakeDriver struct {
	results map[string]*fakeResults // query -> panel; absent query times out

	current *fakeResults
	focused *fakeListing
	scrolls int
	closed  bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{results: make(map[string]*fakeResults)}
}

func (d *fakeDriver) Search(query string) error {
	res, ok := d.results[query]
	if !ok {
		return ErrTimeout
	}
	d.current = res
	d.focused = nil
	return nil
}

func (d *fakeDriver) CountResultAnchors() (int, error) {
	if d.current == nil {
		return 0, nil
	}
	return d.current.visible, nil
}

func (d *fakeDriver) ListResultAnchors() ([]Locator, error) {
	if d.current == nil {
		return nil, nil
	}
	anchors := make([]Locator, 0, d.current.visible)
	for _, l := range d.current.listings[:d.current.visible] {
		anchors = append(anchors, &fakeLocator{listing: l, driver: d})
	}
	return anchors, nil
}

func (d *fakeDriver) Click(l Locator) error {
	d.focused = l.(*fakeLocator).listing
	return nil
}

func (d *fakeDriver) ReadText(sel string) (string, error) {
	if d.focused == nil {
		return "", ErrAbsent
	}
	if text, ok := d.focused.fields[sel]; ok && text != "" {
		return text, nil
	}
	return "", ErrAbsent
}

func (d *fakeDriver) ReadAttribute(sel, name string) (string, error) {
	if d.focused == nil {
		return "", ErrAbsent
	}
	if val, ok := d.focused.attrs[sel+"|"+name]; ok && val != "" {
		return val, nil
	}
	return "", ErrAbsent
}

func (d *fakeDriver) PanelHTML() (string, error) {
	if d.focused == nil || d.focused.panelHTML == "" {
		return "", ErrAbsent
	}
	return d.focused.panelHTML, nil
}

func (d *fakeDriver) Scroll(int) error {
	d.scrolls++
	if d.current != nil {
		d.current.visible += d.current.loadPerScroll
		if d.current.visible > len(d.current.listings) {
			d.current.visible = len(d.current.listings)
		}
	}
	return nil
}

func (d *fakeDriver) EndOfListVisible() bool {
	return d.current != nil && d.current.showEnd && d.current.visible == len(d.current.listings)
}

func (d *fakeDriver) CurrentURL() string {
	if d.focused == nil {
		return ""
	}
	return d.focused.url
}

func (d *fakeDriver) Wait(time.Duration) {}

func (d *fakeDriver) Close() { d.closed = true }

// testConf returns scraper settings with no real delays.
func testConf() config.ScraperConfig {
	return config.ScraperConfig{
		Workers:             "1",
		ListingsPerCategory: 10,
		SettleDelayMs:       1,
		ScrollDelayMs:       1,
		ScrollDelta:         5000,
		MaxScrollRounds:     100,
		StalledScrollLimit:  2,
	}
}
