package gmaps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"MapsScraper/pkg/config"
)

// Stable locators on the maps search surface.
const (
	searchBoxSelector    = "#searchboxinput"
	resultAnchorSelector = `a[href*="https://www.google.com/maps/place"]`
	detailPanelSelector  = `div[role="main"]`
	endOfListText        = "You've reached the end of the list"
)

// RodDriver drives one stealth page in a dedicated browser session.
type RodDriver struct {
	browser *rod.Browser
	page    *rod.Page

	baseURL         string
	navigateTimeout time.Duration
	searchTimeout   time.Duration
	elementTimeout  time.Duration
}

// NewRodDriver launches a browser and opens a stealth page on it. The
// returned driver owns both; Close tears them down together.
func NewRodDriver(scraperConf config.ScraperConfig, mapsConf config.MapsConfig) (*RodDriver, error) {
	u, err := launcher.New().Headless(!scraperConf.Headed).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	page, err := stealth.Page(browser)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("open stealth page: %w", err)
	}
	return &RodDriver{
		browser:         browser,
		page:            page,
		baseURL:         mapsConf.BaseURL,
		navigateTimeout: time.Duration(mapsConf.NavigateTimeoutMs) * time.Millisecond,
		searchTimeout:   time.Duration(mapsConf.SearchTimeoutMs) * time.Millisecond,
		elementTimeout:  time.Duration(mapsConf.ElementTimeoutMs) * time.Millisecond,
	}, nil
}

// asDriverErr maps rod's deadline errors onto the driver taxonomy.
func asDriverErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// Search navigates to the map, fills the search box and waits for the first
// result anchor. A fresh navigation per search resets panel scroll state.
func (d *RodDriver) Search(query string) error {
	if err := d.page.Timeout(d.navigateTimeout).Navigate(d.baseURL); err != nil {
		return asDriverErr(err)
	}
	box, err := d.page.Timeout(d.elementTimeout).Element(searchBoxSelector)
	if err != nil {
		return asDriverErr(err)
	}
	if err := box.SelectAllText(); err == nil {
		_ = box.Input("")
	}
	if err := box.Input(query); err != nil {
		return asDriverErr(err)
	}
	if err := d.page.Keyboard.Press(input.Enter); err != nil {
		return asDriverErr(err)
	}
	if _, err := d.page.Timeout(d.searchTimeout).Element(resultAnchorSelector); err != nil {
		return asDriverErr(err)
	}
	return nil
}

func (d *RodDriver) CountResultAnchors() (int, error) {
	els, err := d.page.Elements(resultAnchorSelector)
	if err != nil {
		return 0, asDriverErr(err)
	}
	return len(els), nil
}

func (d *RodDriver) ListResultAnchors() ([]Locator, error) {
	els, err := d.page.Elements(resultAnchorSelector)
	if err != nil {
		return nil, asDriverErr(err)
	}
	locators := make([]Locator, 0, len(els))
	for _, el := range els {
		locators = append(locators, &rodLocator{el: el})
	}
	return locators, nil
}

func (d *RodDriver) Click(l Locator) error {
	rl, ok := l.(*rodLocator)
	if !ok {
		return fmt.Errorf("locator does not belong to this driver")
	}
	if err := rl.el.Timeout(d.elementTimeout).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return asDriverErr(err)
	}
	return nil
}

func (d *RodDriver) ReadText(sel string) (string, error) {
	el, err := d.page.Timeout(d.elementTimeout).Element(sel)
	if err != nil {
		return "", ErrAbsent
	}
	text, err := el.Text()
	if err != nil {
		return "", asDriverErr(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrAbsent
	}
	return text, nil
}

func (d *RodDriver) ReadAttribute(sel, name string) (string, error) {
	el, err := d.page.Timeout(d.elementTimeout).Element(sel)
	if err != nil {
		return "", ErrAbsent
	}
	val, err := el.Attribute(name)
	if err != nil {
		return "", asDriverErr(err)
	}
	if val == nil || *val == "" {
		return "", ErrAbsent
	}
	return *val, nil
}

func (d *RodDriver) PanelHTML() (string, error) {
	el, err := d.page.Timeout(d.elementTimeout).Element(detailPanelSelector)
	if err != nil {
		return "", ErrAbsent
	}
	html, err := el.HTML()
	if err != nil {
		return "", asDriverErr(err)
	}
	return html, nil
}

func (d *RodDriver) Scroll(delta int) error {
	// The results panel sits under the cursor after a search, so a wheel
	// scroll advances the virtualized list rather than the whole window.
	if err := d.page.Mouse.Scroll(0, float64(delta), 1); err != nil {
		return asDriverErr(err)
	}
	return nil
}

func (d *RodDriver) EndOfListVisible() bool {
	has, _, err := d.page.HasR("span", endOfListText)
	return err == nil && has
}

func (d *RodDriver) CurrentURL() string {
	info, err := d.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (d *RodDriver) Wait(dur time.Duration) {
	time.Sleep(dur)
}

func (d *RodDriver) Close() {
	_ = d.browser.Close()
}

// rodLocator wraps one result anchor element.
type rodLocator struct {
	el *rod.Element
}

func (l *rodLocator) Attribute(name string) (string, error) {
	val, err := l.el.Attribute(name)
	if err != nil {
		return "", asDriverErr(err)
	}
	if val == nil || *val == "" {
		return "", ErrAbsent
	}
	return *val, nil
}
