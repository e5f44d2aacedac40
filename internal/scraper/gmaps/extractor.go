package gmaps

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"MapsScraper/internal/models"
	"MapsScraper/utils"
)

// Detail-panel locators keyed by the site's stable semantic identifiers.
const (
	addressSelector = `button[data-item-id="address"] div[class*="fontBodyMedium"]`
	websiteSelector = `a[data-item-id="authority"] div[class*="fontBodyMedium"]`
	phoneSelector   = `button[data-item-id^="phone:tel:"] div[class*="fontBodyMedium"]`
	ratingSelector  = `div[role="main"] span[role="img"]`
)

// ExtractBusiness turns a focused listing into a typed business record.
// Every field is read independently; a missing or unreadable field takes its
// sentinel default and never blocks extraction of the others.
func ExtractBusiness(d PageDriver, listing Locator, category string) models.Business {
	b := models.NewBusiness(category)

	if label, err := listing.Attribute("aria-label"); err == nil {
		if name := utils.CleanBusinessName(label); name != "" {
			b.Name = name
		}
	}

	b.Address = extractField(d, addressSelector, models.DefaultAddress)
	b.Website = extractField(d, websiteSelector, models.DefaultWebsite)
	b.PhoneNumber = extractField(d, phoneSelector, models.DefaultPhone)

	if label, err := d.ReadAttribute(ratingSelector, "aria-label"); err == nil {
		b.ReviewsAverage = utils.ParseRating(label)
	}
	b.ReviewsCount = extractReviewsCount(d)
	b.Latitude, b.Longitude = utils.ExtractCoordinates(d.CurrentURL())

	return b
}

func extractField(d PageDriver, sel, sentinel string) string {
	if text, err := d.ReadText(sel); err == nil {
		return text
	}
	return sentinel
}

// extractReviewsCount finds the reviews-count control inside the detail
// panel. The control is a button whose span text mentions "reviews", which
// has no CSS-expressible locator, so the panel HTML is parsed structurally.
func extractReviewsCount(d PageDriver) int {
	html, err := d.PanelHTML()
	if err != nil {
		return 0
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0
	}

	var text string
	doc.Find("button span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), "reviews") {
			text = s.Text()
			return false
		}
		return true
	})
	return utils.ParseReviewCount(text)
}
