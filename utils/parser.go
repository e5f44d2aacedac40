package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// ratingRegex finds the first decimal-or-integer token in a rating label,
// e.g. "4.5 stars", after separator normalization.
var ratingRegex = regexp.MustCompile(`(\d+\.\d+|\d+)`)

// countRegex finds the first integer token after thousands separators are stripped.
var countRegex = regexp.MustCompile(`\d+`)

// ParseRating converts an aggregate-rating label to a float64.
// Locales that use a comma decimal separator ("4,5 stars") are normalized
// first. Returns 0.0 when no numeric token is present.
func ParseRating(label string) float64 {
	if label == "" {
		return 0.0
	}
	found := ratingRegex.FindString(strings.ReplaceAll(label, ",", "."))
	if found == "" {
		return 0.0
	}
	rating, err := strconv.ParseFloat(found, 64)
	if err != nil {
		return 0.0
	}
	return rating
}

// ParseReviewCount converts a reviews-count control's text ("1,234 reviews")
// to an int. Returns 0 when no integer token is present.
func ParseReviewCount(text string) int {
	if text == "" {
		return 0
	}
	found := countRegex.FindString(strings.ReplaceAll(text, ",", ""))
	if found == "" {
		return 0
	}
	count, err := strconv.Atoi(found)
	if err != nil {
		return 0
	}
	return count
}

// ExtractCoordinates pulls the latitude/longitude pair out of a maps URL,
// where the path embeds an "@lat,lng,zoom" segment. Any parse failure
// (missing segment, non-numeric token) yields (nil, nil) rather than an error.
func ExtractCoordinates(url string) (lat, lng *float64) {
	parts := strings.Split(url, "/@")
	if len(parts) < 2 {
		return nil, nil
	}
	segment := strings.Split(parts[len(parts)-1], "/")[0]
	tokens := strings.Split(segment, ",")
	if len(tokens) < 2 {
		return nil, nil
	}
	latVal, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return nil, nil
	}
	lngVal, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return nil, nil
	}
	return &latVal, &lngVal
}
