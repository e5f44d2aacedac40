package utils

import (
	"strconv"
	"strings"
)

// visitedSuffix is appended by the results panel to the accessible label of
// listings whose detail page was already opened in this browser session.
const visitedSuffix = " · Visited link"

// CleanBusinessName strips the visited-link suffix from a listing label.
func CleanBusinessName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, visitedSuffix, ""))
}

// FormatCoordinate renders an optional coordinate for tabular output.
// A nil coordinate becomes the empty string.
func FormatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
