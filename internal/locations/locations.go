// Package locations loads the operator-supplied city list.
package locations

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"MapsScraper/internal/models"
)

// Load reads (city, state) pairs from a CSV file with "city" and "state_id"
// columns, matched by header name case-insensitively. Extra columns are
// ignored; blank rows are skipped.
func Load(path string) ([]models.Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open locations file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads locations from any CSV stream. Kept separate from Load so the
// HTTP upload path can reuse it.
func Parse(r io.Reader) ([]models.Location, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read locations header: %w", err)
	}

	cityIdx, stateIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "city":
			cityIdx = i
		case "state_id":
			stateIdx = i
		}
	}
	if cityIdx < 0 || stateIdx < 0 {
		return nil, fmt.Errorf("locations file needs 'city' and 'state_id' columns, got %v", header)
	}

	var locs []models.Location
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read locations row: %w", err)
		}
		if cityIdx >= len(row) || stateIdx >= len(row) {
			continue
		}
		city := strings.TrimSpace(row[cityIdx])
		state := strings.TrimSpace(row[stateIdx])
		if city == "" || state == "" {
			continue
		}
		locs = append(locs, models.Location{City: city, State: state})
	}
	return locs, nil
}
