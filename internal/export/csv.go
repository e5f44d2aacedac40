// Package export appends accepted businesses to the run's tabular output file.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"MapsScraper/internal/models"
	"MapsScraper/utils"
)

// Column order is part of the output contract; do not reorder.
var csvHeader = []string{
	"name", "address", "website", "phone_number",
	"reviews_count", "reviews_average", "latitude", "longitude",
}

// CSVSink appends category batches to a single centralized CSV file.
// The header row is written exactly once, when the file is created.
type CSVSink struct {
	mu   sync.Mutex
	path string
}

// NewCSVSink creates the output directory if needed. The destination file
// itself is created lazily on the first flush.
func NewCSVSink(dir, name string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &CSVSink{path: filepath.Join(dir, name+".csv")}, nil
}

// Path returns the destination file path.
func (s *CSVSink) Path() string {
	return s.path
}

// FlushCategory appends one category's accepted businesses. The batch is
// encoded in memory and appended with a single write, so a failure leaves
// the file without a partially written batch. A zero-record flush is a no-op.
// The mutex keeps one writer at a time on the destination file.
func (s *CSVSink) FlushCategory(businesses []models.Business) error {
	if len(businesses) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, statErr := os.Stat(s.path)
	writeHeader := os.IsNotExist(statErr)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
	}
	for _, b := range businesses {
		row := []string{
			b.Name,
			b.Address,
			b.Website,
			b.PhoneNumber,
			strconv.Itoa(b.ReviewsCount),
			strconv.FormatFloat(b.ReviewsAverage, 'f', -1, 64),
			utils.FormatCoordinate(b.Latitude),
			utils.FormatCoordinate(b.Longitude),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("append results: %w", err)
	}
	return f.Close()
}
