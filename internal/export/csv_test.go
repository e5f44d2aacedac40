package export

import (
	"encoding/csv"
	"os"
	"testing"

	"MapsScraper/internal/models"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return rows
}

func TestFlushCategoryWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCSVSink(dir, "Scraped_results")
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}

	lat, lng := 40.7128, -74.0060
	first := models.NewBusiness("Gyms")
	first.Name = "Iron Works"
	first.ReviewsCount = 1234
	first.ReviewsAverage = 4.5
	first.Latitude = &lat
	first.Longitude = &lng

	second := models.NewBusiness("Gyms")
	second.Name = "Peak Fitness"

	if err := sink.FlushCategory([]models.Business{first}); err != nil {
		t.Fatalf("first flush: %v", err)
	}
	if err := sink.FlushCategory([]models.Business{second}); err != nil {
		t.Fatalf("second flush: %v", err)
	}

	rows := readAll(t, sink.Path())
	if len(rows) != 3 {
		t.Fatalf("output has %d rows; want header + 2", len(rows))
	}
	wantHeader := []string{"name", "address", "website", "phone_number", "reviews_count", "reviews_average", "latitude", "longitude"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q; want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "Iron Works" || rows[1][4] != "1234" || rows[1][5] != "4.5" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[1][6] != "40.7128" || rows[1][7] != "-74.006" {
		t.Errorf("coordinates = %q, %q", rows[1][6], rows[1][7])
	}
	// Defaults and empty coordinates for the second business.
	if rows[2][1] != models.DefaultAddress || rows[2][6] != "" || rows[2][7] != "" {
		t.Errorf("second row = %v", rows[2])
	}
}

func TestFlushCategoryEmptyBatchIsNoop(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCSVSink(dir, "Scraped_results")
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}
	if err := sink.FlushCategory(nil); err != nil {
		t.Fatalf("empty flush: %v", err)
	}
	if _, err := os.Stat(sink.Path()); !os.IsNotExist(err) {
		t.Error("empty flush created the output file")
	}
}
