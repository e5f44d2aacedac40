package locations

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"city,city_ascii,state_id,state_name",
		"Austin,Austin,TX,Texas",
		"Dallas,Dallas,TX,Texas",
		",,TX,Texas",
		"Portland,Portland,OR,Oregon",
	}, "\n")

	locs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(locs) != 3 {
		t.Fatalf("Parse returned %d locations; want 3", len(locs))
	}
	if locs[0].City != "Austin" || locs[0].State != "TX" {
		t.Errorf("first location = %+v; want Austin, TX", locs[0])
	}
	if locs[2].City != "Portland" || locs[2].State != "OR" {
		t.Errorf("last location = %+v; want Portland, OR", locs[2])
	}
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	input := "City,State_ID\nAustin,TX\n"
	locs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(locs) != 1 {
		t.Fatalf("Parse returned %d locations; want 1", len(locs))
	}
}

func TestParseMissingColumns(t *testing.T) {
	input := "town,region\nAustin,TX\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatal("Parse accepted a file without city/state_id columns")
	}
}
