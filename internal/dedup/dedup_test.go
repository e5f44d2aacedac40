package dedup

import (
	"testing"

	"MapsScraper/internal/models"
)

func sampleBusiness(name string) models.Business {
	b := models.NewBusiness("Gyms")
	b.Name = name
	b.Address = "100 Main St"
	b.PhoneNumber = "(555) 000-1111"
	return b
}

func TestAdmitIsIdempotent(t *testing.T) {
	store := New()
	b := sampleBusiness("Iron Works")

	if !store.Admit(b) {
		t.Fatal("first admit returned false")
	}
	for i := 0; i < 3; i++ {
		if store.Admit(b) {
			t.Fatalf("replayed admit #%d returned true", i+1)
		}
	}
	if store.Seen() != 1 {
		t.Errorf("Seen() = %d; want 1", store.Seen())
	}
}

func TestAdmitIgnoresCategory(t *testing.T) {
	store := New()
	a := sampleBusiness("Iron Works")
	b := a
	b.Category = "Salons with multiple locations"

	if !store.Admit(a) {
		t.Fatal("first admit returned false")
	}
	if store.Admit(b) {
		t.Error("same identity under a different category was admitted")
	}
}

func TestDrainClearsBufferNotIdentitySet(t *testing.T) {
	store := New()
	store.Admit(sampleBusiness("Iron Works"))
	store.Admit(sampleBusiness("Peak Fitness"))

	batch := store.Drain()
	if len(batch) != 2 {
		t.Fatalf("Drain() returned %d businesses; want 2", len(batch))
	}
	if got := store.Drain(); len(got) != 0 {
		t.Errorf("second Drain() returned %d businesses; want 0", len(got))
	}
	// Identity still remembered across the drain.
	if store.Admit(sampleBusiness("Iron Works")) {
		t.Error("identity was forgotten after Drain")
	}
}

func TestNoTwoAcceptedShareIdentity(t *testing.T) {
	store := New()
	names := []string{"A", "B", "A", "C", "B", "A"}
	for _, n := range names {
		store.Admit(sampleBusiness(n))
	}

	seen := make(map[models.IdentityKey]bool)
	for _, b := range store.Drain() {
		if seen[b.Identity()] {
			t.Fatalf("duplicate identity accepted: %+v", b.Identity())
		}
		seen[b.Identity()] = true
	}
}
