package snapshot

import (
	"testing"

	"advisor.fieldroute.org/internal/models"
)

func TestCustomerStoreSetAndGet(t *testing.T) {
	store := NewCustomerStore()

	if _, ok := store.LoadedAt(); ok {
		t.Error("fresh store reports a load time")
	}
	if store.Count() != 0 {
		t.Errorf("fresh store count = %d, want 0", store.Count())
	}

	input := []models.CustomerLocation{
		{ID: "a", Location: models.GeoPoint{Latitude: 69.0, Longitude: 18.0}},
		{ID: "b", Location: models.GeoPoint{Latitude: 69.1, Longitude: 18.1}},
	}
	store.Set(input)

	if store.Count() != 2 {
		t.Errorf("count = %d, want 2", store.Count())
	}
	if _, ok := store.LoadedAt(); !ok {
		t.Error("store did not record a load time")
	}

	got := store.Customers()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("unexpected snapshot contents: %v", got)
	}
}

func TestCustomerStoreCopiesOnBothSides(t *testing.T) {
	store := NewCustomerStore()
	input := []models.CustomerLocation{{ID: "a"}}
	store.Set(input)

	// Mutating the caller's slice must not leak into the store.
	input[0].ID = "mutated"
	if got := store.Customers(); got[0].ID != "a" {
		t.Errorf("store shares memory with the input slice: %v", got)
	}

	// Mutating a returned snapshot must not leak back either.
	out := store.Customers()
	out[0].ID = "mutated"
	if got := store.Customers(); got[0].ID != "a" {
		t.Errorf("store shares memory with a returned snapshot: %v", got)
	}
}

func TestCustomerStoreSetReplaces(t *testing.T) {
	store := NewCustomerStore()
	store.Set([]models.CustomerLocation{{ID: "a"}, {ID: "b"}})
	store.Set([]models.CustomerLocation{{ID: "c"}})

	got := store.Customers()
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("Set did not replace the snapshot: %v", got)
	}
}
