package snapshot

import (
	"sync"
	"time"

	"advisor.fieldroute.org/internal/models"
)

// CustomerStore is a thread-safe in-memory holder for the current customer
// snapshot. It allows concurrent access using read-write locks with a
// sync.RWMutex.
//
// The store always hands out copies, so a recommendation run works on a
// stable point-in-time snapshot even while a background refresh replaces
// the data.
type CustomerStore struct {
	mu        sync.RWMutex
	customers []models.CustomerLocation
	loadedAt  time.Time
}

// NewCustomerStore initializes and returns a new, empty CustomerStore.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{}
}

// Set replaces the stored snapshot with the given customers and records the
// load time. The slice is copied; the caller keeps ownership of its input.
func (s *CustomerStore) Set(customers []models.CustomerLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]models.CustomerLocation(nil), customers...)
	s.loadedAt = time.Now().UTC()
}

// Customers returns a copy of the current snapshot. Safe for concurrent use.
func (s *CustomerStore) Customers() []models.CustomerLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CustomerLocation(nil), s.customers...)
}

// Count returns the number of customers in the current snapshot.
func (s *CustomerStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}

// LoadedAt returns when the snapshot was last set, and false if no snapshot
// has been loaded yet.
func (s *CustomerStore) LoadedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt, !s.loadedAt.IsZero()
}
