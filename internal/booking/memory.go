package booking

import (
	"context"
	"sync"
)

// MemoryStore keeps bookings for the lifetime of the process.
// Ids are assigned under the lock, so concurrent inserts never collide.
type MemoryStore struct {
	mu    sync.Mutex
	items []Booking
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert assigns the next sequential id to b and appends it.
func (m *MemoryStore) Insert(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b.ID = len(m.items) + 1
	m.items = append(m.items, *b)
	return nil
}

// Get returns a copy of the booking with the given id, or nil, nil.
func (m *MemoryStore) Get(_ context.Context, id int) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id < 1 || id > len(m.items) {
		return nil, nil
	}
	b := m.items[id-1]
	return &b, nil
}

// Len returns the number of stored bookings.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
