package destination

import "context"

// MemoryRepository serves destinations from a fixed in-process catalogue.
// The catalogue is never mutated after construction, so reads need no locking.
type MemoryRepository struct {
	items []Destination
}

// NewMemoryRepository constructs a MemoryRepository over a copy of items.
func NewMemoryRepository(items []Destination) *MemoryRepository {
	return &MemoryRepository{items: append([]Destination(nil), items...)}
}

// ListDestinations returns the destinations matching f.
func (r *MemoryRepository) ListDestinations(_ context.Context, f Filter) ([]Destination, error) {
	return Apply(r.items, f), nil
}

// GetDestination returns the destination with the given id.
// Returns nil, nil when the id is unknown.
func (r *MemoryRepository) GetDestination(_ context.Context, id int) (*Destination, error) {
	for _, d := range r.items {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, nil
}

// SearchDestinations runs a free-text search over the catalogue.
func (r *MemoryRepository) SearchDestinations(_ context.Context, query string, limit int) ([]Destination, error) {
	return Search(r.items, query, limit), nil
}
