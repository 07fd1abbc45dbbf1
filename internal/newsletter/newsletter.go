// Package newsletter registers newsletter subscribers.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

var (
	// ErrInvalidEmail is returned for an address without "@".
	ErrInvalidEmail = errors.New("valid email address is required")
	// ErrAlreadySubscribed is returned when the exact address is already registered.
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

// Subscriber is a registered newsletter address. Subscribers are never removed.
type Subscriber struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
	Active       bool      `json:"active"`
}

// Store persists subscribers. Add must check for an existing exact match and insert
// atomically, returning ErrAlreadySubscribed on a duplicate.
type Store interface {
	Add(ctx context.Context, email string, at time.Time) (*Subscriber, error)
}

// Service registers subscribers.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService constructs a Service.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Subscribe registers email. Matching against existing subscribers is case-sensitive.
func (s *Service) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	sub, err := s.store.Add(ctx, email, s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrAlreadySubscribed) {
			return nil, err
		}
		return nil, fmt.Errorf("adding subscriber: %w", err)
	}

	s.log.Info("newsletter subscription", "subscriber_id", sub.ID)
	return sub, nil
}

// MemoryStore keeps subscribers for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	items []Subscriber
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends a subscriber unless email is already present.
// The duplicate check and the append happen under one lock.
func (m *MemoryStore) Add(_ context.Context, email string, at time.Time) (*Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.items {
		if s.Email == email {
			return nil, ErrAlreadySubscribed
		}
	}

	sub := Subscriber{
		ID:           len(m.items) + 1,
		Email:        email,
		SubscribedAt: at,
		Active:       true,
	}
	m.items = append(m.items, sub)
	return &sub, nil
}

// Len returns the number of subscribers.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
