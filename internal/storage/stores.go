package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/neexbeast/wanderlust/internal/booking"
	"github.com/neexbeast/wanderlust/internal/newsletter"
)

// uniqueViolation is the SQLSTATE raised by a UNIQUE constraint.
const uniqueViolation = "23505"

// BookingStore persists bookings in PostgreSQL. Ids come from an identity column.
type BookingStore struct {
	q Querier
}

// NewBookingStore constructs a BookingStore.
func NewBookingStore(q Querier) *BookingStore {
	return &BookingStore{q: q}
}

// Insert stores b and sets b.ID from the generated identity.
func (s *BookingStore) Insert(ctx context.Context, b *booking.Booking) error {
	const q = `
		INSERT INTO bookings (destination_id, destination_name, customer_info, travel_dates,
			guests, total_price, status, booking_date, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := s.q.QueryRow(ctx, q,
		b.DestinationID,
		b.Destination,
		[]byte(b.CustomerInfo),
		[]byte(b.TravelDates),
		b.Guests,
		b.TotalPrice,
		string(b.Status),
		b.BookingDate,
		b.Reference,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("inserting booking %s: %w", b.Reference, err)
	}

	return nil
}

// Get returns the booking with the given id, or nil, nil when absent.
func (s *BookingStore) Get(ctx context.Context, id int) (*booking.Booking, error) {
	const q = `
		SELECT id, destination_id, destination_name, customer_info, travel_dates,
			guests, total_price, status, booking_date, reference
		FROM bookings
		WHERE id = $1
	`

	var b booking.Booking
	var customerInfo, travelDates []byte
	var status string

	err := s.q.QueryRow(ctx, q, id).Scan(
		&b.ID,
		&b.DestinationID,
		&b.Destination,
		&customerInfo,
		&travelDates,
		&b.Guests,
		&b.TotalPrice,
		&status,
		&b.BookingDate,
		&b.Reference,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying booking %d: %w", id, err)
	}

	b.CustomerInfo = customerInfo
	b.TravelDates = travelDates
	b.Status = booking.Status(status)
	b.BookingDate = b.BookingDate.UTC()
	return &b, nil
}

// SubscriberStore persists newsletter subscribers in PostgreSQL.
// Duplicate detection relies on the UNIQUE constraint on email.
type SubscriberStore struct {
	q Querier
}

// NewSubscriberStore constructs a SubscriberStore.
func NewSubscriberStore(q Querier) *SubscriberStore {
	return &SubscriberStore{q: q}
}

// Add inserts email, returning newsletter.ErrAlreadySubscribed on a duplicate.
func (s *SubscriberStore) Add(ctx context.Context, email string, at time.Time) (*newsletter.Subscriber, error) {
	const q = `
		INSERT INTO subscribers (email, subscribed_at, active)
		VALUES ($1, $2, TRUE)
		RETURNING id
	`

	sub := newsletter.Subscriber{Email: email, SubscribedAt: at, Active: true}
	if err := s.q.QueryRow(ctx, q, email, at).Scan(&sub.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, newsletter.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("inserting subscriber: %w", err)
	}

	return &sub, nil
}
