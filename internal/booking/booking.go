// Package booking creates and looks up customer bookings against the destination catalogue.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/neexbeast/wanderlust/internal/destination"
)

// DefaultGuests is used when a request omits the guest count.
const DefaultGuests = 2

// ReferencePrefix starts every booking reference.
const ReferencePrefix = "WL"

// Status of a booking. Bookings are created confirmed and never transition.
type Status string

const StatusConfirmed Status = "confirmed"

var (
	// ErrMissingFields is returned when a request lacks the destination, customer info or travel dates.
	ErrMissingFields = errors.New("missing required booking information")
	// ErrDestinationNotFound is returned when the requested destination does not exist.
	ErrDestinationNotFound = errors.New("destination not found")
	// ErrNotFound is returned when a booking id is unknown.
	ErrNotFound = errors.New("booking not found")
)

// Booking is a confirmed reservation of a destination.
type Booking struct {
	ID            int             `json:"id"`
	DestinationID int             `json:"destinationId"`
	Destination   string          `json:"destination"`
	CustomerInfo  json.RawMessage `json:"customerInfo"`
	TravelDates   json.RawMessage `json:"travelDates"`
	Guests        int             `json:"guests"`
	TotalPrice    float64         `json:"totalPrice"`
	Status        Status          `json:"status"`
	BookingDate   time.Time       `json:"bookingDate"`
	Reference     string          `json:"bookingReference"`
}

// Request is the customer input for a new booking. CustomerInfo and TravelDates
// are opaque JSON payloads checked only for presence.
type Request struct {
	DestinationID int             `json:"destinationId" validate:"required"`
	CustomerInfo  json.RawMessage `json:"customerInfo" validate:"present"`
	TravelDates   json.RawMessage `json:"travelDates" validate:"present"`
	Guests        int             `json:"guests" validate:"gte=0"`
}

// unresolvableID stands in for a destinationId string that names no number.
// It passes the presence check and matches no destination.
const unresolvableID = -1

// UnmarshalJSON accepts destinationId as a number or as a numeric string.
// Strings are read like parseInt: leading digits count and trailing text is ignored.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	var aux struct {
		plain
		DestinationID json.RawMessage `json:"destinationId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Request(aux.plain)

	raw := bytes.TrimSpace(aux.DestinationID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		r.DestinationID = 0
		return nil
	}
	if raw[0] != '"' {
		return json.Unmarshal(raw, &r.DestinationID)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	r.DestinationID = idFromString(s)
	return nil
}

// idFromString maps a destinationId string to an id. The empty string is
// missing; any other string without a usable leading integer is unresolvable.
func idFromString(s string) int {
	if s == "" {
		return 0
	}
	t := strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(t) && (t[end] == '+' || t[end] == '-') {
		end++
	}
	digits := end
	for end < len(t) && t[end] >= '0' && t[end] <= '9' {
		end++
	}
	if end == digits {
		return unresolvableID
	}
	id, err := strconv.Atoi(t[:end])
	if err != nil || id == 0 {
		return unresolvableID
	}
	return id
}

// present reports whether raw carries a truthy JSON value: null, false, ""
// and zero all count as absent.
func present(raw []byte) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch {
	case bytes.Equal(v, []byte("null")), bytes.Equal(v, []byte("false")), bytes.Equal(v, []byte(`""`)):
		return false
	case v[0] == '-' || (v[0] >= '0' && v[0] <= '9'):
		f, err := strconv.ParseFloat(string(v), 64)
		return err != nil || f != 0
	}
	return true
}

// Store persists bookings. Insert assigns b.ID; Get returns nil, nil for unknown ids.
type Store interface {
	Insert(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id int) (*Booking, error)
}

// DestinationLookup resolves destination ids. Returns nil, nil when the id is unknown.
type DestinationLookup interface {
	GetDestination(ctx context.Context, id int) (*destination.Destination, error)
}

// Notifier is told about every confirmed booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b Booking) error
}
