// Package queue publishes booking events to RabbitMQ.
package queue

import (
	"encoding/json"
	"time"

	"github.com/neexbeast/wanderlust/internal/booking"
)

// BookingConfirmedQueue is the durable queue receiving BookingConfirmedEvent messages.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is the message body published for every confirmed booking.
type BookingConfirmedEvent struct {
	BookingID     int             `json:"booking_id"`
	Reference     string          `json:"booking_reference"`
	DestinationID int             `json:"destination_id"`
	Destination   string          `json:"destination"`
	CustomerInfo  json.RawMessage `json:"customer_info"`
	TravelDates   json.RawMessage `json:"travel_dates"`
	Guests        int             `json:"guests"`
	TotalPrice    float64         `json:"total_price"`
	ConfirmedAt   time.Time       `json:"confirmed_at"`
}

// NewBookingConfirmedEvent maps a booking onto its event payload.
func NewBookingConfirmedEvent(b booking.Booking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:     b.ID,
		Reference:     b.Reference,
		DestinationID: b.DestinationID,
		Destination:   b.Destination,
		CustomerInfo:  b.CustomerInfo,
		TravelDates:   b.TravelDates,
		Guests:        b.Guests,
		TotalPrice:    b.TotalPrice,
		ConfirmedAt:   b.BookingDate,
	}
}
