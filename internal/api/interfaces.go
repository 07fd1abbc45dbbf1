package api

import (
	"context"

	"github.com/neexbeast/wanderlust/internal/booking"
	"github.com/neexbeast/wanderlust/internal/contact"
	"github.com/neexbeast/wanderlust/internal/destination"
	"github.com/neexbeast/wanderlust/internal/newsletter"
)

// DestinationRepo defines the catalogue reads needed by handlers.
type DestinationRepo interface {
	ListDestinations(ctx context.Context, f destination.Filter) ([]destination.Destination, error)
	GetDestination(ctx context.Context, id int) (*destination.Destination, error)
	SearchDestinations(ctx context.Context, query string, limit int) ([]destination.Destination, error)
}

// DestinationCache defines the insights cache operations needed by handlers.
type DestinationCache interface {
	Get(ctx context.Context, destinationID int) (*destination.Insights, error)
	Set(ctx context.Context, destinationID int, data *destination.Insights) error
	Delete(ctx context.Context, destinationID int) error
}

// DestinationFetcher defines the external API aggregation needed by handlers.
type DestinationFetcher interface {
	FetchAll(ctx context.Context, d destination.Destination) (*destination.Insights, error)
}

// BookingService creates and looks up bookings.
type BookingService interface {
	Create(ctx context.Context, req booking.Request) (*booking.Booking, error)
	Get(ctx context.Context, id int) (*booking.Booking, error)
}

// SubscriptionService registers newsletter subscribers.
type SubscriptionService interface {
	Subscribe(ctx context.Context, email string) (*newsletter.Subscriber, error)
}

// ContactInbox receives contact form submissions.
type ContactInbox interface {
	Submit(ctx context.Context, s contact.Submission) (*contact.Submission, error)
}

// Pinger is a dependency the health endpoint can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}
