package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Service implements booking creation and lookup.
type Service struct {
	destinations DestinationLookup
	store        Store
	notifier     Notifier
	validate     *validator.Validate
	log          *slog.Logger
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the notifier told about confirmed bookings.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs a Service.
func NewService(destinations DestinationLookup, store Store, log *slog.Logger, opts ...Option) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return present(fl.Field().Bytes())
	})

	s := &Service{
		destinations: destinations,
		store:        store,
		validate:     v,
		log:          log,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates req, prices it against the destination and stores a confirmed booking.
// The store is not touched when validation or the destination lookup fails.
func (s *Service) Create(ctx context.Context, req Request) (*Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingFields, err)
	}

	dest, err := s.destinations.GetDestination(ctx, req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("looking up destination %d: %w", req.DestinationID, err)
	}
	if dest == nil {
		return nil, ErrDestinationNotFound
	}

	guests := req.Guests
	if guests == 0 {
		guests = DefaultGuests
	}

	now := s.now().UTC()
	b := &Booking{
		DestinationID: dest.ID,
		Destination:   dest.Name,
		CustomerInfo:  req.CustomerInfo,
		TravelDates:   req.TravelDates,
		Guests:        guests,
		TotalPrice:    dest.Price * float64(guests),
		Status:        StatusConfirmed,
		BookingDate:   now,
		Reference:     ReferencePrefix + strconv.FormatInt(now.UnixMilli(), 10),
	}

	if err := s.store.Insert(ctx, b); err != nil {
		return nil, fmt.Errorf("storing booking: %w", err)
	}

	s.log.Info("booking confirmed",
		"booking_id", b.ID,
		"reference", b.Reference,
		"destination_id", b.DestinationID,
		"guests", b.Guests,
	)

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, *b); err != nil {
			s.log.Warn("booking notification failed", "booking_id", b.ID, "err", err)
		}
	}

	return b, nil
}

// Get returns the booking with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (*Booking, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting booking %d: %w", id, err)
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}
