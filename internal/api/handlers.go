package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	destinations  DestinationRepo
	cache         DestinationCache
	fetcher       DestinationFetcher
	bookings      BookingService
	subscriptions SubscriptionService
	contact       ContactInbox
	development   bool
	log           *slog.Logger
}

// Deps lists the services backing the handlers.
type Deps struct {
	Destinations  DestinationRepo
	Cache         DestinationCache
	Fetcher       DestinationFetcher
	Bookings      BookingService
	Subscriptions SubscriptionService
	Contact       ContactInbox
	// Development exposes internal error details in 500 responses.
	Development bool
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(d Deps, log *slog.Logger) *Handlers {
	return &Handlers{
		destinations:  d.Destinations,
		cache:         d.Cache,
		fetcher:       d.Fetcher,
		bookings:      d.Bookings,
		subscriptions: d.Subscriptions,
		contact:       d.Contact,
		development:   d.Development,
		log:           log,
	}
}

func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.Error(msg, "path", r.URL.Path, "err", err)
	writeInternalError(w, h.development, err)
}

// idParam parses the {id} route parameter. ok is false for anything but a decimal integer.
func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}
