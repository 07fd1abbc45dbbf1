package api

import (
	"errors"
	"net/http"

	"github.com/neexbeast/wanderlust/internal/booking"
)

const (
	msgBookingCreated  = "Booking created successfully"
	msgBookingMissing  = "Missing required booking information"
	msgBookingNotFound = "Booking not found"
)

// CreateBooking handles POST /api/bookings.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req booking.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	b, err := h.bookings.Create(r.Context(), req)
	switch {
	case errors.Is(err, booking.ErrMissingFields):
		writeError(w, http.StatusBadRequest, msgBookingMissing)
		return
	case errors.Is(err, booking.ErrDestinationNotFound):
		writeError(w, http.StatusNotFound, msgDestinationNotFound)
		return
	case err != nil:
		h.internalError(w, r, "creating booking failed", err)
		return
	}

	writeData(w, http.StatusCreated, b, msgBookingCreated)
}

// GetBooking handles GET /api/bookings/{id}.
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgBookingNotFound)
		return
	}

	b, err := h.bookings.Get(r.Context(), id)
	if errors.Is(err, booking.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgBookingNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, "getting booking failed", err)
		return
	}

	writeData(w, http.StatusOK, b, "")
}
