package api

import (
	"errors"
	"net/http"

	"github.com/neexbeast/wanderlust/internal/contact"
	"github.com/neexbeast/wanderlust/internal/newsletter"
)

const (
	msgSubscribed        = "Successfully subscribed to newsletter"
	msgInvalidEmail      = "Valid email address is required"
	msgAlreadySubscribed = "Email already subscribed"
	msgContactThanks     = "Thank you for your message. We will get back to you soon!"
	msgContactMissing    = "Name, email, and message are required"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe handles POST /api/subscribe.
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	sub, err := h.subscriptions.Subscribe(r.Context(), req.Email)
	switch {
	case errors.Is(err, newsletter.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, msgInvalidEmail)
		return
	case errors.Is(err, newsletter.ErrAlreadySubscribed):
		writeError(w, http.StatusBadRequest, msgAlreadySubscribed)
		return
	case err != nil:
		h.internalError(w, r, "subscribing failed", err)
		return
	}

	writeData(w, http.StatusCreated, sub, msgSubscribed)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Contact handles POST /api/contact. Submissions are acknowledged, never echoed back.
func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	_, err := h.contact.Submit(r.Context(), contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if errors.Is(err, contact.ErrMissingFields) {
		writeError(w, http.StatusBadRequest, msgContactMissing)
		return
	}
	if err != nil {
		h.internalError(w, r, "contact submission failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: msgContactThanks})
}
