// Package contact accepts contact-form submissions. Submissions are logged, not stored.
package contact

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSubject is used when a submission has no subject.
const DefaultSubject = "General Inquiry"

// ErrMissingFields is returned when name, email or message is empty.
var ErrMissingFields = errors.New("name, email, and message are required")

// Submission is a single contact-form message.
type Submission struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
	Status      string    `json:"status"`
}

// Inbox receives submissions.
type Inbox struct {
	log *slog.Logger
	now func() time.Time
}

// NewInbox constructs an Inbox that records submissions to log.
func NewInbox(log *slog.Logger) *Inbox {
	return &Inbox{log: log, now: time.Now}
}

// Submit validates s, stamps it and records it.
func (in *Inbox) Submit(_ context.Context, s Submission) (*Submission, error) {
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Email) == "" || strings.TrimSpace(s.Message) == "" {
		return nil, ErrMissingFields
	}

	if s.Subject == "" {
		s.Subject = DefaultSubject
	}
	s.ID = uuid.New()
	s.SubmittedAt = in.now().UTC()
	s.Status = "new"

	in.log.Info("contact form submission",
		"submission_id", s.ID.String(),
		"email", s.Email,
		"subject", s.Subject,
		"message_length", len(s.Message),
	)

	return &s, nil
}
