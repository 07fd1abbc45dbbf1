package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/neexbeast/wanderlust/internal/booking"
)

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends booking events over a single long-lived AMQP channel.
// It implements booking.Notifier.
type Publisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   channel
	now  func() time.Time
}

// Dial connects to the broker at url and declares the durable booking queue.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring queue %s: %w", BookingConfirmedQueue, err)
	}

	return &Publisher{conn: conn, ch: ch, now: time.Now}, nil
}

// BookingConfirmed publishes a persistent BookingConfirmedEvent for b.
func (p *Publisher) BookingConfirmed(ctx context.Context, b booking.Booking) error {
	body, err := json.Marshal(NewBookingConfirmedEvent(b))
	if err != nil {
		return fmt.Errorf("marshalling booking event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    b.Reference,
		Timestamp:    p.now().UTC(),
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishes.
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", BookingConfirmedQueue, false, false, msg); err != nil {
		return fmt.Errorf("publishing booking %s: %w", b.Reference, err)
	}
	return nil
}

// Ping reports whether the broker connection is still open.
func (p *Publisher) Ping(_ context.Context) error {
	if p.conn != nil && p.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		return fmt.Errorf("closing channel: %w", err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("closing connection: %w", err)
		}
	}
	return nil
}
