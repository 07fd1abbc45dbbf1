package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/wanderlust/internal/destination"
)

const (
	defaultTTL       = time.Hour
	defaultNamespace = "destination:insights"
)

// Cache keeps destination insights in Redis as JSON, one key per destination id.
type Cache struct {
	client    redis.Cmdable
	ttl       time.Duration
	namespace string
}

// Option customises a Cache.
type Option func(*Cache)

// WithTTL sets how long an entry lives. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithNamespace sets the key prefix, letting several deployments share one Redis.
func WithNamespace(ns string) Option {
	return func(c *Cache) {
		if ns != "" {
			c.namespace = ns
		}
	}
}

// NewCache builds a Cache with a one hour TTL unless overridden.
func NewCache(client redis.Cmdable, opts ...Option) *Cache {
	c := &Cache{client: client, ttl: defaultTTL, namespace: defaultNamespace}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(id int) string {
	return c.namespace + ":" + strconv.Itoa(id)
}

// Get returns the cached insights for id, or nil, nil on a miss.
// An entry that no longer decodes is evicted and reported as a miss.
func (c *Cache) Get(ctx context.Context, id int) (*destination.Insights, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading insights for destination %d: %w", id, err)
	}

	var in destination.Insights
	if err := json.Unmarshal(raw, &in); err != nil {
		if delErr := c.client.Del(ctx, c.key(id)).Err(); delErr != nil {
			return nil, fmt.Errorf("evicting undecodable insights for destination %d: %w", id, delErr)
		}
		return nil, nil
	}
	return &in, nil
}

// Set stores in under id for the configured TTL. A nil value is ignored.
func (c *Cache) Set(ctx context.Context, id int, in *destination.Insights) error {
	if in == nil {
		return nil
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding insights for destination %d: %w", id, err)
	}
	if err := c.client.Set(ctx, c.key(id), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("storing insights for destination %d: %w", id, err)
	}
	return nil
}

// Delete drops the entry for id. Deleting a missing entry is not an error.
func (c *Cache) Delete(ctx context.Context, id int) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("deleting insights for destination %d: %w", id, err)
	}
	return nil
}

// Nop never stores anything. It stands in when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, int) (*destination.Insights, error) { return nil, nil }

func (Nop) Set(context.Context, int, *destination.Insights) error { return nil }

func (Nop) Delete(context.Context, int) error { return nil }
