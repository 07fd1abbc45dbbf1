package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/wanderlust/internal/destination"
)

// Querier abstracts the subset of pgxpool.Pool used by the repositories.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const destinationColumns = `id, name, country, region, description, image_url, price, duration, rating,
	difficulty_level, best_season, highlights, category, featured, created_at`

var searchColumns = []string{"name", "country", "description"}

// DestinationRepository reads destinations from PostgreSQL.
type DestinationRepository struct {
	q Querier
}

// NewDestinationRepository constructs a DestinationRepository backed by the given pool.
func NewDestinationRepository(pool *pgxpool.Pool) *DestinationRepository {
	return &DestinationRepository{q: pool}
}

// NewDestinationRepositoryWithQuerier constructs a DestinationRepository with a custom Querier (for tests).
func NewDestinationRepositoryWithQuerier(q Querier) *DestinationRepository {
	return &DestinationRepository{q: q}
}

// ListDestinations returns the destinations matching f, in id order unless f asks for rating order.
func (r *DestinationRepository) ListDestinations(ctx context.Context, f destination.Filter) ([]destination.Destination, error) {
	b := newSelect(destinationColumns, "destinations")
	if f.Category != "" {
		b.eq("category", f.Category)
	}
	if f.Country != "" {
		b.ilike("country", f.Country)
	}
	if f.Region != "" {
		b.eq("region", f.Region)
	}
	if f.Difficulty != "" {
		b.eq("difficulty_level", string(f.Difficulty))
	}
	if f.Season != "" {
		b.eq("best_season", f.Season)
	}
	if f.MinPrice != nil {
		b.gte("price", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.lte("price", *f.MaxPrice)
	}
	if f.Featured != nil {
		b.eq("featured", *f.Featured)
	}

	if f.Sort == destination.SortRating {
		b.order("rating DESC, id")
	} else {
		b.order("id")
	}

	sql, args := b.build()
	return r.queryDestinations(ctx, sql, args...)
}

// SearchDestinations matches query against name, country and description, ignoring case.
// A non-positive limit means destination.DefaultSearchLimit.
func (r *DestinationRepository) SearchDestinations(ctx context.Context, query string, limit int) ([]destination.Destination, error) {
	if limit <= 0 {
		limit = destination.DefaultSearchLimit
	}

	sql, args := newSelect(destinationColumns, "destinations").
		anyILike(searchColumns, query).
		order("id").
		limitTo(limit).
		build()

	return r.queryDestinations(ctx, sql, args...)
}

// GetDestination retrieves a destination by id.
// Returns nil, nil when the id is not found.
func (r *DestinationRepository) GetDestination(ctx context.Context, id int) (*destination.Destination, error) {
	// destinations.id is INTEGER; pgx refuses to encode anything wider.
	if id < math.MinInt32 || id > math.MaxInt32 {
		return nil, nil
	}

	sql, args := newSelect(destinationColumns, "destinations").eq("id", id).build()

	d, err := scanDestination(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying destination %d: %w", id, err)
	}

	return d, nil
}

// SeedDestinations inserts ds, leaving rows whose id already exists untouched.
func (r *DestinationRepository) SeedDestinations(ctx context.Context, ds []destination.Destination) error {
	const q = `
		INSERT INTO destinations (id, name, country, region, description, image_url, price, duration,
			rating, difficulty_level, best_season, highlights, category, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING
	`

	for _, d := range ds {
		highlights := d.Highlights
		if highlights == nil {
			highlights = []string{}
		}
		if _, err := r.q.Exec(ctx, q,
			d.ID, d.Name, d.Country, nullString(d.Region), d.Description, d.ImageURL, d.Price, d.Duration,
			d.Rating, nullString(string(d.Difficulty)), nullString(d.BestSeason), highlights,
			nullString(d.Category), d.Featured, d.CreatedAt,
		); err != nil {
			return fmt.Errorf("seeding destination %d: %w", d.ID, err)
		}
	}

	return nil
}

func (r *DestinationRepository) queryDestinations(ctx context.Context, sql string, args ...any) ([]destination.Destination, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying destinations: %w", err)
	}
	defer rows.Close()

	results := []destination.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning destination row: %w", err)
		}
		results = append(results, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating destination rows: %w", err)
	}

	return results, nil
}

// scanDestination reads one row selected with destinationColumns.
func scanDestination(row pgx.Row) (*destination.Destination, error) {
	var d destination.Destination
	var region, difficulty, season, category *string
	var createdAt time.Time

	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Country,
		&region,
		&d.Description,
		&d.ImageURL,
		&d.Price,
		&d.Duration,
		&d.Rating,
		&difficulty,
		&season,
		&d.Highlights,
		&category,
		&d.Featured,
		&createdAt,
	); err != nil {
		return nil, err
	}

	d.Region = deref(region)
	d.Difficulty = destination.Difficulty(deref(difficulty))
	d.BestSeason = deref(season)
	d.Category = deref(category)
	d.CreatedAt = createdAt.UTC()
	if len(d.Highlights) == 0 {
		d.Highlights = nil
	}

	return &d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullString maps "" to SQL NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
