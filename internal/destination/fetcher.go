package destination

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Insight source names, as reported in Insights.Unavailable.
const (
	SourceWeather = "weather"
	SourceCountry = "country"
)

type weatherFetcher interface {
	Fetch(ctx context.Context, location string) (*WeatherData, error)
}

type countriesFetcher interface {
	Fetch(ctx context.Context, country string) (*CountryData, error)
}

// Fetcher gathers live insights for a destination from the external APIs concurrently.
type Fetcher struct {
	weather   weatherFetcher
	countries countriesFetcher
	log       *slog.Logger
	now       func() time.Time
}

// NewFetcher builds a Fetcher against the production APIs.
// An empty weatherKey disables the weather lookup.
func NewFetcher(weatherKey string) *Fetcher {
	var w weatherFetcher
	if weatherKey != "" {
		w = NewWeatherClient(weatherKey)
	}
	return NewFetcherWithClients(w, NewCountriesClient())
}

// NewFetcherWithClients builds a Fetcher over the given clients. A nil weather
// client disables the weather lookup.
func NewFetcherWithClients(w weatherFetcher, c countriesFetcher) *Fetcher {
	return &Fetcher{weather: w, countries: c, log: slog.Default(), now: time.Now}
}

// WithLogger sets the logger used for lookup failures and returns f.
func (f *Fetcher) WithLogger(log *slog.Logger) *Fetcher {
	f.log = log
	return f
}

// WeatherLocation is the query used for a destination's weather: region qualified
// by country when a region is known, else the country alone.
func WeatherLocation(d Destination) string {
	if d.Region != "" {
		return d.Region + "," + d.Country
	}
	return d.Country
}

// FetchAll runs every configured lookup for d in parallel. A failed lookup
// leaves its field nil and is listed in Unavailable; only a panic is an error.
func (f *Fetcher) FetchAll(ctx context.Context, d Destination) (*Insights, error) {
	g, gCtx := errgroup.WithContext(ctx)
	in := &Insights{DestinationID: d.ID}

	var mu sync.Mutex
	failed := func(source string) {
		mu.Lock()
		in.Unavailable = append(in.Unavailable, source)
		mu.Unlock()
	}

	log := f.log.With("destination_id", d.ID)
	if f.weather != nil {
		location := WeatherLocation(d)
		lookup(gCtx, g, log.With("location", location), SourceWeather, failed, &in.Weather,
			func(ctx context.Context) (*WeatherData, error) { return f.weather.Fetch(ctx, location) })
	}
	lookup(gCtx, g, log.With("country", d.Country), SourceCountry, failed, &in.Country,
		func(ctx context.Context) (*CountryData, error) { return f.countries.Fetch(ctx, d.Country) })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching insights for destination %d: %w", d.ID, err)
	}

	sort.Strings(in.Unavailable)
	in.FetchedAt = f.now().UTC()
	return in, nil
}

// lookup schedules fn on g and stores its result in dst. Errors are logged and
// reported through failed; a panic becomes the group's error.
func lookup[T any](ctx context.Context, g *errgroup.Group, log *slog.Logger, source string,
	failed func(string), dst **T, fn func(context.Context) (*T, error)) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("insight lookup panicked", "source", source, "recover", r)
				err = fmt.Errorf("%s lookup panicked: %v", source, r)
			}
		}()

		v, fetchErr := fn(ctx)
		if fetchErr != nil {
			log.Warn("insight lookup failed", "source", source, "err", fetchErr)
			failed(source)
			return nil
		}
		*dst = v
		return nil
	})
}
