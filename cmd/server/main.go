package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/wanderlust/internal/api"
	"github.com/neexbeast/wanderlust/internal/booking"
	"github.com/neexbeast/wanderlust/internal/cache"
	"github.com/neexbeast/wanderlust/internal/config"
	"github.com/neexbeast/wanderlust/internal/contact"
	"github.com/neexbeast/wanderlust/internal/destination"
	"github.com/neexbeast/wanderlust/internal/newsletter"
	"github.com/neexbeast/wanderlust/internal/queue"
	"github.com/neexbeast/wanderlust/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

// backend is the set of stores behind the API, either in-memory or PostgreSQL.
type backend struct {
	destinations api.DestinationRepo
	bookings     booking.Store
	subscribers  newsletter.Store
	checks       map[string]api.Pinger
	close        func()
}

func run(log *slog.Logger) error {
	cfg := config.Load()
	ctx := context.Background()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	// Redis is optional; without it insights are fetched on every request.
	var insightsCache api.DestinationCache = cache.Nop{}
	if cfg.RedisURL != "" {
		redisClient, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		insightsCache = cache.NewCache(redisClient,
			cache.WithTTL(cfg.InsightsTTL),
			cache.WithNamespace(cfg.CacheNamespace),
		)
		be.checks["redis"] = &redisPingerAdapter{client: redisClient}
	}

	var bookingOpts []booking.Option
	if cfg.AMQPURL != "" {
		publisher, err := queue.Dial(cfg.AMQPURL)
		if err != nil {
			return fmt.Errorf("connecting to rabbitmq: %w", err)
		}
		defer func() { _ = publisher.Close() }()

		bookingOpts = append(bookingOpts, booking.WithNotifier(publisher))
		be.checks["rabbitmq"] = publisher
		log.Info("publishing booking events", "queue", queue.BookingConfirmedQueue)
	}

	if cfg.WeatherAPIKey == "" {
		log.Warn("OWM_API_KEY not set; weather insights disabled")
	}

	// Wire dependencies.
	handlers := api.NewHandlers(api.Deps{
		Destinations:  be.destinations,
		Cache:         insightsCache,
		Fetcher:       destination.NewFetcher(cfg.WeatherAPIKey).WithLogger(log),
		Bookings:      booking.NewService(be.destinations, be.bookings, log, bookingOpts...),
		Subscriptions: newsletter.NewService(be.subscribers, log),
		Contact:       contact.NewInbox(log),
		Development:   cfg.IsDevelopment(),
	}, log)

	router := api.NewRouter(handlers, api.RouterConfig{
		AdminToken:         cfg.AdminToken,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		StaticDir:          cfg.Server.StaticDir,
		Development:        cfg.IsDevelopment(),
		Checks:             be.checks,
	}, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Server.Port, "env", cfg.Env, "database", cfg.UsesDatabase())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// openBackend connects to PostgreSQL when DATABASE_URL is set and falls back to
// in-memory stores seeded with the built-in catalogue otherwise.
func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
	seed := destination.Seed(time.Now().UTC())

	if !cfg.UsesDatabase() {
		log.Warn("DATABASE_URL not set; using in-memory stores")
		return &backend{
			destinations: destination.NewMemoryRepository(seed),
			bookings:     booking.NewMemoryStore(),
			subscribers:  newsletter.NewMemoryStore(),
			checks:       map[string]api.Pinger{},
			close:        func() {},
		}, nil
	}

	pool, err := storage.Connect(ctx, cfg.Database.URL, storage.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		ApplicationName: "wanderlust",
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	applied, err := storage.RunMigrations(ctx, pool, cfg.Database.MigrationsDir)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	log.Info("migrations applied", "count", applied, "dir", cfg.Database.MigrationsDir)

	destinations := storage.NewDestinationRepository(pool)
	if cfg.Database.Seed {
		if err := destinations.SeedDestinations(ctx, seed); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seeding destinations: %w", err)
		}
		log.Info("destination catalogue seeded", "count", len(seed))
	}

	return &backend{
		destinations: destinations,
		bookings:     storage.NewBookingStore(pool),
		subscribers:  storage.NewSubscriberStore(pool),
		checks:       map[string]api.Pinger{"db": pool},
		close:        pool.Close,
	}, nil
}

// redisPingerAdapter adapts redis.Client to api.Pinger.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
