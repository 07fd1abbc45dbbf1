package api

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"
)

// RouterConfig holds the router's non-handler settings.
type RouterConfig struct {
	// AdminToken guards the insights refresh route. Empty leaves the route unmounted.
	AdminToken string
	// RateLimitPerMinute is the per-IP request budget. Zero disables limiting.
	RateLimitPerMinute int
	AllowedOrigins     []string
	// StaticDir is served for non-API paths, falling back to index.html. Empty disables it.
	StaticDir   string
	Development bool
	// Checks are pinged by the health endpoint, keyed by dependency name.
	Checks map[string]Pinger
}

// NewRouter builds the HTTP handler with all routes configured.
// Every route is public except the insights refresh, which requires bearer auth.
func NewRouter(h *Handlers, cfg RouterConfig, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(cfg.Development, log))
	if cfg.RateLimitPerMinute > 0 {
		r.Use(httprate.Limit(cfg.RateLimitPerMinute, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusTooManyRequests, "Too many requests")
			}),
		))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HealthHandlerFunc(cfg.Checks, log))

		r.Get("/destinations", h.ListDestinations)
		r.Get("/destinations/{id}", h.GetDestination)
		r.Get("/destinations/{id}/insights", h.GetInsights)
		if cfg.AdminToken != "" {
			r.With(BearerAuth(cfg.AdminToken)).Post("/destinations/{id}/insights/refresh", h.RefreshInsights)
		}
		r.Get("/search", h.SearchDestinations)

		r.Post("/bookings", h.CreateBooking)
		r.Get("/bookings/{id}", h.GetBooking)

		r.Post("/subscribe", h.Subscribe)
		r.Post("/contact", h.Contact)

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "Route not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		})
	})

	if cfg.StaticDir != "" {
		r.NotFound(spaHandler(cfg.StaticDir))
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}

// spaHandler serves files from dir and answers every other path with dir/index.html.
func spaHandler(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		p := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
