package api_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/wanderlust/internal/api"
	"github.com/neexbeast/wanderlust/internal/booking"
	"github.com/neexbeast/wanderlust/internal/cache"
	"github.com/neexbeast/wanderlust/internal/contact"
	"github.com/neexbeast/wanderlust/internal/destination"
	"github.com/neexbeast/wanderlust/internal/newsletter"
)

// newMemoryServer wires the in-memory backend the way main does without a database.
func newMemoryServer(t *testing.T, cfg api.RouterConfig) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	destinations := destination.NewMemoryRepository(destination.Seed(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	h := api.NewHandlers(api.Deps{
		Destinations:  destinations,
		Cache:         cache.Nop{},
		Fetcher:       okFetcher(),
		Bookings:      booking.NewService(destinations, booking.NewMemoryStore(), log),
		Subscriptions: newsletter.NewService(newsletter.NewMemoryStore(), log),
		Contact:       contact.NewInbox(log),
		Development:   cfg.Development,
	}, log)

	return api.NewRouter(h, cfg, log)
}

func destinationIDs(t *testing.T, raw json.RawMessage) []int {
	t.Helper()
	var ds []destination.Destination
	require.NoError(t, json.Unmarshal(raw, &ds))
	ids := make([]int, len(ds))
	for i, d := range ds {
		ids[i] = d.ID
	}
	return ids
}

func TestMemoryServer_ListAll(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, resp := serve(t, srv, http.MethodGet, "/api/destinations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, destinationIDs(t, resp.Data))
	assert.Equal(t, 10, *resp.Total)
}

func TestMemoryServer_FilterResultsSatisfyCriteria(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, resp := serve(t, srv, http.MethodGet, "/api/destinations?country=nep&maxPrice=1000", "")
	require.Equal(t, http.StatusOK, w.Code)

	var ds []destination.Destination
	require.NoError(t, json.Unmarshal(resp.Data, &ds))
	require.NotEmpty(t, ds)
	for _, d := range ds {
		assert.Equal(t, "Nepal", d.Country)
		assert.LessOrEqual(t, d.Price, 1000.0)
	}
	assert.Equal(t, []int{7, 8}, destinationIDs(t, resp.Data))
}

func TestMemoryServer_RatingOrder(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	_, resp := serve(t, srv, http.MethodGet, "/api/destinations?country=Nepal&sort=rating", "")
	assert.Equal(t, []int{5, 6, 8, 7}, destinationIDs(t, resp.Data))
}

func TestMemoryServer_NoMatchIsEmptyList(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, resp := serve(t, srv, http.MethodGet, "/api/destinations?category=space", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(resp.Data))
	assert.Equal(t, 0, *resp.Total)
}

func TestMemoryServer_Search(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, _ := serve(t, srv, http.MethodGet, "/api/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := serve(t, srv, http.MethodGet, "/api/search?q=bali", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{2, 10}, destinationIDs(t, resp.Data))

	_, resp = serve(t, srv, http.MethodGet, "/api/search?q=a&limit=2", "")
	assert.Len(t, destinationIDs(t, resp.Data), 2)
}

func TestMemoryServer_BookingLifecycle(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, resp := serve(t, srv, http.MethodPost, "/api/bookings",
		`{"destinationId":1,"customerInfo":{"name":"Ana"},"travelDates":{"start":"2025-06-01"},"guests":3}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var b booking.Booking
	require.NoError(t, json.Unmarshal(resp.Data, &b))
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, 1299.0*3, b.TotalPrice)
	assert.Equal(t, booking.StatusConfirmed, b.Status)
	assert.Regexp(t, `^WL\d+$`, b.Reference)

	w, resp = serve(t, srv, http.MethodGet, "/api/bookings/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got booking.Booking
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, b.Reference, got.Reference)

	w, _ = serve(t, srv, http.MethodGet, "/api/bookings/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemoryServer_BookingDefaultsAndErrors(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, resp := serve(t, srv, http.MethodPost, "/api/bookings",
		`{"destinationId":2,"customerInfo":{},"travelDates":{}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var b booking.Booking
	require.NoError(t, json.Unmarshal(resp.Data, &b))
	assert.Equal(t, booking.DefaultGuests, b.Guests)
	assert.Equal(t, 899.0*2, b.TotalPrice)

	w, resp = serve(t, srv, http.MethodPost, "/api/bookings", `{"destinationId":2,"customerInfo":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required booking information", resp.Message)

	w, resp = serve(t, srv, http.MethodPost, "/api/bookings",
		`{"destinationId":999,"customerInfo":{},"travelDates":{}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Destination not found", resp.Message)
}

func TestMemoryServer_BookingLooseInput(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, resp := serve(t, srv, http.MethodPost, "/api/bookings",
		`{"destinationId":"2","customerInfo":{"name":"Ana"},"travelDates":{},"guests":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var b booking.Booking
	require.NoError(t, json.Unmarshal(resp.Data, &b))
	assert.Equal(t, 2, b.DestinationID)

	w, _ = serve(t, srv, http.MethodPost, "/api/bookings",
		`{"destinationId":"abc","customerInfo":{},"travelDates":{}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = serve(t, srv, http.MethodPost, "/api/bookings",
		`{"destinationId":3000000000,"customerInfo":{},"travelDates":{}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = serve(t, srv, http.MethodGet, "/api/destinations/3000000000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, body := range []string{
		`{"destinationId":2,"customerInfo":"","travelDates":{}}`,
		`{"destinationId":2,"customerInfo":{},"travelDates":false}`,
		`{"destinationId":"","customerInfo":{},"travelDates":{}}`,
	} {
		w, resp = serve(t, srv, http.MethodPost, "/api/bookings", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Missing required booking information", resp.Message, body)
	}
}

func TestMemoryServer_ConcurrentBookingsGetDistinctIDs(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, resp := serve(t, srv, http.MethodPost, "/api/bookings",
				`{"destinationId":3,"customerInfo":{"name":"x"},"travelDates":{"start":"2025-01-01"}}`)
			if !assert.Equal(t, http.StatusCreated, w.Code) {
				return
			}
			var b booking.Booking
			if assert.NoError(t, json.Unmarshal(resp.Data, &b)) {
				ids <- b.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate booking id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestMemoryServer_Subscribe(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, _ := serve(t, srv, http.MethodPost, "/api/subscribe", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp := serve(t, srv, http.MethodPost, "/api/subscribe", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already subscribed", resp.Message)

	w, _ = serve(t, srv, http.MethodPost, "/api/subscribe", `{"email":"A@b.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code, "matching is case-sensitive")

	w, resp = serve(t, srv, http.MethodPost, "/api/subscribe", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Valid email address is required", resp.Message)
}

func TestMemoryServer_ConcurrentDuplicateSubscribe(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	const n = 20
	codes := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, _ := serve(t, srv, http.MethodPost, "/api/subscribe", `{"email":"race@b.com"}`)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	created := 0
	for code := range codes {
		if code == http.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 1, created)
}

func TestMemoryServer_Contact(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, _ := serve(t, srv, http.MethodPost, "/api/contact", `{"name":"Ana","email":"a@b.com","message":"Hello"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp := serve(t, srv, http.MethodPost, "/api/contact", `{"name":"Ana","email":"a@b.com","message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, email, and message are required", resp.Message)
}

func TestMemoryServer_UnknownAPIRoute(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{})

	w, resp := serve(t, srv, http.MethodGet, "/api/flights", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
}

func TestMemoryServer_StaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	srv := newMemoryServer(t, api.RouterConfig{StaticDir: dir})

	w, _ := serve(t, srv, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w, _ = serve(t, srv, http.MethodGet, "/destinations/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html>app</html>")

	w, _ = serve(t, srv, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "API paths never fall back to the front-end")
}

func TestMemoryServer_RateLimited(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{RateLimitPerMinute: 2})

	for i := 0; i < 2; i++ {
		w, _ := serve(t, srv, http.MethodGet, "/api/health", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, resp := serve(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, resp.Success)
}

func TestMemoryServer_CORS(t *testing.T) {
	srv := newMemoryServer(t, api.RouterConfig{AllowedOrigins: []string{"http://localhost:5173"}})

	w, _ := serve(t, srv, http.MethodGet, "/api/health", "", "Origin", "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w, _ = serve(t, srv, http.MethodGet, "/api/health", "", "Origin", "http://evil.test")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverer(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(fmt.Sprintf("boom %d", 42)) })

	for _, tc := range []struct {
		development bool
		detail      string
	}{
		{false, "Internal server error"},
		{true, "boom 42"},
	} {
		h := api.Recoverer(tc.development, log)(panicking)
		w, resp := serve(t, h, http.MethodGet, "/", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Something went wrong!", resp.Message)
		assert.Equal(t, tc.detail, resp.Error)
	}
}
