package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/neexbeast/wanderlust/internal/destination"
)

const (
	msgDestinationNotFound = "Destination not found"
	msgSearchQueryRequired = "Search query is required"
)

// filterFromQuery reads destination criteria from query parameters.
// Malformed numeric or boolean values are ignored.
func filterFromQuery(q url.Values) destination.Filter {
	f := destination.Filter{
		Category:   q.Get("category"),
		Country:    q.Get("country"),
		Region:     q.Get("region"),
		Difficulty: destination.Difficulty(q.Get("difficulty")),
		Season:     q.Get("season"),
		MinPrice:   floatParam(q.Get("minPrice")),
		MaxPrice:   floatParam(q.Get("maxPrice")),
	}
	if v, err := strconv.ParseBool(q.Get("featured")); err == nil {
		f.Featured = &v
	}
	if destination.SortOrder(q.Get("sort")) == destination.SortRating {
		f.Sort = destination.SortRating
	}
	return f
}

func floatParam(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ListDestinations handles GET /api/destinations.
func (h *Handlers) ListDestinations(w http.ResponseWriter, r *http.Request) {
	ds, err := h.destinations.ListDestinations(r.Context(), filterFromQuery(r.URL.Query()))
	if err != nil {
		h.internalError(w, r, "listing destinations failed", err)
		return
	}
	writeList(w, ds)
}

// GetDestination handles GET /api/destinations/{id}.
func (h *Handlers) GetDestination(w http.ResponseWriter, r *http.Request) {
	d, ok := h.lookupDestination(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, d, "")
}

// SearchDestinations handles GET /api/search?q=&limit=.
func (h *Handlers) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	// Blank queries are rejected but the query is matched as sent.
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, msgSearchQueryRequired)
		return
	}

	// Unparseable limits fall back to the repository default.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ds, err := h.destinations.SearchDestinations(r.Context(), q, limit)
	if err != nil {
		h.internalError(w, r, "searching destinations failed", err)
		return
	}
	writeList(w, ds)
}

// GetInsights handles GET /api/destinations/{id}/insights.
// Cache hit → return. Otherwise fetch live data, cache it and return.
func (h *Handlers) GetInsights(w http.ResponseWriter, r *http.Request) {
	d, ok := h.lookupDestination(w, r)
	if !ok {
		return
	}

	cached, err := h.cache.Get(r.Context(), d.ID)
	if err != nil {
		h.log.Error("cache get failed", "destination_id", d.ID, "err", err)
	}
	if cached != nil {
		writeData(w, http.StatusOK, cached, "")
		return
	}

	data, err := h.fetcher.FetchAll(r.Context(), *d)
	if err != nil {
		h.internalError(w, r, "fetching insights failed", err)
		return
	}

	if err := h.cache.Set(r.Context(), d.ID, data); err != nil {
		h.log.Warn("cache set failed after fetch", "destination_id", d.ID, "err", err)
	}

	writeData(w, http.StatusOK, data, "")
}

// RefreshInsights handles POST /api/destinations/{id}/insights/refresh.
// Fetches fresh data, then invalidates and repopulates the cache.
func (h *Handlers) RefreshInsights(w http.ResponseWriter, r *http.Request) {
	d, ok := h.lookupDestination(w, r)
	if !ok {
		return
	}

	data, err := h.fetcher.FetchAll(r.Context(), *d)
	if err != nil {
		h.internalError(w, r, "fetching insights failed", err)
		return
	}

	if err := h.cache.Delete(r.Context(), d.ID); err != nil {
		h.log.Warn("cache delete failed", "destination_id", d.ID, "err", err)
	}
	if err := h.cache.Set(r.Context(), d.ID, data); err != nil {
		h.log.Warn("cache set failed after refresh", "destination_id", d.ID, "err", err)
	}

	writeData(w, http.StatusOK, data, "")
}

// lookupDestination resolves {id}, writing a 404 or 500 response when it cannot.
func (h *Handlers) lookupDestination(w http.ResponseWriter, r *http.Request) (*destination.Destination, bool) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgDestinationNotFound)
		return nil, false
	}

	d, err := h.destinations.GetDestination(r.Context(), id)
	if err != nil {
		h.internalError(w, r, "db get failed", err)
		return nil, false
	}
	if d == nil {
		writeError(w, http.StatusNotFound, msgDestinationNotFound)
		return nil, false
	}
	return d, true
}
