package destination

import (
	"sort"
	"strings"
)

// DefaultSearchLimit caps free-text search results when the caller gives no limit.
const DefaultSearchLimit = 10

// SortOrder selects the ordering of a filtered result set.
type SortOrder string

const (
	// SortNone keeps the source (insertion) order.
	SortNone SortOrder = ""
	// SortRating orders by rating descending; equal ratings keep source order.
	SortRating SortOrder = "rating"
)

// Filter holds optional criteria narrowing a destination query.
// Zero values mean "no constraint"; all supplied criteria must hold.
type Filter struct {
	Category   string
	Country    string
	Region     string
	Difficulty Difficulty
	Season     string
	MinPrice   *float64
	MaxPrice   *float64
	Featured   *bool
	Sort       SortOrder
}

// Matches reports whether d satisfies every criterion set on f.
// Country is a case-insensitive substring match; the other text criteria are exact.
func (f Filter) Matches(d Destination) bool {
	if f.Category != "" && d.Category != f.Category {
		return false
	}
	if f.Country != "" && !containsFold(d.Country, f.Country) {
		return false
	}
	if f.Region != "" && d.Region != f.Region {
		return false
	}
	if f.Difficulty != "" && d.Difficulty != f.Difficulty {
		return false
	}
	if f.Season != "" && d.BestSeason != f.Season {
		return false
	}
	if f.MinPrice != nil && d.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && d.Price > *f.MaxPrice {
		return false
	}
	if f.Featured != nil && d.Featured != *f.Featured {
		return false
	}
	return true
}

// Apply returns the members of ds matching f. The result is never nil.
func Apply(ds []Destination, f Filter) []Destination {
	out := make([]Destination, 0, len(ds))
	for _, d := range ds {
		if f.Matches(d) {
			out = append(out, d)
		}
	}

	if f.Sort == SortRating {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}

	return out
}

// Search returns destinations whose name, country or description contains query,
// ignoring case, truncated to limit. A non-positive limit means DefaultSearchLimit.
func Search(ds []Destination, query string, limit int) []Destination {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	out := make([]Destination, 0, min(limit, len(ds)))
	for _, d := range ds {
		if len(out) == limit {
			break
		}
		if containsFold(d.Name, query) || containsFold(d.Country, query) || containsFold(d.Description, query) {
			out = append(out, d)
		}
	}

	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
