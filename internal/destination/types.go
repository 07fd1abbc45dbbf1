package destination

import "time"

// Difficulty is the trek/tour difficulty tier of a destination.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging:
		return true
	}
	return false
}

// Destination is a bookable travel product. Records are seeded once and never updated.
type Destination struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Country     string     `json:"country"`
	Region      string     `json:"region,omitempty"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Price       float64    `json:"price"`
	Duration    string     `json:"duration"`
	Rating      float64    `json:"rating"`
	Difficulty  Difficulty `json:"difficulty_level,omitempty"`
	BestSeason  string     `json:"best_season,omitempty"`
	Highlights  []string   `json:"highlights,omitempty"`
	Category    string     `json:"category,omitempty"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WeatherData holds current weather conditions at a destination.
type WeatherData struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
}

// CountryData holds country-level travel information.
type CountryData struct {
	Currencies map[string]string `json:"currencies"`
	Languages  []string          `json:"languages"`
	Region     string            `json:"region"`
	Capital    string            `json:"capital"`
	Timezones  []string          `json:"timezones,omitempty"`
}

// Insights is the aggregated live data shown next to a destination.
type Insights struct {
	DestinationID int          `json:"destination_id"`
	Weather       *WeatherData `json:"weather,omitempty"`
	Country       *CountryData `json:"country,omitempty"`
	// Unavailable names the sources that failed for this fetch.
	Unavailable []string  `json:"unavailable,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}
