package destination

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

// ErrCountryNotFound is returned when RestCountries has no entry for a country name.
var ErrCountryNotFound = errors.New("country not found")

// StatusError reports a non-200 answer from an upstream API.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d", e.Endpoint, e.Code)
}

// jsonAPI is a base URL plus the client used to query it.
type jsonAPI struct {
	baseURL string
	http    *http.Client
}

func newJSONAPI(baseURL string) jsonAPI {
	return jsonAPI{baseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: httpTimeout}}
}

// get requests baseURL+path with query and decodes the JSON body into dst.
// The endpoint in errors omits the query so API keys never reach the logs.
func (a jsonAPI) get(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := a.baseURL + path
	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}
	return nil
}

// ---- OpenWeatherMap ----

const owmDefaultURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherClient fetches current conditions from OpenWeatherMap in metric units.
type WeatherClient struct {
	api    jsonAPI
	apiKey string
}

// NewWeatherClient constructs a WeatherClient with the given API key.
func NewWeatherClient(apiKey string) *WeatherClient {
	return NewWeatherClientWithURL(owmDefaultURL, apiKey)
}

// NewWeatherClientWithURL constructs a WeatherClient pointing at a custom base URL (for tests).
func NewWeatherClientWithURL(baseURL, apiKey string) *WeatherClient {
	return &WeatherClient{api: newJSONAPI(baseURL), apiKey: apiKey}
}

type owmResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Fetch retrieves current weather for a free-form location such as "Khumbu,Nepal".
// Location falls back to the query when the API does not name the matched station.
func (c *WeatherClient) Fetch(ctx context.Context, location string) (*WeatherData, error) {
	q := url.Values{"q": {location}, "appid": {c.apiKey}, "units": {"metric"}}

	var raw owmResponse
	if err := c.api.get(ctx, "", q, &raw); err != nil {
		return nil, fmt.Errorf("fetching weather for %s: %w", location, err)
	}

	wd := &WeatherData{
		Location:    raw.Name,
		Temperature: raw.Main.Temp,
		FeelsLike:   raw.Main.FeelsLike,
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
	}
	if wd.Location == "" {
		wd.Location = location
	}
	if len(raw.Weather) > 0 {
		wd.Description = raw.Weather[0].Description
	}
	return wd, nil
}

// ---- RestCountries ----

const countriesDefaultURL = "https://restcountries.com/v3.1/name"

// countryFields limits the RestCountries payload to what CountryData carries.
const countryFields = "capital,region,timezones,languages,currencies"

// CountriesClient looks up travel facts for a country on RestCountries. No key is needed.
type CountriesClient struct {
	api jsonAPI
}

// NewCountriesClient constructs a CountriesClient.
func NewCountriesClient() *CountriesClient {
	return NewCountriesClientWithURL(countriesDefaultURL)
}

// NewCountriesClientWithURL constructs a CountriesClient pointing at a custom base URL (for tests).
func NewCountriesClientWithURL(baseURL string) *CountriesClient {
	return &CountriesClient{api: newJSONAPI(baseURL)}
}

type restCountry struct {
	Capital    []string          `json:"capital"`
	Region     string            `json:"region"`
	Timezones  []string          `json:"timezones"`
	Languages  map[string]string `json:"languages"`
	Currencies map[string]struct {
		Name string `json:"name"`
	} `json:"currencies"`
}

// Fetch retrieves facts for the country with exactly this name.
// Languages are sorted so equal upstream data yields equal JSON.
func (c *CountriesClient) Fetch(ctx context.Context, country string) (*CountryData, error) {
	q := url.Values{"fullText": {"true"}, "fields": {countryFields}}

	var raw []restCountry
	err := c.api.get(ctx, "/"+url.PathEscape(country), q, &raw)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrCountryNotFound, country)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching country %s: %w", country, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCountryNotFound, country)
	}

	rc := raw[0]
	cd := &CountryData{
		Currencies: make(map[string]string, len(rc.Currencies)),
		Languages:  make([]string, 0, len(rc.Languages)),
		Region:     rc.Region,
		Timezones:  rc.Timezones,
	}
	for code, cur := range rc.Currencies {
		cd.Currencies[code] = cur.Name
	}
	for _, lang := range rc.Languages {
		cd.Languages = append(cd.Languages, lang)
	}
	sort.Strings(cd.Languages)
	if len(rc.Capital) > 0 {
		cd.Capital = rc.Capital[0]
	}
	return cd, nil
}
