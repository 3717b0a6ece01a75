package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"concierge/internal/adapters/httpx"
	"concierge/internal/domain"
)

const (
	DefaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
)

// Client implements domain.Geocoder and domain.Forecaster.
type Client struct {
	geocodeURL  string
	forecastURL string
	hc          *httpx.Client
}

func New(geocodeURL, forecastURL string, timeout time.Duration, rps float64) *Client {
	if geocodeURL == "" {
		geocodeURL = DefaultGeocodeURL
	}
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	return &Client{
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		hc:          httpx.New("openmeteo", httpx.Options{Timeout: timeout, RPS: rps, MaxAttempts: 2}),
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode resolves a free-form location. "Austin, TX" is retried as "Austin"
// since the search endpoint matches place names only.
func (c *Client) Geocode(ctx context.Context, location string) (domain.Coords, error) {
	names := []string{strings.TrimSpace(location)}
	if key := domain.CityKey(location); key != "" && key != names[0] {
		names = append(names, key)
	}
	for _, name := range names {
		q := url.Values{"name": {name}, "count": {"1"}, "format": {"json"}}
		var resp geocodeResponse
		if err := c.hc.GetJSON(ctx, c.geocodeURL+"?"+q.Encode(), nil, &resp); err != nil {
			return domain.Coords{}, fmt.Errorf("geocode %q: %w", location, err)
		}
		if len(resp.Results) > 0 {
			r := resp.Results[0]
			return domain.Coords{Lat: r.Latitude, Lon: r.Longitude}, nil
		}
	}
	return domain.Coords{}, fmt.Errorf("geocode %q: %w", location, domain.ErrNotFound)
}

type forecastResponse struct {
	Daily struct {
		Time       []string   `json:"time"`
		MaxTemp    []*float64 `json:"temperature_2m_max"`
		MinTemp    []*float64 `json:"temperature_2m_min"`
		PrecipProb []*float64 `json:"precipitation_probability_mean"`
	} `json:"daily"`
}

// Daily fetches the daily series for [start, end]. Days the provider has no
// value for (beyond its horizon) come back as null and are dropped.
func (c *Client) Daily(ctx context.Context, center domain.Coords, start, end time.Time) (domain.Forecast, error) {
	q := url.Values{
		"latitude":   {fmt.Sprintf("%g", center.Lat)},
		"longitude":  {fmt.Sprintf("%g", center.Lon)},
		"start_date": {start.Format(domain.DateLayout)},
		"end_date":   {end.Format(domain.DateLayout)},
		"daily":      {"temperature_2m_max,temperature_2m_min,precipitation_probability_mean"},
		"timezone":   {"auto"},
	}
	var resp forecastResponse
	if err := c.hc.GetJSON(ctx, c.forecastURL+"?"+q.Encode(), nil, &resp); err != nil {
		return domain.Forecast{}, fmt.Errorf("forecast: %w", err)
	}
	return domain.Forecast{
		MaxTempC:   present(resp.Daily.MaxTemp),
		MinTempC:   present(resp.Daily.MinTemp),
		PrecipProb: present(resp.Daily.PrecipProb),
	}, nil
}

func present(in []*float64) []float64 {
	var out []float64
	for _, v := range in {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
