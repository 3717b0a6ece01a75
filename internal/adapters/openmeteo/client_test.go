package openmeteo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concierge/internal/adapters/openmeteo"
	"concierge/internal/domain"
)

func TestGeocode_FallsBackToCityName(t *testing.T) {
	var names []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		names = append(names, name)
		if r.URL.Query().Get("count") != "1" {
			t.Errorf("count not set: %s", r.URL.RawQuery)
		}
		if name == "Austin" {
			_, _ = w.Write([]byte(`{"results":[{"name":"Austin","latitude":30.27,"longitude":-97.74}]}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := openmeteo.New(ts.URL, ts.URL, time.Second, 0)
	got, err := c.Geocode(context.Background(), "Austin, TX")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if got.Lat != 30.27 || got.Lon != -97.74 {
		t.Fatalf("unexpected coords: %+v", got)
	}
	if len(names) != 2 || names[0] != "Austin, TX" {
		t.Fatalf("unexpected lookups: %v", names)
	}
}

func TestGeocode_NoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer ts.Close()

	_, err := openmeteo.New(ts.URL, ts.URL, time.Second, 0).Geocode(context.Background(), "Atlantis")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDaily_ParsesSeriesAndDropsNulls(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "2025-07-01" || q.Get("end_date") != "2025-07-03" || q.Get("timezone") != "auto" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"daily":{
			"time":["2025-07-01","2025-07-02","2025-07-03"],
			"temperature_2m_max":[25.1,27.3,null],
			"temperature_2m_min":[14.0,15.2,null],
			"precipitation_probability_mean":[10,55,null]}}`))
	}))
	defer ts.Close()

	c := openmeteo.New(ts.URL, ts.URL, time.Second, 0)
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	f, err := c.Daily(context.Background(), domain.Coords{Lat: 1, Lon: 2}, start, start.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if len(f.MaxTempC) != 2 || f.MaxTempC[1] != 27.3 || len(f.PrecipProb) != 2 || f.Empty() {
		t.Fatalf("unexpected forecast: %+v", f)
	}
}

func TestDaily_ServerErrorIsReturned(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":true,"reason":"out of range"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := openmeteo.New(ts.URL, ts.URL, time.Second, 0).Daily(context.Background(), domain.Coords{}, time.Now(), time.Now())
	if err == nil {
		t.Fatalf("expected error")
	}
}
