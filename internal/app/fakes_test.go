package app_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"concierge/internal/domain"
)

// ---- fakes ----

type storedCandidate struct {
	city string
	c    domain.Candidate
}

type fakeStore struct {
	mu        sync.Mutex
	rows      []storedCandidate
	findErr   error
	insertErr error
	finds     int
	inserts   int
}

func (s *fakeStore) Find(ctx context.Context, city string, kind domain.Kind) ([]domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []domain.Candidate
	for _, r := range s.rows {
		if r.c.Kind == kind && strings.Contains(strings.ToLower(r.city), strings.ToLower(city)) {
			out = append(out, r.c)
		}
	}
	return out, nil
}

func (s *fakeStore) InsertIfAbsent(ctx context.Context, c domain.Candidate, city string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	if s.insertErr != nil {
		return false, s.insertErr
	}
	for _, r := range s.rows {
		if r.c.Kind == c.Kind && r.c.Title == c.Title && r.city == city {
			return false, nil
		}
	}
	s.rows = append(s.rows, storedCandidate{city: city, c: c})
	return true, nil
}

func (s *fakeStore) seed(city string, cs ...domain.Candidate) *fakeStore {
	for _, c := range cs {
		s.rows = append(s.rows, storedCandidate{city: city, c: c})
	}
	return s
}

type fakeGeo struct {
	radii []float64
	// respond returns the places for a query; nil means nothing found.
	respond func(radiusKm float64, kind domain.Kind) ([]domain.RawPlace, error)
}

func (g *fakeGeo) Query(ctx context.Context, center domain.Coords, radiusKm float64, kind domain.Kind) ([]domain.RawPlace, error) {
	g.radii = append(g.radii, radiusKm)
	if g.respond == nil {
		return nil, nil
	}
	return g.respond(radiusKm, kind)
}

type fakeGeocoder struct {
	coords domain.Coords
	err    error
	calls  int
}

func (g *fakeGeocoder) Geocode(ctx context.Context, location string) (domain.Coords, error) {
	g.calls++
	return g.coords, g.err
}

type fakeForecaster struct {
	f     domain.Forecast
	err   error
	calls int
}

func (f *fakeForecaster) Daily(ctx context.Context, c domain.Coords, start, end time.Time) (domain.Forecast, error) {
	f.calls++
	return f.f, f.err
}

type fakeEvents struct {
	events []domain.Event
	err    error
}

func (e *fakeEvents) Search(ctx context.Context, city string, start, end time.Time) ([]domain.Event, error) {
	return e.events, e.err
}

type fakeExtractor struct {
	o   domain.PreferenceOverride
	err error
}

func (x *fakeExtractor) Parse(ctx context.Context, text string) (domain.PreferenceOverride, error) {
	return x.o, x.err
}

type fakeRuns struct {
	runs map[string]domain.PlanRun
	err  error
}

func (r *fakeRuns) SaveRun(ctx context.Context, run domain.PlanRun) error {
	if r.err != nil {
		return r.err
	}
	if r.runs == nil {
		r.runs = map[string]domain.PlanRun{}
	}
	r.runs[run.ID] = run
	return nil
}

func (r *fakeRuns) GetRun(ctx context.Context, id string) (domain.PlanRun, error) {
	run, ok := r.runs[id]
	if !ok {
		return domain.PlanRun{}, domain.ErrNotFound
	}
	return run, nil
}

type fakeCache struct {
	store map[string]any
	gets  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets++
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Coords:
		*d = v.(domain.Coords)
	case *domain.Forecast:
		*d = v.(domain.Forecast)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

var errBoom = errors.New("boom")

// ---- builders ----

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }

func osmNode(name string, tags map[string]string) domain.RawPlace {
	all := map[string]string{"name": name}
	for k, v := range tags {
		all[k] = v
	}
	return domain.RawPlace{Type: "node", Lat: fptr(37.77), Lon: fptr(-122.42), Tags: all}
}

func poi(title string, wheelchair bool, minutes int, tags ...string) domain.Candidate {
	return domain.Candidate{
		Kind: domain.KindActivity, Title: title, PriceTier: "$$", Tags: tags,
		DurationMinutes: minutes, WheelchairFriendly: wheelchair, ChildFriendly: true,
	}
}
