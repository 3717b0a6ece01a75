package overpass

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"concierge/internal/adapters/httpx"
	"concierge/internal/adapters/observability"
	"concierge/internal/domain"
)

var ErrNoMirror = errors.New("overpass: no mirror configured")

type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *domain.Coords    `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type response struct {
	Elements []element `json:"elements"`
}

type mirror struct {
	url string
	cb  *gobreaker.CircuitBreaker[[]domain.RawPlace]
}

// Source implements domain.GeoSource over one or more Overpass mirrors.
// Mirrors are tried in order; the first successful non-empty answer wins.
type Source struct {
	mirrors []mirror
	hc      *httpx.Client
	timeout time.Duration
}

type Options struct {
	Timeout time.Duration // per mirror call
	RPS     float64
	// consecutive failures that open a mirror's breaker
	TripAfter uint32
	// how long an open breaker rejects calls before probing again
	Cooldown time.Duration
}

func New(mirrors []string, o Options) (*Source, error) {
	if len(mirrors) == 0 {
		return nil, ErrNoMirror
	}
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	if o.TripAfter == 0 {
		o.TripAfter = 3
	}
	if o.Cooldown <= 0 {
		o.Cooldown = time.Minute
	}
	s := &Source{
		hc:      httpx.New("overpass", httpx.Options{Timeout: o.Timeout, RPS: o.RPS, MaxAttempts: 2}),
		timeout: o.Timeout,
	}
	for _, m := range mirrors {
		s.mirrors = append(s.mirrors, mirror{url: m, cb: newBreaker(breakerName(m), o)})
	}
	return s, nil
}

func breakerName(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return "overpass:" + u.Host
	}
	return "overpass:" + raw
}

func newBreaker(name string, o Options) *gobreaker.CircuitBreaker[[]domain.RawPlace] {
	observability.SetBreakerState(name, 0)
	return gobreaker.NewCircuitBreaker[[]domain.RawPlace](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     o.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= o.TripAfter
		},
		// caller cancellation says nothing about the mirror's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			observability.SetBreakerState(name, float64(to))
		},
	})
}

func (s *Source) Query(ctx context.Context, center domain.Coords, radiusKm float64, kind domain.Kind) ([]domain.RawPlace, error) {
	form := url.Values{"data": {BuildQuery(center, radiusKm, FiltersFor(kind))}}

	var lastErr error
	for _, m := range s.mirrors {
		places, err := m.cb.Execute(func() ([]domain.RawPlace, error) {
			return s.post(ctx, m.url, form)
		})
		if err != nil {
			log.Debug().Err(err).Str("mirror", m.url).Float64("radius_km", radiusKm).Msg("overpass mirror failed")
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if len(places) > 0 {
			return places, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("overpass: all mirrors failed: %w", lastErr)
	}
	return nil, nil
}

func (s *Source) post(ctx context.Context, endpoint string, form url.Values) ([]domain.RawPlace, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var resp response
	if err := s.hc.PostForm(ctx, endpoint, form, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.RawPlace, 0, len(resp.Elements))
	for _, e := range resp.Elements {
		out = append(out, domain.RawPlace{
			ID: e.ID, Type: e.Type, Lat: e.Lat, Lon: e.Lon, Center: e.Center, Tags: e.Tags,
		})
	}
	return out, nil
}
