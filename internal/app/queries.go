package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"concierge/internal/domain"
)

// LookupService memoizes geocoding and forecast calls in the shared cache.
// It implements domain.Geocoder and domain.Forecaster.
type LookupService struct {
	geocoder   domain.Geocoder
	forecaster domain.Forecaster
	cache      domain.Cache
	cacheTTL   time.Duration
}

func NewLookupService(g domain.Geocoder, f domain.Forecaster, c domain.Cache, ttl time.Duration) *LookupService {
	return &LookupService{geocoder: g, forecaster: f, cache: c, cacheTTL: ttl}
}

func (s *LookupService) Geocode(ctx context.Context, location string) (domain.Coords, error) {
	key := "geo:" + strings.ToLower(strings.TrimSpace(location))
	var c domain.Coords
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &c); ok {
			return c, nil
		}
	}
	c, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		return domain.Coords{}, err
	}
	if s.cache != nil {
		// coordinates of a city do not change; keep them for a day at least
		_ = s.cache.Set(ctx, key, c, int(maxDuration(s.cacheTTL, 24*time.Hour).Seconds()))
	}
	return c, nil
}

func (s *LookupService) Daily(ctx context.Context, center domain.Coords, start, end time.Time) (domain.Forecast, error) {
	key := fmt.Sprintf("wx:%.3f:%.3f:%s:%s", center.Lat, center.Lon,
		start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	var f domain.Forecast
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &f); ok {
			return f, nil
		}
	}
	f, err := s.forecaster.Daily(ctx, center, start, end)
	if err != nil {
		return domain.Forecast{}, err
	}
	// empty forecasts are not cached so a recovered provider is picked up
	if s.cache != nil && !f.Empty() {
		_ = s.cache.Set(ctx, key, f, int(s.cacheTTL.Seconds()))
	}
	return f, nil
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
