package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"concierge/internal/domain"
)

// SeedService loads curated candidates into the store and pre-warms caches.
type SeedService struct {
	store     domain.CandidateStore
	geocoder  domain.Geocoder
	selection *SelectionEngine
}

func NewSeedService(store domain.CandidateStore, g domain.Geocoder, sel *SelectionEngine) *SeedService {
	return &SeedService{store: store, geocoder: g, selection: sel}
}

// SeedCity inserts every candidate that is not stored yet and reports how many were new.
// Unlike plan write-back, an insert error here fails the city.
func (s *SeedService) SeedCity(ctx context.Context, location string, candidates ...[]domain.Candidate) (int, error) {
	inserted := 0
	for _, group := range candidates {
		for _, c := range group {
			c.Tags = domain.NormalizeTags(c.Tags)
			c.PriceTier = domain.NormalizeTier(string(c.PriceTier), domain.TierMid)
			ok, err := s.store.InsertIfAbsent(ctx, c, location)
			if err != nil {
				return inserted, fmt.Errorf("seed %q into %s: %w", c.Title, location, err)
			}
			if ok {
				inserted++
			}
		}
	}
	return inserted, nil
}

// WarmCity geocodes location and runs both selections so the geocode cache
// and the candidate store are populated before the first plan request.
func (s *SeedService) WarmCity(ctx context.Context, location string) (activities, restaurants int, err error) {
	if s.geocoder == nil || s.selection == nil {
		return 0, 0, fmt.Errorf("warm %s: %w", location, domain.ErrUnavailable)
	}
	center, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		return 0, 0, fmt.Errorf("warm %s: geocode: %w", location, err)
	}
	prefs := domain.Preferences{BudgetTier: domain.TierMid}
	activities = len(s.selection.SelectActivities(ctx, location, prefs, center))
	restaurants = len(s.selection.SelectRestaurants(ctx, location, prefs, center))
	log.Debug().Str("location", location).Int("activities", activities).Int("restaurants", restaurants).Msg("city warmed")
	return activities, restaurants, nil
}
