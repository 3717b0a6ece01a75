package app

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"concierge/internal/adapters/observability"
	"concierge/internal/domain"
)

type SelectionConfig struct {
	InitialRadiusKm float64
	MaxRadiusKm     float64
	MaxPOIs         int
	MaxRestaurants  int
}

func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{InitialRadiusKm: 5, MaxRadiusKm: 15, MaxPOIs: 40, MaxRestaurants: 40}
}

// minRadiusStepKm keeps the widening loop strictly increasing even from a zero radius.
const minRadiusStepKm = 1.5

// NextRadius grows r by half of itself, never by less than minRadiusStepKm.
func NextRadius(r float64) float64 {
	return r + math.Max(minRadiusStepKm, r*0.5)
}

// RadiusSchedule lists the radii the widening loop queries, in order.
func RadiusSchedule(initial, max float64) []float64 {
	if math.IsNaN(initial) || math.IsNaN(max) || math.IsInf(max, 0) {
		return nil
	}
	var out []float64
	for r := math.Max(initial, 0); r <= max; r = NextRadius(r) {
		out = append(out, r)
	}
	return out
}

// SelectionEngine resolves candidate pools store-first and falls back to the
// geo source with radius widening. Safe for concurrent use.
type SelectionEngine struct {
	store domain.CandidateStore
	geo   domain.GeoSource
	cfg   SelectionConfig
}

func NewSelectionEngine(store domain.CandidateStore, geo domain.GeoSource, cfg SelectionConfig) *SelectionEngine {
	return &SelectionEngine{store: store, geo: geo, cfg: cfg}
}

func (e *SelectionEngine) Config() SelectionConfig { return e.cfg }

// SelectActivities returns POIs for location that satisfy interests and mobility.
func (e *SelectionEngine) SelectActivities(ctx context.Context, location string, prefs domain.Preferences, center domain.Coords) []domain.Candidate {
	keep := func(c domain.Candidate) bool {
		return InterestMatch(c.Tags, prefs.Interests) &&
			MobilityOK(prefs.Mobility, c.WheelchairFriendly, c.DurationMinutes)
	}
	return e.selectKind(ctx, domain.KindActivity, location, prefs.BudgetTier, center, keep, e.cfg.MaxPOIs)
}

// SelectRestaurants returns restaurants for location. Diet is ranked later, never filtered here.
func (e *SelectionEngine) SelectRestaurants(ctx context.Context, location string, prefs domain.Preferences, center domain.Coords) []domain.Candidate {
	keep := func(domain.Candidate) bool { return true }
	return e.selectKind(ctx, domain.KindRestaurant, location, prefs.BudgetTier, center, keep, e.cfg.MaxRestaurants)
}

func (e *SelectionEngine) selectKind(
	ctx context.Context,
	kind domain.Kind,
	location string,
	tier domain.PriceTier,
	center domain.Coords,
	keep func(domain.Candidate) bool,
	limit int,
) []domain.Candidate {
	lg := log.With().Str("kind", string(kind)).Str("location", location).Logger()

	// 1) store first; a non-empty filtered result is final
	stored, err := e.store.Find(ctx, domain.CityKey(location), kind)
	if err != nil {
		lg.Warn().Err(err).Msg("candidate store lookup failed; falling back to geo source")
	}
	var out []domain.Candidate
	for _, c := range stored {
		if !keep(c) {
			continue
		}
		c.PriceTier = domain.NormalizeTier(string(c.PriceTier), tier)
		out = append(out, c)
	}
	if len(out) > 0 {
		observability.ObserveCandidateSource(string(kind), "store")
		lg.Debug().Int("count", len(out)).Msg("candidates served from store")
		return out
	}

	// 2) geo source with widening
	fetched, radius := e.widen(ctx, kind, center)
	for _, c := range fetched {
		if !keep(c) {
			continue
		}
		c.PriceTier = tier
		if !c.PriceTier.Valid() {
			c.PriceTier = domain.TierMid
		}
		out = append(out, c)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if len(out) == 0 {
		observability.ObserveCandidateSource(string(kind), "none")
		lg.Info().Msg("no candidates found in store or geo source")
		return nil
	}
	observability.ObserveCandidateSource(string(kind), "geo")
	lg.Info().Int("count", len(out)).Float64("radius_km", radius).Msg("candidates fetched from geo source")

	// 3) write back; failures never affect the result
	e.writeBack(ctx, kind, location, out)
	return out
}

// widen queries the geo source at growing radii until one yields mappable places.
func (e *SelectionEngine) widen(ctx context.Context, kind domain.Kind, center domain.Coords) ([]domain.Candidate, float64) {
	for _, r := range RadiusSchedule(e.cfg.InitialRadiusKm, e.cfg.MaxRadiusKm) {
		raw, err := e.geo.Query(ctx, center, r, kind)
		if err != nil {
			observability.ObserveGeoAttempt(string(kind), "error")
			log.Debug().Err(err).Str("kind", string(kind)).Float64("radius_km", r).Msg("geo query failed")
			continue
		}
		var mapped []domain.Candidate
		for _, p := range raw {
			if c, ok := mapPlace(kind, p); ok {
				mapped = append(mapped, c)
			}
		}
		if len(mapped) == 0 {
			observability.ObserveGeoAttempt(string(kind), "empty")
			continue
		}
		observability.ObserveGeoAttempt(string(kind), "hit")
		return dedupeByTitle(mapped), r
	}
	return nil, 0
}

func (e *SelectionEngine) writeBack(ctx context.Context, kind domain.Kind, location string, cs []domain.Candidate) {
	inserted := 0
	for _, c := range cs {
		ok, err := e.store.InsertIfAbsent(ctx, c, location)
		if err != nil {
			observability.ObserveWritebackFailure(string(kind))
			log.Warn().Err(err).Str("title", c.Title).Str("location", location).Msg("candidate write-back failed")
			continue
		}
		if ok {
			inserted++
		}
	}
	log.Debug().Str("kind", string(kind)).Int("inserted", inserted).Int("total", len(cs)).Msg("candidate write-back done")
}
