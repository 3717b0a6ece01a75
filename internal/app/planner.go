package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"concierge/internal/adapters/observability"
	"concierge/internal/domain"
)

const (
	noteNoPOIs        = "No POIs found; try increasing RADIUS_KM."
	noteNoRestaurants = "No restaurants found; dietary tags on OSM are sparse."
	noteNoGeocode     = "Location could not be geocoded; nearby search used (0, 0)."
	noteAskIgnored    = "Free-text request could not be interpreted; stored preferences were used."
)

type PlanConfig struct {
	// Seed fixes the shuffle for every request when non-zero.
	Seed         int64
	MealMinutes  int
	EventMinutes int
	// MaxTripDays caps the booking length; <= 0 means domain.DefaultMaxTripDays.
	MaxTripDays int
}

// PlanDeps are the collaborators of PlanService. Events, Extractor and Runs are optional.
type PlanDeps struct {
	Selection  *SelectionEngine
	Assembler  *Assembler
	Geocoder   domain.Geocoder
	Forecaster domain.Forecaster
	Events     domain.EventSource
	Extractor  domain.PreferenceExtractor
	Runs       domain.PlanRunRepository
}

// StoredPlan is a persisted run together with its decoded output.
type StoredPlan struct {
	Run    domain.PlanRun
	Output PlanResponse
}

type PlanService struct {
	deps PlanDeps
	cfg  PlanConfig
	now  func() time.Time
}

func NewPlanService(deps PlanDeps, cfg PlanConfig) *PlanService {
	if cfg.MealMinutes <= 0 {
		cfg.MealMinutes = defaultMealMinutes
	}
	if cfg.EventMinutes <= 0 {
		cfg.EventMinutes = defaultEventMinutes
	}
	return &PlanService{deps: deps, cfg: cfg, now: time.Now}
}

func (s *PlanService) rng() *rand.Rand {
	seed := s.cfg.Seed
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// BuildPlan runs selection, ranking and assembly for one request.
// Only an invalid request or a failure during assembly is returned as an error.
func (s *PlanService) BuildPlan(ctx context.Context, req domain.TripRequest) (plan domain.Plan, err error) {
	began := s.now()
	if err := req.Booking.Validate(s.cfg.MaxTripDays); err != nil {
		observability.ObservePlan("invalid", s.now().Sub(began))
		return domain.Plan{}, err
	}
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		observability.ObservePlan(outcome, s.now().Sub(began))
	}()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("location", req.Booking.Location).Msg("plan assembly panicked")
			plan, err = domain.Plan{}, fmt.Errorf("assemble plan: %v", r)
		}
	}()

	b := req.Booking
	var notes []string

	prefs, askNote := s.resolvePreferences(ctx, req)
	if askNote != "" {
		notes = append(notes, askNote)
	}

	center, err := s.deps.Geocoder.Geocode(ctx, b.Location)
	if err != nil {
		log.Warn().Err(err).Str("location", b.Location).Msg("geocoding failed")
		center = domain.Coords{}
		notes = append(notes, noteNoGeocode)
	}

	forecast, err := s.deps.Forecaster.Daily(ctx, center, b.StartDate, b.EndDate)
	if err != nil {
		log.Warn().Err(err).Str("location", b.Location).Msg("forecast unavailable")
		forecast = domain.Forecast{}
	}

	pois := s.deps.Selection.SelectActivities(ctx, b.Location, prefs, center)
	restaurants := s.deps.Selection.SelectRestaurants(ctx, b.Location, prefs, center)
	restaurants = Truncate(RankByDiet(restaurants, prefs.Dietary), s.deps.Selection.Config().MaxRestaurants)

	events := s.events(ctx, b)

	pool := s.deps.Assembler.MergePool(
		pois,
		EventsAsActivities(events, b.Location, center, prefs.BudgetTier, s.cfg.EventMinutes),
		RestaurantsAsActivities(restaurants, s.cfg.MealMinutes),
	)
	itinerary := s.deps.Assembler.Assemble(s.rng(), b.Days(), pool)

	sel := s.deps.Selection.Config()
	notes = append([]string{fmt.Sprintf("Auto-fetched within %g–%gkm of %s (OSM).", sel.InitialRadiusKm, sel.MaxRadiusKm, b.Location)}, notes...)
	if len(pois) == 0 {
		notes = append(notes, noteNoPOIs)
	}
	if len(restaurants) == 0 {
		notes = append(notes, noteNoRestaurants)
	}
	if forecast.Empty() {
		notes = append(notes, weatherUnavailable)
	}

	log.Info().
		Str("location", b.Location).
		Int("days", len(itinerary)).
		Int("pois", len(pois)).
		Int("restaurants", len(restaurants)).
		Int("events", len(events)).
		Int("pool", len(pool)).
		Msg("plan built")

	return domain.Plan{
		Itinerary:        itinerary,
		Restaurants:      restaurants,
		PackingChecklist: PackingList(forecast, prefs.Mobility),
		WeatherSummary:   SummarizeWeather(forecast),
		Notes:            strings.Join(notes, " "),
	}, nil
}

func (s *PlanService) resolvePreferences(ctx context.Context, req domain.TripRequest) (domain.Preferences, string) {
	var override domain.PreferenceOverride
	note := ""
	if ask := strings.TrimSpace(req.Ask); ask != "" && s.deps.Extractor != nil {
		o, err := s.deps.Extractor.Parse(ctx, ask)
		switch {
		case errors.Is(err, domain.ErrUnavailable):
			log.Debug().Msg("preference extraction disabled")
		case err != nil:
			log.Warn().Err(err).Msg("preference extraction failed")
			note = noteAskIgnored
		default:
			override = o
		}
	}
	return req.Preferences.Apply(override), note
}

func (s *PlanService) events(ctx context.Context, b domain.Booking) []domain.Event {
	if s.deps.Events == nil {
		return nil
	}
	evs, err := s.deps.Events.Search(ctx, domain.CityKey(b.Location), b.StartDate, b.EndDate)
	if err != nil {
		log.Warn().Err(err).Str("location", b.Location).Msg("event search failed")
		return nil
	}
	return evs
}

// CreatePlan builds a plan and logs the run. A failed save is logged and
// leaves RunID empty; the plan is still returned.
func (s *PlanService) CreatePlan(ctx context.Context, req domain.TripRequest) (PlanEnvelope, error) {
	plan, err := s.BuildPlan(ctx, req)
	if err != nil {
		return PlanEnvelope{}, err
	}
	resp := NewPlanResponse(plan)
	env := PlanEnvelope{Output: resp}
	if s.deps.Runs == nil {
		return env, nil
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("encode plan result")
		return env, nil
	}
	run := domain.PlanRun{
		ID:             uuid.NewString(),
		Booking:        req.Booking,
		Preferences:    req.Preferences,
		UserQuery:      req.Ask,
		WeatherSummary: plan.WeatherSummary,
		ResultJSON:     raw,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.deps.Runs.SaveRun(ctx, run); err != nil {
		log.Error().Err(err).Str("run_id", run.ID).Msg("plan run not persisted")
		return env, nil
	}
	env.RunID = run.ID
	return env, nil
}

func (s *PlanService) GetPlan(ctx context.Context, id string) (StoredPlan, error) {
	if s.deps.Runs == nil {
		return StoredPlan{}, domain.ErrNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return StoredPlan{}, domain.ErrNotFound
	}
	run, err := s.deps.Runs.GetRun(ctx, id)
	if err != nil {
		return StoredPlan{}, err
	}
	var out PlanResponse
	if err := json.Unmarshal(run.ResultJSON, &out); err != nil {
		return StoredPlan{}, fmt.Errorf("decode run %s: %w", id, err)
	}
	return StoredPlan{Run: run, Output: out}, nil
}
