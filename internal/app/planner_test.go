package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"concierge/internal/app"
	"concierge/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type planFixture struct {
	store *fakeStore
	geo   *fakeGeo
	fc    *fakeForecaster
	ev    *fakeEvents
	x     *fakeExtractor
	runs  *fakeRuns
}

func newFixture() *planFixture {
	return &planFixture{
		store: &fakeStore{},
		geo:   &fakeGeo{},
		fc:    &fakeForecaster{},
		ev:    &fakeEvents{},
		x:     &fakeExtractor{},
		runs:  &fakeRuns{},
	}
}

func (f *planFixture) service(seed int64) *app.PlanService {
	return app.NewPlanService(app.PlanDeps{
		Selection:  app.NewSelectionEngine(f.store, f.geo, app.DefaultSelectionConfig()),
		Assembler:  app.NewAssembler(app.DefaultAssemblerConfig()),
		Geocoder:   &fakeGeocoder{coords: sf},
		Forecaster: f.fc,
		Events:     f.ev,
		Extractor:  f.x,
		Runs:       f.runs,
	}, app.PlanConfig{Seed: seed})
}

func trip(location, start, end string) domain.TripRequest {
	return domain.TripRequest{
		Booking: domain.Booking{
			StartDate: date(start), EndDate: date(end),
			Location: location, PartyType: domain.PartyCouple,
		},
		Preferences: domain.Preferences{BudgetTier: "$$"},
	}
}

func TestBuildPlan_EmptyPoolStillHasEveryDay(t *testing.T) {
	f := newFixture()
	plan, err := f.service(1).BuildPlan(context.Background(), trip("Nowhere, ZZ", "2025-07-01", "2025-07-04"))
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(plan.Itinerary) != 4 {
		t.Fatalf("expected 4 days, got %d", len(plan.Itinerary))
	}
	for _, d := range plan.Itinerary {
		if d.Blocks.Len() != 0 {
			t.Fatalf("expected empty blocks on %s", d.Date)
		}
	}
	for _, want := range []string{"No POIs found", "No restaurants found", "Weather data unavailable.", "Auto-fetched within 5–15km of Nowhere, ZZ (OSM)."} {
		if !strings.Contains(plan.Notes, want) {
			t.Fatalf("notes %q missing %q", plan.Notes, want)
		}
	}
	if plan.WeatherSummary != "Weather data unavailable." {
		t.Fatalf("weather summary: %q", plan.WeatherSummary)
	}
}

func TestBuildPlan_InvalidRange(t *testing.T) {
	f := newFixture()
	_, err := f.service(1).BuildPlan(context.Background(), trip("Boston", "2025-07-05", "2025-07-01"))
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if len(f.geo.radii) != 0 || f.store.finds != 0 {
		t.Fatalf("invalid request must not reach selection")
	}
}

func TestBuildPlan_TripTooLong(t *testing.T) {
	f := newFixture()
	_, err := f.service(1).BuildPlan(context.Background(), trip("Boston", "1000-01-01", "9999-12-31"))
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if f.fc.calls != 0 || f.store.finds != 0 {
		t.Fatalf("oversized trip must be rejected before any lookup")
	}
}

func TestBuildPlan_PoolMixesPOIsEventsAndRestaurants(t *testing.T) {
	f := newFixture()
	f.store.seed("Chicago, IL",
		poi("Art Institute", true, 120, "museum"),
		domain.Candidate{Kind: domain.KindRestaurant, Title: "Green Plate", PriceTier: "$", Tags: []string{"vegan"}},
		domain.Candidate{Kind: domain.KindRestaurant, Title: "Steak House", PriceTier: "$$$", Tags: []string{"steak", "grill"}},
	)
	f.ev.events = []domain.Event{{Name: "Jazz Night"}}
	f.fc.f = domain.Forecast{MaxTempC: []float64{24, 26}, MinTempC: []float64{15, 16}, PrecipProb: []float64{0, 10}}

	req := trip("Chicago, IL", "2025-07-01", "2025-07-02")
	req.Preferences.Dietary = "vegan"
	plan, err := f.service(7).BuildPlan(context.Background(), req)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	if len(plan.Restaurants) != 2 || plan.Restaurants[0].Title != "Green Plate" {
		t.Fatalf("expected diet match first, got %v", titles(plan.Restaurants))
	}
	// pool of 4 items, 6 slots: first pass covers all 4 distinct items
	for _, d := range plan.Itinerary {
		if d.Blocks.Len() != 3 {
			t.Fatalf("day %s has %d items", d.Date, d.Blocks.Len())
		}
	}
	seq := flatten(plan.Itinerary)
	seen := map[string]bool{}
	for _, s := range seq[:4] {
		if seen[s] {
			t.Fatalf("repeat within first pass: %v", seq)
		}
		seen[s] = true
	}
	for _, want := range []string{"Art Institute", "Jazz Night", "Green Plate", "Steak House"} {
		if !seen[want] {
			t.Fatalf("%q missing from first pass %v", want, seq)
		}
	}
	if strings.Contains(plan.Notes, "No POIs") || strings.Contains(plan.Notes, "Weather data unavailable") {
		t.Fatalf("unexpected advisory: %q", plan.Notes)
	}
	if plan.WeatherSummary != "Temps ~15–26°C, 0 likely rainy day(s)." {
		t.Fatalf("weather summary: %q", plan.WeatherSummary)
	}
}

func TestBuildPlan_SameSeedSamePlan(t *testing.T) {
	f := newFixture()
	f.store.seed("Austin, TX",
		poi("A", true, 60), poi("B", true, 60), poi("C", true, 60), poi("D", true, 60), poi("E", true, 60))
	req := trip("Austin, TX", "2025-03-01", "2025-03-03")

	a, _ := f.service(42).BuildPlan(context.Background(), req)
	b, _ := f.service(42).BuildPlan(context.Background(), req)
	ja, _ := json.Marshal(app.NewPlanResponse(a))
	jb, _ := json.Marshal(app.NewPlanResponse(b))
	if string(ja) != string(jb) {
		t.Fatalf("same seed produced different plans")
	}
}

func TestBuildPlan_AskOverridesStoredPreferences(t *testing.T) {
	f := newFixture()
	f.store.seed("Denver, CO",
		poi("Hike Trail", true, 240, "hiking"),
		poi("Short Walk", true, 60, "hiking"),
		poi("Museum", true, 60, "museum"),
	)
	f.x.o = domain.PreferenceOverride{Interests: []string{"hiking"}, Mobility: sptr("no-long-hikes")}

	req := trip("Denver, CO", "2025-05-01", "2025-05-01")
	req.Preferences.Interests = []string{"museum"}
	req.Ask = "short hikes please"
	plan, err := f.service(3).BuildPlan(context.Background(), req)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	for _, title := range flatten(plan.Itinerary) {
		if title != "Short Walk" {
			t.Fatalf("override not applied, got %q", title)
		}
	}
}

func TestBuildPlan_ExtractorFailureIsNoted(t *testing.T) {
	f := newFixture()
	f.x.err = errBoom
	req := trip("Boston", "2025-05-01", "2025-05-01")
	req.Ask = "something"
	plan, err := f.service(1).BuildPlan(context.Background(), req)
	if err != nil {
		t.Fatalf("extractor failure must be soft, got %v", err)
	}
	if !strings.Contains(plan.Notes, "stored preferences") {
		t.Fatalf("expected advisory, notes=%q", plan.Notes)
	}
}

func TestBuildPlan_EventAndWeatherErrorsAreSoft(t *testing.T) {
	f := newFixture()
	f.ev.err = errBoom
	f.fc.err = errBoom
	plan, err := f.service(1).BuildPlan(context.Background(), trip("Boston", "2025-05-01", "2025-05-02"))
	if err != nil {
		t.Fatalf("expected soft failure, got %v", err)
	}
	if len(plan.Itinerary) != 2 || len(plan.PackingChecklist) != 5 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestCreatePlan_PersistsAndReads(t *testing.T) {
	f := newFixture()
	f.store.seed("Seattle, WA", poi("Space Needle", true, 60, "viewpoint"))
	req := trip("Seattle, WA", "2025-08-01", "2025-08-01")
	req.Ask = "views"

	env, err := f.service(5).CreatePlan(context.Background(), req)
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if env.RunID == "" {
		t.Fatalf("expected run id")
	}
	got, err := f.service(5).GetPlan(context.Background(), env.RunID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if got.Run.UserQuery != "views" || len(got.Output.Itinerary) != 1 || got.Output.Itinerary[0].Date != "2025-08-01" {
		t.Fatalf("unexpected stored plan: %+v", got)
	}
}

func TestCreatePlan_SaveFailureStillReturnsPlan(t *testing.T) {
	f := newFixture()
	f.runs.err = errBoom
	env, err := f.service(1).CreatePlan(context.Background(), trip("Boston", "2025-05-01", "2025-05-01"))
	if err != nil {
		t.Fatalf("persistence failure must not fail the request: %v", err)
	}
	if env.RunID != "" || len(env.Output.Itinerary) != 1 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestGetPlan_UnknownID(t *testing.T) {
	f := newFixture()
	for _, id := range []string{"nope", "7c9e6679-7425-40de-944b-e07fc1f90ae7"} {
		if _, err := f.service(1).GetPlan(context.Background(), id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", id, err)
		}
	}
}
