package app_test

import (
	"context"
	"errors"
	"testing"

	"concierge/internal/app"
	"concierge/internal/domain"
)

func TestSeedCity_IsIdempotent(t *testing.T) {
	store := &fakeStore{}
	s := app.NewSeedService(store, nil, nil)
	pois := []domain.Candidate{poi("Central Park", true, 90, "park"), poi("High Line", true, 90, "Park", "park")}
	rests := []domain.Candidate{{Kind: domain.KindRestaurant, Title: "Joe Coffee", PriceTier: "?"}}

	n, err := s.SeedCity(context.Background(), "New York, NY", pois, rests)
	if err != nil || n != 3 {
		t.Fatalf("first seed: n=%d err=%v", n, err)
	}
	n, err = s.SeedCity(context.Background(), "New York, NY", pois, rests)
	if err != nil || n != 0 {
		t.Fatalf("second seed should insert nothing: n=%d err=%v", n, err)
	}

	got, _ := store.Find(context.Background(), "New York", domain.KindRestaurant)
	if len(got) != 1 || got[0].PriceTier != domain.TierMid {
		t.Fatalf("restaurant tier not normalized: %+v", got)
	}
	hl, _ := store.Find(context.Background(), "New York", domain.KindActivity)
	if len(hl) != 2 || len(hl[1].Tags) != 1 {
		t.Fatalf("tags not normalized: %+v", hl)
	}
}

func TestSeedCity_InsertErrorFails(t *testing.T) {
	s := app.NewSeedService(&fakeStore{insertErr: errBoom}, nil, nil)
	if _, err := s.SeedCity(context.Background(), "X", []domain.Candidate{poi("A", true, 60)}); !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped errBoom, got %v", err)
	}
}

func TestWarmCity_FillsStoreFromGeo(t *testing.T) {
	store := &fakeStore{}
	geo := &fakeGeo{respond: func(r float64, kind domain.Kind) ([]domain.RawPlace, error) {
		if kind == domain.KindRestaurant {
			return []domain.RawPlace{osmNode("Bean", map[string]string{"amenity": "cafe"})}, nil
		}
		return []domain.RawPlace{osmNode("Park", map[string]string{"leisure": "park"})}, nil
	}}
	sel := app.NewSelectionEngine(store, geo, app.DefaultSelectionConfig())
	s := app.NewSeedService(store, &fakeGeocoder{coords: sf}, sel)

	a, r, err := s.WarmCity(context.Background(), "Portland, OR")
	if err != nil || a != 1 || r != 1 {
		t.Fatalf("warm: a=%d r=%d err=%v", a, r, err)
	}
	if len(store.rows) != 2 {
		t.Fatalf("expected write-back of 2 rows, got %d", len(store.rows))
	}
}

func TestWarmCity_GeocodeError(t *testing.T) {
	sel := app.NewSelectionEngine(&fakeStore{}, &fakeGeo{}, app.DefaultSelectionConfig())
	s := app.NewSeedService(&fakeStore{}, &fakeGeocoder{err: domain.ErrNotFound}, sel)
	if _, _, err := s.WarmCity(context.Background(), "Atlantis"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
