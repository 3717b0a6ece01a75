package domain

import (
	"context"
	"time"
)

type CandidateStore interface {
	// Find returns candidates whose city contains city (case-insensitive).
	Find(ctx context.Context, city string, kind Kind) ([]Candidate, error)
	// InsertIfAbsent stores c under (title, city); a duplicate key is a no-op returning false.
	InsertIfAbsent(ctx context.Context, c Candidate, city string) (bool, error)
}

type GeoSource interface {
	Query(ctx context.Context, center Coords, radiusKm float64, kind Kind) ([]RawPlace, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, location string) (Coords, error)
}

type Forecaster interface {
	Daily(ctx context.Context, center Coords, start, end time.Time) (Forecast, error)
}

type EventSource interface {
	Search(ctx context.Context, city string, start, end time.Time) ([]Event, error)
}

type PreferenceExtractor interface {
	Parse(ctx context.Context, freeText string) (PreferenceOverride, error)
}

type PlanRunRepository interface {
	SaveRun(ctx context.Context, run PlanRun) error
	GetRun(ctx context.Context, id string) (PlanRun, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
