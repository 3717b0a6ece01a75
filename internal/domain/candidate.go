package domain

import (
	"sort"
	"strings"
)

// Kind separates the two candidate classes the planner works with.
type Kind string

const (
	KindActivity   Kind = "activity"
	KindRestaurant Kind = "restaurant"
)

// PriceTier is an ordinal budget level: "$", "$$" or "$$$".
type PriceTier string

const (
	TierLow  PriceTier = "$"
	TierMid  PriceTier = "$$"
	TierHigh PriceTier = "$$$"
)

func (t PriceTier) Valid() bool {
	switch t {
	case TierLow, TierMid, TierHigh:
		return true
	}
	return false
}

// NormalizeTier returns raw when it is a recognized tier, otherwise def.
// An invalid def falls back to TierMid so the result is always valid.
func NormalizeTier(raw string, def PriceTier) PriceTier {
	if t := PriceTier(strings.TrimSpace(raw)); t.Valid() {
		return t
	}
	if def.Valid() {
		return def
	}
	return TierMid
}

type Coords struct{ Lat, Lon float64 }

// Candidate is an activity (POI, event, meal slot) or a restaurant.
// DurationMinutes, WheelchairFriendly and ChildFriendly only matter for activities.
type Candidate struct {
	Kind               Kind
	Title              string
	Address            string
	Geo                Coords
	PriceTier          PriceTier
	Tags               []string
	DurationMinutes    int
	WheelchairFriendly bool
	ChildFriendly      bool
}

// HasTag reports whether tag (case-insensitive) is in the candidate's tag set.
func (c Candidate) HasTag(tag string) bool {
	want := strings.ToLower(strings.TrimSpace(tag))
	if want == "" {
		return false
	}
	for _, t := range c.Tags {
		if t == want {
			return true
		}
	}
	return false
}

// NormalizeTags lowercases, trims and deduplicates tags. Output is sorted.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SplitTags parses the comma-separated form used by the store.
func SplitTags(csv string) []string {
	return NormalizeTags(strings.Split(csv, ","))
}

func JoinTags(tags []string) string { return strings.Join(NormalizeTags(tags), ",") }

// CityKey is the leading component of a location ("San Francisco" from "San Francisco, CA").
func CityKey(location string) string {
	if i := strings.IndexByte(location, ','); i >= 0 {
		location = location[:i]
	}
	return strings.TrimSpace(location)
}

// RawPlace is an untyped geo-tagged record as returned by a GeoSource.
// Ways and relations carry their coordinates in Center instead of Lat/Lon.
type RawPlace struct {
	ID       int64
	Type     string
	Lat, Lon *float64
	Center   *Coords
	Tags     map[string]string
}
