package app

import (
	"strings"

	"concierge/internal/domain"
)

/********** tag registries (single source of truth) **********/

// OSM keys whose values describe what a POI is.
var poiCategoryKeys = []string{"tourism", "leisure", "amenity"}

var addressAliases = []string{"addr:full", "addr:street"}

// diet:* tags and the candidate tag they map to.
var dietTags = map[string]string{
	"diet:vegan":       "vegan",
	"diet:vegetarian":  "vegetarian",
	"diet:gluten_free": "gluten-free",
}

const (
	defaultPOIMinutes   = 90
	defaultMealMinutes  = 75
	defaultEventMinutes = 90
)

/********** tiny helpers **********/

func firstNonEmptyTag(tags map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(tags[k]); v != "" {
			return v
		}
	}
	return ""
}

// placeCoords: node coordinates first, then the way/relation center.
func placeCoords(p domain.RawPlace) (domain.Coords, bool) {
	if p.Lat != nil && p.Lon != nil {
		return domain.Coords{Lat: *p.Lat, Lon: *p.Lon}, true
	}
	if p.Center != nil {
		return *p.Center, true
	}
	return domain.Coords{}, false
}

func placeAddress(tags map[string]string) string {
	if s := firstNonEmptyTag(tags, addressAliases...); s != "" {
		if n := strings.TrimSpace(tags["addr:housenumber"]); n != "" && tags["addr:full"] == "" {
			return n + " " + s
		}
		return s
	}
	return ""
}

// splitCuisine: OSM uses ";" but hand-edited data often uses ",".
func splitCuisine(raw string) []string {
	raw = strings.ReplaceAll(raw, ";", ",")
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func yesOrOnly(v string) bool { return v == "yes" || v == "only" }

/********** place mappers **********/

func mapPlace(kind domain.Kind, p domain.RawPlace) (domain.Candidate, bool) {
	if kind == domain.KindRestaurant {
		return mapRestaurant(p)
	}
	return mapPOI(p)
}

func mapPOI(p domain.RawPlace) (domain.Candidate, bool) {
	name := strings.TrimSpace(p.Tags["name"])
	if name == "" {
		return domain.Candidate{}, false
	}
	geo, ok := placeCoords(p)
	if !ok {
		return domain.Candidate{}, false
	}

	var tags []string
	for _, k := range poiCategoryKeys {
		if v := p.Tags[k]; v != "" {
			tags = append(tags, v)
		}
	}
	tags = append(tags, splitCuisine(p.Tags["cuisine"])...)

	wheelchair := p.Tags["wheelchair"]
	return domain.Candidate{
		Kind:               domain.KindActivity,
		Title:              name,
		Address:            placeAddress(p.Tags),
		Geo:                geo,
		PriceTier:          domain.TierMid,
		Tags:               domain.NormalizeTags(tags),
		DurationMinutes:    defaultPOIMinutes,
		WheelchairFriendly: wheelchair == "yes" || wheelchair == "designated",
		ChildFriendly:      true,
	}, true
}

func mapRestaurant(p domain.RawPlace) (domain.Candidate, bool) {
	name := strings.TrimSpace(p.Tags["name"])
	if name == "" {
		return domain.Candidate{}, false
	}
	geo, ok := placeCoords(p)
	if !ok {
		return domain.Candidate{}, false
	}

	cuisines := splitCuisine(p.Tags["cuisine"])
	low := strings.ToLower(p.Tags["cuisine"])
	tags := append([]string(nil), cuisines...)
	if strings.Contains(low, "vegan") || yesOrOnly(p.Tags["diet:vegan"]) {
		tags = append(tags, dietTags["diet:vegan"])
	}
	if strings.Contains(low, "vegetarian") || yesOrOnly(p.Tags["diet:vegetarian"]) {
		tags = append(tags, dietTags["diet:vegetarian"])
	}
	if yesOrOnly(p.Tags["diet:gluten_free"]) {
		tags = append(tags, dietTags["diet:gluten_free"])
	}
	if len(tags) == 0 {
		switch p.Tags["amenity"] {
		case "cafe":
			tags = []string{"cafe"}
		default:
			tags = []string{"restaurant"}
		}
	}

	return domain.Candidate{
		Kind:      domain.KindRestaurant,
		Title:     name,
		Address:   placeAddress(p.Tags),
		Geo:       geo,
		PriceTier: domain.TierMid,
		Tags:      domain.NormalizeTags(tags),
	}, true
}

/********** activity-pool mappers **********/

// RestaurantsAsActivities turns ranked restaurants into meal-length activity slots.
func RestaurantsAsActivities(restaurants []domain.Candidate, minutes int) []domain.Candidate {
	if minutes <= 0 {
		minutes = defaultMealMinutes
	}
	out := make([]domain.Candidate, 0, len(restaurants))
	for _, r := range restaurants {
		title := r.Title
		if title == "" {
			title = "Restaurant"
		}
		tags := r.Tags
		if len(tags) == 0 {
			tags = []string{"restaurant"}
		}
		out = append(out, domain.Candidate{
			Kind:               domain.KindActivity,
			Title:              title,
			Address:            r.Address,
			Geo:                r.Geo,
			PriceTier:          domain.NormalizeTier(string(r.PriceTier), domain.TierMid),
			Tags:               tags,
			DurationMinutes:    minutes,
			WheelchairFriendly: true,
			ChildFriendly:      true,
		})
	}
	return out
}

// EventsAsActivities places events at the city center with the trip's tier.
func EventsAsActivities(events []domain.Event, location string, center domain.Coords, tier domain.PriceTier, minutes int) []domain.Candidate {
	if minutes <= 0 {
		minutes = defaultEventMinutes
	}
	out := make([]domain.Candidate, 0, len(events))
	for _, e := range events {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = "Event"
		}
		tags := e.Tags
		if len(tags) == 0 {
			tags = []string{"event"}
		}
		out = append(out, domain.Candidate{
			Kind:               domain.KindActivity,
			Title:              name,
			Address:            location,
			Geo:                center,
			PriceTier:          tier,
			Tags:               domain.NormalizeTags(tags),
			DurationMinutes:    minutes,
			WheelchairFriendly: true,
			ChildFriendly:      true,
		})
	}
	return out
}

func dedupeByTitle(in []domain.Candidate) []domain.Candidate {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Candidate, 0, len(in))
	for _, c := range in {
		if _, ok := seen[c.Title]; ok {
			continue
		}
		seen[c.Title] = struct{}{}
		out = append(out, c)
	}
	return out
}
