package overpass

import (
	"fmt"
	"strings"

	"concierge/internal/domain"
)

// Filter selects elements whose tag Key matches the Regex.
type Filter struct {
	Key   string
	Regex string
}

var (
	POIFilters = []Filter{
		{"tourism", "museum|attraction|gallery|viewpoint|artwork"},
		{"leisure", "park|playground|garden|sports_centre"},
		{"amenity", "library|arts_centre|theatre"},
	}
	RestaurantFilters = []Filter{
		{"amenity", "restaurant|cafe|fast_food|ice_cream|bar|pub"},
		{"shop", "coffee|tea|confectionery"},
	}
)

const resultLimit = 200

func FiltersFor(kind domain.Kind) []Filter {
	if kind == domain.KindRestaurant {
		return RestaurantFilters
	}
	return POIFilters
}

// BuildQuery renders an Overpass QL union of node/way/relation lookups around center.
// Ways and relations are returned with their center point.
func BuildQuery(center domain.Coords, radiusKm float64, filters []Filter) string {
	radiusM := int(radiusKm * 1000)
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, f := range filters {
		for _, typ := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&b, "  %s(around:%d,%g,%g)[%s~\"%s\"];\n", typ, radiusM, center.Lat, center.Lon, f.Key, f.Regex)
		}
	}
	fmt.Fprintf(&b, ");\nout center %d;", resultLimit)
	return b.String()
}
