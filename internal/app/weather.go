package app

import (
	"fmt"
	"math"
	"sort"

	"concierge/internal/domain"
)

const (
	weatherUnavailable = "Weather data unavailable."
	rainyPrecipPct     = 40
	coldMinTempC       = 10
)

var basePacking = []string{"comfortable shoes", "reusable water bottle", "phone power bank", "sunscreen", "light jacket"}

// SummarizeWeather renders the temperature range and the number of likely rainy days.
func SummarizeWeather(f domain.Forecast) string {
	if f.Empty() {
		return weatherUnavailable
	}
	hi, lo := math.Inf(-1), math.Inf(1)
	for _, t := range f.MaxTempC {
		hi = math.Max(hi, t)
	}
	for _, t := range f.MinTempC {
		lo = math.Min(lo, t)
	}
	wet := 0
	for _, p := range f.PrecipProb {
		if p >= rainyPrecipPct {
			wet++
		}
	}
	return fmt.Sprintf("Temps ~%d–%d°C, %d likely rainy day(s).", int(lo), int(hi), wet)
}

// PackingList returns a sorted, deduplicated checklist for the forecast and mobility.
func PackingList(f domain.Forecast, mobility string) []string {
	items := append([]string(nil), basePacking...)
	if len(f.MaxTempC)+len(f.MinTempC)+len(f.PrecipProb) > 0 {
		for _, p := range f.PrecipProb {
			if p >= rainyPrecipPct {
				items = append(items, "compact umbrella", "rain jacket")
				break
			}
		}
		if len(f.MinTempC) > 0 {
			lo := math.Inf(1)
			for _, t := range f.MinTempC {
				lo = math.Min(lo, t)
			}
			if lo <= coldMinTempC {
				items = append(items, "warm layer", "beanie")
			}
		}
		if mobility == MobilityStroller {
			items = append(items, "foldable stroller rain cover")
		}
	}
	return sortedUnique(items)
}

func sortedUnique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
