package app

import (
	"sort"
	"strings"

	"concierge/internal/domain"
)

// RankByDiet moves restaurants tagged with dietary to the front, fewer tags first
// among equals. Nothing is dropped; without a dietary tag the input is returned as is.
func RankByDiet(items []domain.Candidate, dietary string) []domain.Candidate {
	diet := strings.ToLower(strings.TrimSpace(dietary))
	if diet == "" {
		return items
	}
	out := append([]domain.Candidate(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := out[i].HasTag(diet), out[j].HasTag(diet)
		if mi != mj {
			return mi
		}
		return len(out[i].Tags) < len(out[j].Tags)
	})
	return out
}

func Truncate(items []domain.Candidate, max int) []domain.Candidate {
	if max >= 0 && len(items) > max {
		return items[:max]
	}
	return items
}
