package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"concierge/internal/domain"
)

// Multi queries every source in order and merges the results, dropping
// events already seen by URL or name. It fails only when every source fails.
type Multi []domain.EventSource

func (m Multi) Search(ctx context.Context, city string, start, end time.Time) ([]domain.Event, error) {
	var (
		out  []domain.Event
		errs []error
	)
	seen := map[string]bool{}
	for _, src := range m {
		evs, err := src.Search(ctx, city, start, end)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, e := range evs {
			key := strings.ToLower(strings.TrimSpace(e.URL))
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(e.Name))
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, e)
		}
	}
	if len(m) > 0 && len(errs) == len(m) {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
