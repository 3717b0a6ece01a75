package events

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"

	"concierge/internal/adapters/httpx"
	"concierge/internal/domain"
)

// Feeds pulls RSS/Atom event calendars and keeps items that mention the city
// and are dated within the trip.
type Feeds struct {
	urls  []string
	limit int
	hc    *httpx.Client
}

func NewFeeds(urls []string, timeout time.Duration) *Feeds {
	return &Feeds{
		urls:  urls,
		limit: 10,
		hc:    httpx.New("feeds", httpx.Options{Timeout: timeout}),
	}
}

func (f *Feeds) Search(ctx context.Context, city string, start, end time.Time) ([]domain.Event, error) {
	keyword := strings.ToLower(strings.TrimSpace(city))
	if keyword == "" || len(f.urls) == 0 {
		return nil, nil
	}
	from := day(start)
	to := day(end).AddDate(0, 0, 1) // end date inclusive

	parser := gofeed.NewParser()
	parser.Client = f.hc.HTTPClient()
	parser.UserAgent = "concierge/1.0"

	var out []domain.Event
	for _, u := range f.urls {
		if len(out) >= f.limit {
			break
		}
		feed, err := parser.ParseURLWithContext(u, ctx)
		if err != nil {
			log.Debug().Err(err).Str("feed", u).Msg("event feed skipped")
			continue
		}
		for _, it := range feed.Items {
			if len(out) >= f.limit {
				break
			}
			text := strings.ToLower(it.Title + " " + it.Description)
			if !strings.Contains(text, keyword) {
				continue
			}
			when := itemTime(it)
			if when == nil || when.Before(from) || !when.Before(to) {
				continue
			}
			out = append(out, domain.Event{
				Name:  strings.TrimSpace(it.Title),
				URL:   strings.TrimSpace(it.Link),
				Tags:  eventTags(it.Categories),
				Start: when,
			})
		}
	}
	return out, nil
}

func itemTime(it *gofeed.Item) *time.Time {
	if it.PublishedParsed != nil {
		return it.PublishedParsed
	}
	return it.UpdatedParsed
}

func eventTags(categories []string) []string {
	return domain.NormalizeTags(append([]string{"event"}, categories...))
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
