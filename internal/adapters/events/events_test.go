package events_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concierge/internal/adapters/events"
	"concierge/internal/domain"
)

var (
	tripStart = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	tripEnd   = time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
)

const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>City events</title>
<item><title>Austin Jazz Night</title><link>https://ex.com/jazz</link><category>Music</category>
 <pubDate>Wed, 02 Jul 2025 19:00:00 GMT</pubDate></item>
<item><title>Austin Food Fair</title><link>https://ex.com/fair</link>
 <pubDate>Thu, 03 Jul 2025 22:00:00 GMT</pubDate></item>
<item><title>Dallas Rodeo</title><link>https://ex.com/rodeo</link>
 <pubDate>Wed, 02 Jul 2025 19:00:00 GMT</pubDate></item>
<item><title>Austin Marathon</title><link>https://ex.com/run</link>
 <pubDate>Sun, 16 Feb 2025 07:00:00 GMT</pubDate></item>
<item><title>Austin Undated</title><link>https://ex.com/undated</link></item>
</channel></rss>`

func TestFeeds_FiltersByCityAndDate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer ts.Close()

	f := events.NewFeeds([]string{"http://127.0.0.1:1/unreachable", ts.URL}, time.Second)
	got, err := f.Search(context.Background(), "Austin", tripStart, tripEnd)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Austin Jazz Night" || got[1].URL != "https://ex.com/fair" {
		t.Fatalf("unexpected events: %+v", got)
	}
	if len(got[0].Tags) != 2 || got[0].Tags[0] != "event" || got[0].Tags[1] != "music" {
		t.Fatalf("unexpected tags: %v", got[0].Tags)
	}
	if got[0].Start == nil || got[0].Start.Day() != 2 {
		t.Fatalf("start not carried: %+v", got[0])
	}
}

func TestFeeds_NoURLs(t *testing.T) {
	got, err := events.NewFeeds(nil, time.Second).Search(context.Background(), "Austin", tripStart, tripEnd)
	if err != nil || got != nil {
		t.Fatalf("got %v, err %v", got, err)
	}
}

func TestTavily_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body["api_key"] != "k" || body["query"] != "events in Austin between 2025-07-01 and 2025-07-03" || body["max_results"] != 5.0 {
			t.Errorf("unexpected body: %v", body)
		}
		_, _ = w.Write([]byte(`{"results":[{"title":"Blues on the Green","url":"https://ex.com/b"},{"title":"","url":"https://ex.com/x"}]}`))
	}))
	defer ts.Close()

	tv, err := events.NewTavily(ts.URL, "k", time.Second)
	if err != nil {
		t.Fatalf("NewTavily: %v", err)
	}
	got, err := tv.Search(context.Background(), "Austin", tripStart, tripEnd)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Blues on the Green" || got[1].Name != "Event" || got[1].Tags[0] != "event" {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestTavily_RequiresKey(t *testing.T) {
	if _, err := events.NewTavily("", "", time.Second); err == nil {
		t.Fatalf("expected error without key")
	}
}

type stubSource struct {
	evs []domain.Event
	err error
}

func (s stubSource) Search(context.Context, string, time.Time, time.Time) ([]domain.Event, error) {
	return s.evs, s.err
}

func TestMulti_DedupesAndToleratesFailures(t *testing.T) {
	m := events.Multi{
		stubSource{err: context.DeadlineExceeded},
		stubSource{evs: []domain.Event{{Name: "A", URL: "https://ex.com/a"}, {Name: "B"}}},
		stubSource{evs: []domain.Event{{Name: "A again", URL: "https://EX.com/a"}, {Name: "b"}, {Name: "C"}}},
	}
	got, err := m.Search(context.Background(), "Austin", tripStart, tripEnd)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 || got[2].Name != "C" {
		t.Fatalf("unexpected merge: %+v", got)
	}
}

func TestMulti_AllFail(t *testing.T) {
	m := events.Multi{stubSource{err: context.DeadlineExceeded}}
	if _, err := m.Search(context.Background(), "Austin", tripStart, tripEnd); err == nil {
		t.Fatalf("expected error when every source fails")
	}
}
