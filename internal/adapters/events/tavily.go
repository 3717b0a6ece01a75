package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"concierge/internal/adapters/httpx"
	"concierge/internal/domain"
)

const DefaultTavilyURL = "https://api.tavily.com/search"

// Tavily finds events through the Tavily web search API.
type Tavily struct {
	endpoint   string
	key        string
	maxResults int
	hc         *httpx.Client
}

func NewTavily(endpoint, key string, timeout time.Duration) (*Tavily, error) {
	if key == "" {
		return nil, errors.New("tavily: API key is required")
	}
	if endpoint == "" {
		endpoint = DefaultTavilyURL
	}
	return &Tavily{
		endpoint:   endpoint,
		key:        key,
		maxResults: 5,
		hc:         httpx.New("tavily", httpx.Options{Timeout: timeout, RPS: 1, MaxAttempts: 2}),
	}, nil
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (t *Tavily) Search(ctx context.Context, city string, start, end time.Time) ([]domain.Event, error) {
	req := tavilyRequest{
		APIKey:     t.key,
		Query:      fmt.Sprintf("events in %s between %s and %s", city, start.Format(domain.DateLayout), end.Format(domain.DateLayout)),
		MaxResults: t.maxResults,
	}
	var resp tavilyResponse
	if err := t.hc.PostJSON(ctx, t.endpoint, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}
	out := make([]domain.Event, 0, len(resp.Results))
	for _, r := range resp.Results {
		name := strings.TrimSpace(r.Title)
		if name == "" {
			name = "Event"
		}
		out = append(out, domain.Event{Name: name, URL: strings.TrimSpace(r.URL), Tags: []string{"event"}})
	}
	return out, nil
}
