// Package llm turns a traveller's free-text request into structured
// preference overrides using an OpenAI-compatible chat completions API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"concierge/internal/adapters/httpx"
	"concierge/internal/domain"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = fmt.Errorf("llm: no API key: %w", domain.ErrUnavailable)

const systemPrompt = `Extract structured trip preferences as JSON with keys:
budget_tier one of ["$","$$","$$$"], interests array of strings,
mobility nullable string (e.g., "wheelchair","no-long-hikes","stroller"),
dietary nullable string (e.g., "vegan","halal","gluten-free"). Only return valid JSON.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type extracted struct {
	BudgetTier *string  `json:"budget_tier"`
	Interests  []string `json:"interests"`
	Mobility   *string  `json:"mobility"`
	Dietary    *string  `json:"dietary"`
}

// Extractor implements domain.PreferenceExtractor.
type Extractor struct {
	baseURL string
	key     string
	model   string
	hc      *httpx.Client
}

func NewExtractor(baseURL, key, model string, timeout time.Duration) *Extractor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Extractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		model:   model,
		hc:      httpx.New("openai", httpx.Options{Timeout: timeout, MaxAttempts: 2}),
	}
}

func (e *Extractor) Parse(ctx context.Context, freeText string) (domain.PreferenceOverride, error) {
	if e.key == "" {
		return domain.PreferenceOverride{}, ErrDisabled
	}
	req := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: freeText},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+e.key)

	var resp chatResponse
	if err := e.hc.PostJSON(ctx, e.baseURL+"/chat/completions", h, req, &resp); err != nil {
		return domain.PreferenceOverride{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.PreferenceOverride{}, fmt.Errorf("chat completion: no choices")
	}
	var x extracted
	if err := json.Unmarshal([]byte(stripFence(resp.Choices[0].Message.Content)), &x); err != nil {
		return domain.PreferenceOverride{}, fmt.Errorf("decode preferences: %w", err)
	}
	return domain.PreferenceOverride{
		BudgetTier: x.BudgetTier,
		Interests:  domain.NormalizeTags(x.Interests),
		Mobility:   x.Mobility,
		Dietary:    x.Dietary,
	}, nil
}

// stripFence removes a ```json fence some models wrap around the object.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
