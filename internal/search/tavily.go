package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/pkg/protocol"
)

// DefaultTavilyURL is the premium search endpoint.
const DefaultTavilyURL = "https://api.tavily.com/search"

// Tavily is the keyed premium provider.
type Tavily struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewTavily creates a Tavily provider.
func NewTavily(apiKey string) *Tavily {
	return &Tavily{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: DefaultTavilyURL,
	}
}

// WithBaseURL overrides the endpoint (used by tests).
func (t *Tavily) WithBaseURL(u string) *Tavily {
	t.baseURL = strings.TrimRight(u, "/")
	return t
}

// Name returns the provider identifier.
func (t *Tavily) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search runs a Tavily query.
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]protocol.SearchResult, error) {
	if t.apiKey == "" {
		return nil, errors.Config(errors.CodeConfigMissingKey, "TAVILY_API_KEY not configured")
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	payload, err := json.Marshal(tavilyRequest{APIKey: t.apiKey, Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamUnavailable, "tavily unreachable", errors.CategoryTemporary)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Permanent(errors.CodeUpstreamStatus,
			fmt.Sprintf("tavily returned %d: %s", resp.StatusCode, truncate(string(body), 300)))
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamStatus, "tavily returned malformed body", errors.CategoryPermanent)
	}

	results := make([]protocol.SearchResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, protocol.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
			Source:  t.Name(),
			Score:   r.Score,
		})
	}
	return clampResults(results, maxResults), nil
}
