package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/pkg/protocol"
)

// DefaultDuckDuckGoURL is the keyless instant-answer endpoint.
const DefaultDuckDuckGoURL = "https://api.duckduckgo.com/"

// ErrEmptyAnswer is returned when the instant-answer response parses
// but carries no abstract and no related topics. Callers use it to
// drive the second time-resolution attempt on time-like queries.
var ErrEmptyAnswer = errors.Permanent(errors.CodeUpstreamEmpty, "no instant answer for query")

// DuckDuckGo is the free, keyless fallback provider.
type DuckDuckGo struct {
	client  *http.Client
	baseURL string
}

// NewDuckDuckGo creates a DuckDuckGo instant-answer provider.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: DefaultDuckDuckGoURL,
	}
}

// WithBaseURL overrides the endpoint (used by tests).
func (d *DuckDuckGo) WithBaseURL(u string) *DuckDuckGo {
	d.baseURL = u
	return d
}

// Name returns the provider identifier.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// Search runs an instant-answer query. A transient failure (transport
// error, non-200 status, empty body) is retried exactly once by the
// dispatcher's policy; a parsed-but-empty answer is ErrEmptyAnswer.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]protocol.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamUnavailable, "duckduckgo unreachable", errors.CategoryTemporary)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Temporary(errors.CodeUpstreamStatus,
			fmt.Sprintf("duckduckgo returned %d: %s", resp.StatusCode, truncate(string(body), 300)))
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		// Placeholder/empty response, seen under rate limiting.
		return nil, errors.Temporary(errors.CodeUpstreamStatus, "duckduckgo returned an empty body")
	}

	var parsed ddgResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamStatus, "duckduckgo returned malformed body", errors.CategoryTemporary)
	}

	results := d.collect(&parsed, maxResults)
	if len(results) == 0 {
		return nil, ErrEmptyAnswer
	}
	return results, nil
}

// collect flattens the instant-answer shape into search results:
// abstract first, then related topics in order.
func (d *DuckDuckGo) collect(resp *ddgResponse, maxResults int) []protocol.SearchResult {
	var results []protocol.SearchResult

	if resp.AbstractText != "" {
		title := resp.Heading
		if title == "" {
			title = resp.AbstractText
		}
		results = append(results, protocol.SearchResult{
			Title:   title,
			URL:     resp.AbstractURL,
			Snippet: resp.AbstractText,
			Source:  d.Name(),
		})
	}

	var walk func(topics []ddgTopic)
	walk = func(topics []ddgTopic) {
		for _, t := range topics {
			if len(results) >= maxResults {
				return
			}
			if len(t.Topics) > 0 {
				walk(t.Topics)
				continue
			}
			if t.Text == "" {
				continue
			}
			results = append(results, protocol.SearchResult{
				Title:   t.Text,
				URL:     t.FirstURL,
				Snippet: t.Text,
				Source:  d.Name(),
			})
		}
	}
	walk(resp.RelatedTopics)

	return clampResults(results, maxResults)
}
