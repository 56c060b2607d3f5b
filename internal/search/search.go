// Package search provides the web search providers behind search.web:
// a keyed premium provider (Tavily) and a keyless fallback (DuckDuckGo
// instant answers).
package search

import (
	"context"

	"github.com/alita-ai/alita/pkg/protocol"
)

// DefaultMaxResults bounds result lists when the caller does not say.
const DefaultMaxResults = 6

// Provider is a web search backend. Results are returned in provider
// order, truncated to maxResults.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]protocol.SearchResult, error)
}

func clampResults(results []protocol.SearchResult, maxResults int) []protocol.SearchResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if len(results) > maxResults {
		return results[:maxResults]
	}
	return results
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
