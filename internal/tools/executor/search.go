package executor

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/internal/search"
	"github.com/alita-ai/alita/internal/timezone"
	"github.com/alita-ai/alita/pkg/protocol"
)

// WebSearch answers search.web calls. The attempt order is fixed:
//
//  1. time-intent short circuit (static place table + time API)
//  2. the selected search provider (tavily when keyed, else duckduckgo;
//     an explicit provider argument wins, but a keyless tavily request
//     silently downgrades)
//  3. one retry for a transient duckduckgo failure
//  4. a second time-resolution attempt when duckduckgo parsed empty
//     and the query is time-like
type WebSearch struct {
	tavily   search.Provider
	ddg      search.Provider
	resolver *timezone.Resolver

	tavilyConfigured bool
	defaultProvider  string
}

// NewWebSearch creates the search tool.
func NewWebSearch(tavilyKey, defaultProvider string) *WebSearch {
	return &WebSearch{
		tavily:           search.NewTavily(tavilyKey),
		ddg:              search.NewDuckDuckGo(),
		resolver:         timezone.NewResolver(),
		tavilyConfigured: tavilyKey != "",
		defaultProvider:  defaultProvider,
	}
}

// WithProviders swaps the backends (used by tests).
func (t *WebSearch) WithProviders(tavily, ddg search.Provider, resolver *timezone.Resolver, tavilyConfigured bool) *WebSearch {
	t.tavily = tavily
	t.ddg = ddg
	t.resolver = resolver
	t.tavilyConfigured = tavilyConfigured
	return t
}

// Name returns the tool's identifier.
func (t *WebSearch) Name() string { return "search.web" }

// Description returns what the tool does.
func (t *WebSearch) Description() string {
	return "Search the web, resolving time-in-place queries locally first"
}

// Execute runs the attempt chain for one query.
func (t *WebSearch) Execute(ctx context.Context, args map[string]any) (*protocol.ToolResult, error) {
	start := time.Now()

	query := StringArg(args, "query")
	if query == "" {
		return nil, errors.User(errors.CodeToolInvalidParams, "search.web: query is required")
	}
	maxResults := IntArg(args, "max_results")
	if maxResults <= 0 {
		maxResults = search.DefaultMaxResults
	}

	// Attempt 1: a matched time query never reaches a search provider.
	if result := t.timeShortCircuit(ctx, query); result != nil {
		return TimedResult(result, start), nil
	}

	// Attempt 2: provider selection.
	provider := strings.ToLower(StringArg(args, "provider"))
	if provider == "" || provider == "auto" {
		provider = t.defaultProvider
	}
	if provider == "" || provider == "auto" {
		if t.tavilyConfigured {
			provider = t.tavily.Name()
		} else {
			provider = t.ddg.Name()
		}
	}
	if provider == t.tavily.Name() && !t.tavilyConfigured {
		// Silent downgrade rather than failing a live session.
		provider = t.ddg.Name()
	}

	if provider == t.tavily.Name() {
		results, err := t.tavily.Search(ctx, query, maxResults)
		if err != nil {
			return TimedResult(protocol.NewErrorResult("search", "%v", err), start), nil
		}
		return TimedResult(searchResult(query, t.tavily.Name(), results), start), nil
	}

	// Attempts 3-4: keyless provider with one retry, then the
	// defensive second time-resolution pass.
	results, err := errors.DoWithResult(ctx, errors.RetryOncePolicy(), func() ([]protocol.SearchResult, error) {
		return t.ddg.Search(ctx, query, maxResults)
	})
	if err != nil {
		if stderrors.Is(err, search.ErrEmptyAnswer) && looksTimeLike(query) {
			if result := t.timeSecondAttempt(ctx, query); result != nil {
				return TimedResult(result, start), nil
			}
		}
		return TimedResult(protocol.NewErrorResult("search", "%v", err), start), nil
	}
	return TimedResult(searchResult(query, t.ddg.Name(), results), start), nil
}

func searchResult(query, provider string, results []protocol.SearchResult) *protocol.ToolResult {
	return &protocol.ToolResult{
		Success:  true,
		Type:     "search",
		Query:    query,
		Provider: provider,
		Results:  results,
	}
}

// timeShortCircuit returns a time result when the query is a time
// question about a mapped place. Resolution failure is not an error;
// the query falls through to the providers.
func (t *WebSearch) timeShortCircuit(ctx context.Context, query string) *protocol.ToolResult {
	place, ok := timezone.QueryPlace(query)
	if !ok {
		return nil
	}
	if _, mapped := t.resolver.Zone(place); !mapped {
		return nil
	}
	answer, err := t.resolver.Resolve(ctx, place)
	if err != nil {
		return nil
	}
	return &protocol.ToolResult{Success: true, Type: "time", Query: query, Time: answer}
}

// timeSecondAttempt re-derives a place from a time-like query whose
// primary derivation missed (ordering quirks in transcribed text) and
// tries the resolver once more.
func (t *WebSearch) timeSecondAttempt(ctx context.Context, query string) *protocol.ToolResult {
	place, ok := timezone.QueryPlace(query)
	if !ok {
		// Looser derivation: everything after the last " in ".
		lower := strings.ToLower(query)
		idx := strings.LastIndex(lower, " in ")
		if idx < 0 {
			return nil
		}
		place = strings.Trim(strings.TrimSpace(query[idx+4:]), "?.!,")
		if place == "" {
			return nil
		}
	}
	answer, err := t.resolver.Resolve(ctx, place)
	if err != nil {
		return nil
	}
	return &protocol.ToolResult{Success: true, Type: "time", Query: query, Time: answer}
}

// looksTimeLike reports whether a query mentions clock time at all.
func looksTimeLike(query string) bool {
	lower := strings.ToLower(query)
	return strings.Contains(lower, "time in ") || strings.Contains(lower, "what time")
}
