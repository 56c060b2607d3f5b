// Package timezone resolves place names to IANA zones and current
// local time. It serves as the fast path inside web search: a matched
// time query never reaches a general search provider.
package timezone

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/pkg/protocol"
)

// DefaultBaseURL is the public time API queried for the current instant.
const DefaultBaseURL = "https://worldtimeapi.org/api/timezone"

// timeQueryPattern matches "time in <place>" phrasing, with the
// optional "right now" / "today" tail stripped from the place.
var timeQueryPattern = regexp.MustCompile(
	`(?i)\b(?:what\s+time\s+is\s+it\s+in|what'?s\s+the\s+time\s+in|current\s+time\s+in|local\s+time\s+in|time\s+in)\s+([A-Za-z ,\-]+?)(?:\s+(?:right\s+now|today|now))?\s*[?.!]*\s*$`)

// QueryPlace extracts the place from a time-intent query.
// Returns false when the text is not a time query.
func QueryPlace(text string) (string, bool) {
	m := timeQueryPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	place := strings.TrimSpace(strings.Trim(m[1], " ,"))
	if place == "" {
		return "", false
	}
	return place, true
}

// Resolver resolves places to zones and zones to the current time.
type Resolver struct {
	client  *http.Client
	baseURL string
	entries []entry
}

// NewResolver creates a resolver against the public time API.
func NewResolver() *Resolver {
	return &Resolver{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: DefaultBaseURL,
		entries: placeTable,
	}
}

// WithBaseURL overrides the time API endpoint (used by tests).
func (r *Resolver) WithBaseURL(u string) *Resolver {
	r.baseURL = strings.TrimRight(u, "/")
	return r
}

// Zone maps a place name to an IANA zone: exact lowercase match first,
// then substring containment in table order. First match wins; the
// order dependency for overlapping names is intentional and pinned by
// tests rather than "fixed".
func (r *Resolver) Zone(place string) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(place))
	if p == "" {
		return "", false
	}

	for _, e := range r.entries {
		if e.place == p {
			return e.zone, true
		}
	}

	// Containment runs one way only: the spoken place may contain a
	// table key ("downtown tokyo"), a bare fragment never matches a
	// longer key.
	for _, e := range r.entries {
		if strings.Contains(p, e.place) {
			return e.zone, true
		}
	}

	return "", false
}

// timeAPIResponse is the shape returned by the public time API.
type timeAPIResponse struct {
	Datetime     string `json:"datetime"`
	UTCOffset    string `json:"utc_offset"`
	Abbreviation string `json:"abbreviation"`
}

// Resolve returns the current local time for a place, or an error when
// the place is unknown or the time API fails. Callers treat any error
// as "not a time query" and fall through to general search.
func (r *Resolver) Resolve(ctx context.Context, place string) (*protocol.TimeAnswer, error) {
	zone, ok := r.Zone(place)
	if !ok {
		return nil, errors.Permanent(errors.CodeUpstreamEmpty, fmt.Sprintf("no timezone mapping for %q", place))
	}

	sourceURL := r.baseURL + "/" + zone
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamUnavailable, "time API unreachable", errors.CategoryTemporary)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Temporary(errors.CodeUpstreamStatus,
			fmt.Sprintf("time API returned %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	var parsed timeAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamStatus, "time API returned malformed body", errors.CategoryTemporary)
	}

	return &protocol.TimeAnswer{
		Place:        place,
		TZ:           zone,
		DateTimeISO:  parsed.Datetime,
		UTCOffset:    parsed.UTCOffset,
		Abbreviation: parsed.Abbreviation,
		SourceURL:    sourceURL,
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
