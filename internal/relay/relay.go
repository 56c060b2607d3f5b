// Package relay brokers the WebRTC session-description exchange with
// the upstream realtime voice endpoint, keeping the credential
// server-side.
package relay

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/alita-ai/alita/internal/errors"
)

// Relay forwards SDP offers upstream and returns the answer verbatim.
type Relay struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

// New creates a relay for the configured endpoint.
func New(baseURL, model, apiKey string) *Relay {
	return &Relay{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
	}
}

// WithClient swaps the HTTP client (used by tests).
func (r *Relay) WithClient(client *http.Client) *Relay {
	r.client = client
	return r
}

// Model returns the configured realtime model id.
func (r *Relay) Model() string { return r.model }

// Configured reports whether a credential is present.
func (r *Relay) Configured() bool { return r.apiKey != "" }

// Exchange forwards one SDP offer and returns the upstream status and
// body unchanged. A missing credential fails before any outbound call.
// Session establishment is latency-sensitive, so there is no retry.
func (r *Relay) Exchange(ctx context.Context, offer []byte) (int, []byte, error) {
	if r.apiKey == "" {
		return 0, nil, errors.Config(errors.CodeConfigMissingKey, "OPENAI_API_KEY not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"?model="+r.model, bytes.NewReader(offer))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/sdp")
	req.Header.Set("OpenAI-Beta", "realtime=v1")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, errors.CodeUpstreamUnavailable, "realtime endpoint unreachable", errors.CategoryTemporary)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, errors.CodeUpstreamStatus, "reading realtime answer failed", errors.CategoryTemporary)
	}
	return resp.StatusCode, body, nil
}
