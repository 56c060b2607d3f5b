package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alita-ai/alita/internal/errors"
)

func TestTavilySearch(t *testing.T) {
	var gotReq tavilyRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"title": "Gold price", "url": "https://example.com/a", "content": "Gold traded at...", "score": 0.95},
			{"title": "Market news", "url": "https://example.com/b", "content": "Commodities...", "score": 0.80}
		]}`))
	}))
	defer ts.Close()

	tav := NewTavily("tvly-test").WithBaseURL(ts.URL)
	results, err := tav.Search(context.Background(), "gold price", 2)
	require.NoError(t, err)

	assert.Equal(t, "tvly-test", gotReq.APIKey)
	assert.Equal(t, "gold price", gotReq.Query)
	assert.Equal(t, 2, gotReq.MaxResults)

	require.Len(t, results, 2)
	assert.Equal(t, "Gold price", results[0].Title)
	assert.Equal(t, "tavily", results[0].Source)
	assert.Equal(t, 0.95, results[0].Score)
}

func TestTavilyMissingKey(t *testing.T) {
	tav := NewTavily("")
	_, err := tav.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryConfig, errors.GetCategory(err))
}

func TestTavilyUpstreamStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer ts.Close()

	tav := NewTavily("tvly-test").WithBaseURL(ts.URL)
	_, err := tav.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.False(t, errors.IsRetryable(err), "upstream rejection is not retried")
	assert.Contains(t, err.Error(), "402")
}

func TestDuckDuckGoSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gold price", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`{
			"Heading": "Gold",
			"AbstractText": "Gold is a chemical element.",
			"AbstractURL": "https://example.com/gold",
			"RelatedTopics": [
				{"Text": "Gold as an investment", "FirstURL": "https://example.com/invest"},
				{"Topics": [{"Text": "Gold standard", "FirstURL": "https://example.com/standard"}]}
			]
		}`))
	}))
	defer ts.Close()

	ddg := NewDuckDuckGo().WithBaseURL(ts.URL)
	results, err := ddg.Search(context.Background(), "gold price", 6)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "Gold", results[0].Title)
	assert.Equal(t, "Gold is a chemical element.", results[0].Snippet)
	assert.Equal(t, "Gold as an investment", results[1].Title)
	assert.Equal(t, "Gold standard", results[2].Title, "nested topics are walked")
}

func TestDuckDuckGoEmptyAnswer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Heading": "", "AbstractText": "", "RelatedTopics": []}`))
	}))
	defer ts.Close()

	ddg := NewDuckDuckGo().WithBaseURL(ts.URL)
	_, err := ddg.Search(context.Background(), "time in Gondor", 6)
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	assert.False(t, errors.IsRetryable(err), "an empty parsed answer is permanent")
}

func TestDuckDuckGoTransientStatusIsRetryable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	ddg := NewDuckDuckGo().WithBaseURL(ts.URL)
	_, err := ddg.Search(context.Background(), "gold price", 6)
	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))
}

func TestDuckDuckGoEmptyBodyIsRetryable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	ddg := NewDuckDuckGo().WithBaseURL(ts.URL)
	_, err := ddg.Search(context.Background(), "gold price", 6)
	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))
}

func TestClampResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"AbstractText": "a",
			"AbstractURL": "u",
			"RelatedTopics": [{"Text": "b"}, {"Text": "c"}, {"Text": "d"}]
		}`))
	}))
	defer ts.Close()

	ddg := NewDuckDuckGo().WithBaseURL(ts.URL)
	results, err := ddg.Search(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
