package executor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alita-ai/alita/internal/errors"
)

func TestPageFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AlitaOS/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Gold News</title></head>
			<body><nav>menu</nav><article><h1>Gold hits record</h1><p>Gold traded at a new high.</p></article></body></html>`))
	}))
	defer ts.Close()

	tool := NewPageFetch()
	result, err := tool.Execute(context.Background(), map[string]any{"url": ts.URL})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "page", result.Type)
	assert.Equal(t, "Gold News", result.Title)
	assert.Contains(t, result.Markdown, "Gold hits record")
	assert.Contains(t, result.Markdown, "Gold traded at a new high.")
	assert.NotContains(t, result.Markdown, "menu", "navigation chrome is stripped")
}

func TestPageFetchTruncates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>0123456789012345678901234567890123456789</p></body></html>"))
	}))
	defer ts.Close()

	tool := NewPageFetch()
	result, err := tool.Execute(context.Background(), map[string]any{"url": ts.URL, "max_chars": float64(10)})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Markdown, "(truncated)")
}

func TestPageFetchRejectsBadURL(t *testing.T) {
	tool := NewPageFetch()

	_, err := tool.Execute(context.Background(), map[string]any{"url": "ftp://example.com/file"})
	require.Error(t, err)
	assert.True(t, errors.IsUser(err))

	_, err = tool.Execute(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.True(t, errors.IsUser(err))
}

func TestPageFetchUpstreamStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	tool := NewPageFetch()
	result, err := tool.Execute(context.Background(), map[string]any{"url": ts.URL})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "404")
}
