package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alita-ai/alita/pkg/protocol"
)

func TestScanReassemblesDeltas(t *testing.T) {
	ex := New(NewGuard())

	matches := ex.Scan(&protocol.SessionEvent{
		Type:       protocol.EventTextDelta,
		ResponseID: "resp_1",
		Delta:      `{"name": "search.web", "args": {"qu`,
	})
	assert.Empty(t, matches)

	matches = ex.Scan(&protocol.SessionEvent{
		Type:       protocol.EventTextDelta,
		ResponseID: "resp_1",
		Delta:      `ery": "gold price"}}`,
	})
	require.Len(t, matches, 1)
	defer matches[0].Release()

	assert.Equal(t, "search.web", matches[0].Call.Name)
	assert.Equal(t, "gold price", matches[0].Call.Args["query"])
	assert.Equal(t, "resp_1", matches[0].ResponseID)
}

func TestScanSuppressesDuplicateAcrossListeners(t *testing.T) {
	ex := New(NewGuard())

	// The same payload arriving twice, as happens when both the named
	// and the generic data-channel listener relay a turn.
	payload := `{"name": "search.web", "args": {"query": "gold price"}}`

	first := ex.Scan(&protocol.SessionEvent{Type: protocol.EventTextDelta, ResponseID: "resp_1", Delta: payload})
	require.Len(t, first, 1)
	defer first[0].Release()

	second := ex.Scan(&protocol.SessionEvent{Type: protocol.EventTextDelta, ResponseID: "resp_1", Delta: payload})
	assert.Empty(t, second)
}

func TestScanTranscriptPhrase(t *testing.T) {
	ex := New(NewGuard())

	matches := ex.Scan(&protocol.SessionEvent{
		Type:       protocol.EventAudioTranscriptDone,
		ResponseID: "resp_1",
		Transcript: `Sure, I'll check. search("current gold price")`,
	})
	require.Len(t, matches, 1)
	defer matches[0].Release()

	assert.Equal(t, "search.web", matches[0].Call.Name)
	assert.Equal(t, "current gold price", matches[0].Call.Args["query"])
}

func TestScanTurnBoundaryDropsPartial(t *testing.T) {
	ex := New(NewGuard())

	ex.Scan(&protocol.SessionEvent{Type: protocol.EventTextDelta, Delta: `{"name": "sea`})
	ex.Scan(&protocol.SessionEvent{Type: protocol.EventResponseDone})

	// The tail of the dropped object must not complete anything.
	matches := ex.Scan(&protocol.SessionEvent{Type: protocol.EventTextDelta, Delta: `rch.web"}`})
	assert.Empty(t, matches)
}

func TestInstructionSearchCitations(t *testing.T) {
	text := Instruction(&protocol.ToolResult{
		Success: true,
		Type:    "search",
		Query:   "gold price",
		Results: []protocol.SearchResult{
			{Title: "Gold hits record", Snippet: "Gold traded at...", URL: "https://example.com/a"},
			{Title: "Market update", Snippet: "Commodities rose...", URL: "https://example.com/b"},
		},
	})
	assert.Contains(t, text, `"gold price"`)
	assert.Contains(t, text, "[1] Gold hits record")
	assert.Contains(t, text, "[2] Market update")
}

func TestInstructionSpokenTime(t *testing.T) {
	text := Instruction(&protocol.ToolResult{
		Success: true,
		Type:    "time",
		Time: &protocol.TimeAnswer{
			Place:        "Tokyo",
			TZ:           "Asia/Tokyo",
			DateTimeISO:  "2025-01-15T09:30:00+09:00",
			UTCOffset:    "+09:00",
			Abbreviation: "JST",
		},
	})
	assert.Contains(t, text, "Tokyo")
	assert.Contains(t, text, "2025-01-15T09:30:00+09:00")
}

func TestInstructionSkipsFailures(t *testing.T) {
	assert.Empty(t, Instruction(nil))
	assert.Empty(t, Instruction(&protocol.ToolResult{Success: false, Type: "search", Error: "boom"}))
}
