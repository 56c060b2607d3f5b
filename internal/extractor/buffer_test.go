package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferReassemblesFragmentedJSON(t *testing.T) {
	buf := NewStreamBuffer()

	assert.Empty(t, buf.Feed(`I'll search for that. {"name": "sea`))
	assert.Empty(t, buf.Feed(`rch.web", "args": {"query": "gold`))

	complete := buf.Feed(` price"}}`)
	require.Len(t, complete, 1)
	assert.JSONEq(t, `{"name": "search.web", "args": {"query": "gold price"}}`, complete[0])
}

func TestBufferIgnoresBracesInStrings(t *testing.T) {
	buf := NewStreamBuffer()

	complete := buf.Feed(`{"query": "what does {x} mean"}`)
	require.Len(t, complete, 1)
	assert.JSONEq(t, `{"query": "what does {x} mean"}`, complete[0])
}

func TestBufferHandlesEscapedQuotes(t *testing.T) {
	buf := NewStreamBuffer()

	complete := buf.Feed(`{"query": "say \"hi\" {"}`)
	require.Len(t, complete, 1)
}

func TestBufferEmitsMultipleObjects(t *testing.T) {
	buf := NewStreamBuffer()

	complete := buf.Feed(`{"a": 1} noise {"b": 2}`)
	require.Len(t, complete, 2)
	assert.JSONEq(t, `{"a": 1}`, complete[0])
	assert.JSONEq(t, `{"b": 2}`, complete[1])
}

func TestBufferDiscardsPlainText(t *testing.T) {
	buf := NewStreamBuffer()
	assert.Empty(t, buf.Feed("just some narration without any payload"))
}

func TestBufferResetDropsPartial(t *testing.T) {
	buf := NewStreamBuffer()

	assert.Empty(t, buf.Feed(`{"name": "sea`))
	buf.Reset()

	// The dangling close brace from the dropped object is ignored.
	assert.Empty(t, buf.Feed(`rch.web"}`))

	complete := buf.Feed(`{"query": "fresh"}`)
	require.Len(t, complete, 1)
}

func TestBufferCapsRunawayObject(t *testing.T) {
	buf := NewStreamBuffer()

	assert.Empty(t, buf.Feed(`{"blob": "`+strings.Repeat("x", maxBufferedJSON+10)))

	// The buffer recovered and accepts a normal object.
	complete := buf.Feed(`"}{"query": "ok"}`)
	require.Len(t, complete, 1)
	assert.JSONEq(t, `{"query": "ok"}`, complete[0])
}
