package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTextSearchCall(t *testing.T) {
	call := FromText(`Sure, I'll check. search("current gold price")`)
	require.NotNil(t, call)
	assert.Equal(t, "search.web", call.Name)
	assert.Equal(t, "current gold price", call.Args["query"])
	assert.Equal(t, float64(6), call.Args["max_results"])
}

func TestFromTextSearchFor(t *testing.T) {
	call := FromText("Let me search for tomorrow's weather in Oslo.")
	require.NotNil(t, call)
	assert.Equal(t, "search.web", call.Name)
	assert.Equal(t, "tomorrow's weather in Oslo", call.Args["query"])
}

func TestFromTextTimePhrase(t *testing.T) {
	call := FromText("Do you know what time is it in Tokyo?")
	require.NotNil(t, call)
	assert.Equal(t, "search.web", call.Name)
	assert.Equal(t, "current time in Tokyo", call.Args["query"])
	assert.Equal(t, float64(3), call.Args["max_results"])
}

func TestFromTextImagePhrase(t *testing.T) {
	call := FromText("Please generate an image of a fox in watercolor style.")
	require.NotNil(t, call)
	assert.Equal(t, "image.generate", call.Name)
	assert.Contains(t, call.Args["prompt"], "fox")
	assert.Equal(t, "watercolor", call.Args["style"])
}

func TestFromTextImageWithoutStyle(t *testing.T) {
	call := FromText("Show me an image of the Eiffel Tower")
	require.NotNil(t, call)
	assert.Equal(t, "image.generate", call.Name)
	_, hasStyle := call.Args["style"]
	assert.False(t, hasStyle)
}

func TestFromTextCurrentInfoHeuristic(t *testing.T) {
	call := FromText("I don't have access to the latest stock market data.")
	require.NotNil(t, call)
	assert.Equal(t, "search.web", call.Name)
	assert.Equal(t, "I don't have access to the latest stock market data.", call.Args["query"])
}

func TestFromTextCurrentInfoNeedsBothMarkers(t *testing.T) {
	// A recency marker alone is not enough.
	assert.Nil(t, FromText("That was the latest thing I remember."))
	// A topic marker alone is not enough either.
	assert.Nil(t, FromText("The weather can be unpredictable."))
}

func TestFromTextNoIntent(t *testing.T) {
	assert.Nil(t, FromText("Paris is the capital of France."))
	assert.Nil(t, FromText(""))
}
