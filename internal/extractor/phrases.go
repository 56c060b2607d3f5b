package extractor

import (
	"regexp"
	"strings"

	"github.com/alita-ai/alita/pkg/protocol"
)

// Phrase heuristics run against plain transcript text, for models that
// narrate an intent instead of emitting JSON.
var (
	// RE2 has no backreferences, so the closing quote is not required to
	// match the opening one. search("x') is accepted; harmless, the
	// inner text is what matters.
	searchCallPattern   = regexp.MustCompile("\\bsearch\\(([\"'`])([\\s\\S]*?)[\"'`]\\)")
	searchForPattern    = regexp.MustCompile(`(?i)\bsearch\s+for\s+([^.;\n]+)[.;\n]?`)
	timePhrasePattern   = regexp.MustCompile(`(?i)\b(?:what\s+time\s+is\s+it\s+in|current\s+time\s+in|local\s+time\s+in|time\s+in)\s+([A-Za-z ,\-]+)\b`)
	imagePhrasePattern  = regexp.MustCompile(`(?i)\b(?:generate|create|draw|make)\s+(?:an?\s+)?(?:image|picture|photo|illustration)\s+of\s+([^.;\n]+)[.;\n]?`)
	imageOfPattern      = regexp.MustCompile(`(?i)\bimage\s+of\s+([^.;\n]+)[.;\n]?`)
	recencyMarkers      = regexp.MustCompile(`(?i)\b(latest|current|today|breaking|now|as of now|recent)\b`)
	topicMarkers        = regexp.MustCompile(`(?i)\b(news|price|prices|time|weather|status|score|scores|update|updates|market)\b`)
)

// styleKeywords are sniffed out of an image phrase and passed as a
// separate style argument.
var styleKeywords = []string{
	"photorealistic", "watercolor", "3d", "anime", "cartoon", "line-art", "oil-painting",
}

// currentInfoLimit bounds the implicit-search query taken from free
// text.
const currentInfoLimit = 200

// FromText applies the phrase heuristics to plain text, in fixed
// order, and returns the first call found.
func FromText(text string) *protocol.ToolCall {
	if text == "" {
		return nil
	}

	if m := searchCallPattern.FindStringSubmatch(text); m != nil && m[2] != "" {
		return searchCall(m[2], 6)
	}
	if m := searchForPattern.FindStringSubmatch(text); m != nil {
		if query := strings.TrimSpace(m[1]); query != "" {
			return searchCall(query, 6)
		}
	}
	if m := timePhrasePattern.FindStringSubmatch(text); m != nil {
		if place := strings.TrimSpace(m[1]); place != "" {
			return searchCall("current time in "+place, 3)
		}
	}
	if call := imageCall(text); call != nil {
		return call
	}

	// Current-info heuristic: recency plus a live topic reads as an
	// implicit search, bounded to keep transcription noise out of the
	// query.
	if recencyMarkers.MatchString(text) && topicMarkers.MatchString(text) {
		query := text
		if runes := []rune(query); len(runes) > currentInfoLimit {
			query = string(runes[:currentInfoLimit])
		}
		return searchCall(strings.TrimSpace(query), 6)
	}
	return nil
}

func searchCall(query string, maxResults int) *protocol.ToolCall {
	return &protocol.ToolCall{
		Name: "search.web",
		Args: map[string]any{"query": query, "max_results": float64(maxResults)},
	}
}

// imageCall matches image phrasing and sniffs a style keyword out of
// the subject.
func imageCall(text string) *protocol.ToolCall {
	m := imagePhrasePattern.FindStringSubmatch(text)
	if m == nil {
		m = imageOfPattern.FindStringSubmatch(text)
	}
	if m == nil {
		return nil
	}
	prompt := strings.TrimSpace(m[1])
	if prompt == "" {
		return nil
	}

	args := map[string]any{"prompt": prompt}
	lower := strings.ToLower(text)
	for _, style := range styleKeywords {
		if strings.Contains(lower, style) {
			args["style"] = style
			break
		}
	}
	return &protocol.ToolCall{Name: "image.generate", Args: args}
}
