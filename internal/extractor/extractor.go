// Package extractor turns streamed assistant output into tool calls.
//
// Extraction flow:
// 1. Text deltas feed a brace-depth buffer that reassembles JSON objects
// 2. Reassembled objects run through an ordered matcher cascade
// 3. Completed transcripts get plain-phrase heuristics
// 4. Every recognized call passes the session's dedup guard before dispatch
package extractor

import (
	"fmt"
	"strings"

	"github.com/alita-ai/alita/pkg/protocol"
)

// Match is a recognized, guard-claimed tool call. Release must be
// called exactly once when execution finishes.
type Match struct {
	Call       protocol.ToolCall
	ResponseID string
	Release    func()
}

// Extractor scans one session's event stream. It is not safe for
// concurrent use; each connection owns its own extractor.
type Extractor struct {
	buffer *StreamBuffer
	guard  *Guard
}

// New creates an extractor bound to the session's guard.
func New(guard *Guard) *Extractor {
	return &Extractor{
		buffer: NewStreamBuffer(),
		guard:  guard,
	}
}

// Scan consumes one session event and returns any tool calls it
// produced, already claimed against the guard. Unmatched or duplicate
// candidates are dropped silently.
func (e *Extractor) Scan(event *protocol.SessionEvent) []*Match {
	switch event.Type {
	case protocol.EventTextDelta, protocol.EventAudioTranscriptDelta:
		var matches []*Match
		for _, candidate := range e.buffer.Feed(event.Delta) {
			if call := Normalize(candidate); call != nil {
				if m := e.claim(*call, event.ResponseID); m != nil {
					matches = append(matches, m)
				}
			}
		}
		return matches

	case protocol.EventTextDone, protocol.EventAudioTranscriptDone:
		text := event.Text
		if text == "" {
			text = event.Transcript
		}
		if call := FromText(text); call != nil {
			if m := e.claim(*call, event.ResponseID); m != nil {
				return []*Match{m}
			}
		}
		return nil

	case protocol.EventResponseDone:
		// A turn boundary discards any half-buffered object.
		e.buffer.Reset()
		return nil
	}
	return nil
}

func (e *Extractor) claim(call protocol.ToolCall, responseID string) *Match {
	release, ok := e.guard.Begin(call, responseID)
	if !ok {
		return nil
	}
	return &Match{Call: call, ResponseID: responseID, Release: release}
}

// Instruction renders a tool result as a follow-up instruction for the
// voice session, so the assistant narrates an answer grounded in the
// result instead of a generic refusal.
func Instruction(result *protocol.ToolResult) string {
	if result == nil || !result.Success {
		return ""
	}
	switch result.Type {
	case "search":
		if len(result.Results) == 0 {
			return fmt.Sprintf("The web search for %q returned no results. Tell the user briefly.", result.Query)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Here are web search results for %q. Summarize them for the user, citing sources by number.\n", result.Query)
		for i, r := range result.Results {
			fmt.Fprintf(&b, "[%d] %s — %s (%s)\n", i+1, r.Title, r.Snippet, r.URL)
		}
		return b.String()

	case "time":
		t := result.Time
		if t == nil {
			return ""
		}
		return fmt.Sprintf("The current time in %s is %s (%s, UTC%s). Tell the user in one natural sentence.",
			t.Place, t.DateTimeISO, t.Abbreviation, t.UTCOffset)

	case "image":
		return "The requested image was generated and is now shown to the user. Briefly confirm it."

	case "file":
		return fmt.Sprintf("The file was saved as %s. Briefly confirm it to the user.", result.Path)

	case "page":
		if result.Markdown == "" {
			return ""
		}
		return fmt.Sprintf("Content fetched from %s titled %q:\n%s\nSummarize the key points for the user.",
			result.URL, result.Title, result.Markdown)
	}
	return ""
}
