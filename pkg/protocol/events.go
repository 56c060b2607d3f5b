package protocol

// SessionEvent is a realtime data-channel event forwarded by the
// browser over the session bridge. Only the fields the extractor
// cares about are modeled; unknown event types pass through unused.
type SessionEvent struct {
	Type       string `json:"type"`
	EventID    string `json:"event_id,omitempty"`
	ResponseID string `json:"response_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`
	Delta      string `json:"delta,omitempty"`
	Text       string `json:"text,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

// Session event types the bridge inspects.
const (
	EventTextDelta            = "response.text.delta"
	EventTextDone             = "response.text.done"
	EventAudioTranscriptDelta = "response.audio_transcript.delta"
	EventAudioTranscriptDone  = "response.audio_transcript.done"
	EventResponseDone         = "response.done"
)

// ServerEvent is pushed from the proxy to the browser over the
// session bridge.
type ServerEvent struct {
	Type   string      `json:"type"`
	Call   *ToolCall   `json:"call,omitempty"`
	Result *ToolResult `json:"result,omitempty"`
	Text   string      `json:"text,omitempty"`
}

// Server event types.
const (
	// ServerEventCancel asks the browser to forward a response.cancel
	// to the voice session before the tool result lands.
	ServerEventCancel = "response.cancel"

	// ServerEventToolResult carries a completed ToolResult.
	ServerEventToolResult = "tool.result"

	// ServerEventInstruction carries a synthesized follow-up
	// instruction grounding the assistant's next answer in tool output.
	ServerEventInstruction = "session.instruction"

	// ServerEventError carries a transcript-level error line.
	ServerEventError = "session.error"
)
