package protocol

import "fmt"

// ToolCall represents a request to execute a tool on behalf of a
// live assistant session.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// SearchResult is a single web search hit, kept in provider order.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Source  string  `json:"source"`
	Score   float64 `json:"score,omitempty"`
}

// TimeAnswer is a resolved local time for a place.
type TimeAnswer struct {
	Place        string `json:"place"`
	TZ           string `json:"tz"` // IANA zone id
	DateTimeISO  string `json:"datetime_iso"`
	UTCOffset    string `json:"utc_offset"`
	Abbreviation string `json:"abbreviation"`
	SourceURL    string `json:"source_url"`
}

// ToolResult represents the result of a tool execution. Type
// discriminates which of the optional fields are populated.
type ToolResult struct {
	Success bool   `json:"success"`
	Type    string `json:"type,omitempty"` // image, search, time, file, page
	Error   string `json:"error,omitempty"`

	// image
	Prompt  string `json:"prompt,omitempty"`
	DataURL string `json:"data_url,omitempty"`

	// search
	Query    string         `json:"query,omitempty"`
	Provider string         `json:"provider,omitempty"`
	Results  []SearchResult `json:"results,omitempty"`

	// time
	Time *TimeAnswer `json:"time,omitempty"`

	// file
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"`

	// page
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	Markdown string `json:"markdown,omitempty"`

	DurationMs int64 `json:"duration_ms,omitempty"`
}

// NewErrorResult builds a failed ToolResult.
func NewErrorResult(typ, format string, args ...any) *ToolResult {
	return &ToolResult{Success: false, Type: typ, Error: fmt.Sprintf(format, args...)}
}
