package extractor

import "strings"

// maxBufferedJSON caps a single reassembled object. A stream that
// overflows it was not a tool call; the buffer resets.
const maxBufferedJSON = 16 * 1024

// StreamBuffer reassembles JSON objects from text deltas. It stays
// idle until a "{" arrives, then tracks brace depth across fragments,
// ignoring braces inside string literals, and emits each object when
// depth returns to zero.
type StreamBuffer struct {
	buf       strings.Builder
	depth     int
	inString  bool
	escaped   bool
	buffering bool
}

// NewStreamBuffer creates an empty buffer.
func NewStreamBuffer() *StreamBuffer {
	return &StreamBuffer{}
}

// Feed consumes one fragment and returns any complete JSON objects it
// closed. Text outside objects is discarded.
func (b *StreamBuffer) Feed(fragment string) []string {
	var complete []string
	for _, r := range fragment {
		if !b.buffering {
			if r == '{' {
				b.buffering = true
				b.depth = 1
				b.buf.WriteRune(r)
			}
			continue
		}

		b.buf.WriteRune(r)
		if b.buf.Len() > maxBufferedJSON {
			b.reset()
			continue
		}

		if b.inString {
			switch {
			case b.escaped:
				b.escaped = false
			case r == '\\':
				b.escaped = true
			case r == '"':
				b.inString = false
			}
			continue
		}

		switch r {
		case '"':
			b.inString = true
		case '{':
			b.depth++
		case '}':
			b.depth--
			if b.depth == 0 {
				complete = append(complete, b.buf.String())
				b.reset()
			}
		}
	}
	return complete
}

// Reset drops any partial object, for use at turn boundaries.
func (b *StreamBuffer) Reset() {
	b.reset()
}

func (b *StreamBuffer) reset() {
	b.buf.Reset()
	b.depth = 0
	b.inString = false
	b.escaped = false
	b.buffering = false
}
