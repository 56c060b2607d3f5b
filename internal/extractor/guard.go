package extractor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/alita-ai/alita/pkg/protocol"
)

// DefaultDedupWindow is how long an identical call stays suppressed
// after it is claimed.
const DefaultDedupWindow = 12 * time.Second

// Guard suppresses duplicate tool calls within one session. A call is
// blocked when an identical call is currently running, ran within the
// dedup window, or the model turn it came from already produced a call.
type Guard struct {
	mu       sync.Mutex
	window   time.Duration
	recent   map[string]time.Time
	inflight map[string]struct{}
	handled  map[string]time.Time
	now      func() time.Time
}

// NewGuard creates a guard with the default window.
func NewGuard() *Guard {
	return &Guard{
		window:   DefaultDedupWindow,
		recent:   make(map[string]time.Time),
		inflight: make(map[string]struct{}),
		handled:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// WithClock swaps the time source (used by tests).
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Key builds the canonical identity of a call. json.Marshal emits map
// keys in sorted order, so argument order never changes the key.
func Key(call protocol.ToolCall) string {
	args, err := json.Marshal(call.Args)
	if err != nil {
		return call.Name
	}
	return call.Name + ":" + string(args)
}

// Begin claims the call. The dedup window runs from the claim, so a
// long-running call does not extend its own suppression. When ok, the
// caller must invoke release once the call finishes; release only
// clears the in-flight marker. When not ok, the call is a duplicate
// and must be dropped.
func (g *Guard) Begin(call protocol.ToolCall, responseID string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	key := Key(call)

	if _, running := g.inflight[key]; running {
		return nil, false
	}
	if last, seen := g.recent[key]; seen && now.Sub(last) < g.window {
		return nil, false
	}
	if responseID != "" {
		if _, done := g.handled[responseID]; done {
			return nil, false
		}
		g.handled[responseID] = now
	}

	g.recent[key] = now
	g.inflight[key] = struct{}{}
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.inflight, key)
	}, true
}
