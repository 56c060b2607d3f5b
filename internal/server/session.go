package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/alita-ai/alita/internal/extractor"
	"github.com/alita-ai/alita/internal/stats"
	"github.com/alita-ai/alita/pkg/protocol"
)

const toolExecTimeout = 60 * time.Second

// session bridges one WebSocket connection: the browser streams its
// realtime-session events in, and the proxy streams back cancel
// requests, tool results and follow-up instructions. Guard state is
// scoped to the connection, never shared across sessions.
type session struct {
	id        string
	conn      *websocket.Conn
	writeMu   sync.Mutex
	extractor *extractor.Extractor
	stats     *stats.Collector
	tools     interface {
		Execute(ctx context.Context, call protocol.ToolCall) (*protocol.ToolResult, error)
	}
}

// handleSession upgrades the connection and runs the event loop until
// the client disconnects.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.originAllowed(origin)
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("session upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sess := &session{
		id:        uuid.NewString()[:8],
		conn:      conn,
		extractor: extractor.New(extractor.NewGuard()),
		stats:     s.stats,
		tools:     s.tools,
	}
	log.Printf("session %s opened from %s", sess.id, r.RemoteAddr)
	sess.run(r.Context())
	log.Printf("session %s closed", sess.id)
}

func (sess *session) run(ctx context.Context) {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		var event protocol.SessionEvent
		if err := sess.conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session read error: %v", err)
			}
			return
		}

		for _, match := range sess.extractor.Scan(&event) {
			// Cancel the in-progress voice answer before the tool runs,
			// so a generic spoken fallback never races the grounded one.
			sess.send(protocol.ServerEvent{Type: protocol.ServerEventCancel})

			wg.Add(1)
			go func(m *extractor.Match) {
				defer wg.Done()
				sess.dispatch(ctx, m)
			}(match)
		}
	}
}

func (sess *session) dispatch(ctx context.Context, m *extractor.Match) {
	defer m.Release()

	execCtx, cancel := context.WithTimeout(ctx, toolExecTimeout)
	defer cancel()

	result, err := sess.tools.Execute(execCtx, m.Call)
	if err != nil {
		sess.record(m.Call.Name, false, 0)
		sess.send(protocol.ServerEvent{
			Type: protocol.ServerEventError,
			Text: m.Call.Name + " failed: " + err.Error(),
		})
		return
	}

	sess.record(m.Call.Name, result.Success, time.Duration(result.DurationMs)*time.Millisecond)
	sess.send(protocol.ServerEvent{
		Type:   protocol.ServerEventToolResult,
		Call:   &m.Call,
		Result: result,
	})
	if instruction := extractor.Instruction(result); instruction != "" {
		sess.send(protocol.ServerEvent{
			Type: protocol.ServerEventInstruction,
			Text: instruction,
		})
	}
}

// record is nil-safe so sessions built without a collector (tests)
// skip stats.
func (sess *session) record(tool string, success bool, duration time.Duration) {
	if sess.stats != nil {
		sess.stats.Record(tool, success, duration)
	}
}

// send serializes writes; results from concurrent tool dispatches may
// arrive in any order.
func (sess *session) send(event protocol.ServerEvent) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.WriteJSON(event); err != nil {
		log.Printf("session write error: %v", err)
	}
}
