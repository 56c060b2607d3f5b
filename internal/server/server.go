// Package server exposes the proxy's HTTP surface: health preflight,
// SDP relay, tool dispatch and the realtime session bridge.
package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/alita-ai/alita/internal/config"
	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/internal/relay"
	"github.com/alita-ai/alita/internal/stats"
	"github.com/alita-ai/alita/internal/tools"
	"github.com/alita-ai/alita/pkg/protocol"
)

// Server handles proxy requests.
type Server struct {
	cfg   *config.Config
	relay *relay.Relay
	tools *tools.Registry
	stats *stats.Collector
}

// New creates a server from configuration and wires the tool registry.
func New(cfg *config.Config) *Server {
	registry := tools.NewRegistry()
	registry.Initialize(cfg)
	return &Server{
		cfg:   cfg,
		relay: relay.New(cfg.Realtime.BaseURL, cfg.Realtime.Model, cfg.Realtime.APIKey),
		tools: registry,
		stats: stats.NewCollector(),
	}
}

// WithRelay swaps the relay (used by tests).
func (s *Server) WithRelay(r *relay.Relay) *Server {
	s.relay = r
	return s
}

// Tools returns the tool registry.
func (s *Server) Tools() *tools.Registry { return s.tools }

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/sdp", s.handleSDP)
	mux.HandleFunc("/tool", s.handleTool)
	mux.HandleFunc("/tools", s.handleToolList)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/session", s.handleSession)
	return s.cors(mux)
}

// cors answers preflights and stamps allowed origins on every response.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// handleHealth reports readiness plus the configured model, so clients
// can preflight before requesting microphone access.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  s.cfg.Realtime.Model,
	})
}

// handleSDP relays one offer/answer exchange. The upstream status and
// body pass through unchanged.
func (s *Server) handleSDP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	offer, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read offer", http.StatusBadRequest)
		return
	}

	status, answer, err := s.relay.Exchange(r.Context(), offer)
	if err != nil {
		log.Printf("sdp relay error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/sdp")
	w.WriteHeader(status)
	w.Write(answer)
}

// handleTool dispatches one {name, args} call. Bad requests map to
// 400, missing configuration to 500; a tool's upstream failure is a
// 200 with success=false.
func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var call protocol.ToolCall
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		writeToolError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if call.Name == "" {
		writeToolError(w, http.StatusBadRequest, "tool name is required")
		return
	}

	result, err := s.tools.Execute(r.Context(), call)
	if err != nil {
		s.stats.Record(call.Name, false, 0)
		switch errors.GetCategory(err) {
		case errors.CategoryUser:
			writeToolError(w, http.StatusBadRequest, err.Error())
		case errors.CategoryConfig:
			writeToolError(w, http.StatusInternalServerError, err.Error())
		default:
			writeToolError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.stats.Record(call.Name, result.Success, time.Duration(result.DurationMs)*time.Millisecond)
	writeJSON(w, http.StatusOK, result)
}

// handleStats reports uptime and per-tool invocation counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// handleToolList advertises tool schemas in OpenAI function format.
func (s *Server) handleToolList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": s.tools.ToOpenAIFormat(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeToolError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
