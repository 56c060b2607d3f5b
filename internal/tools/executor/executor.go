// Package executor provides the tool execution interface and types.
package executor

import (
	"context"
	"time"

	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/pkg/protocol"
)

// Tool represents a callable tool.
type Tool interface {
	// Name returns the tool's identifier.
	Name() string

	// Description returns what the tool does.
	Description() string

	// Execute runs the tool with the given arguments. A non-nil error
	// means the request itself was bad (the HTTP surface maps user
	// errors to 400); upstream failures come back as a ToolResult
	// with Success=false.
	Execute(ctx context.Context, args map[string]any) (*protocol.ToolResult, error)
}

// TimedResult stamps a result with its execution duration.
func TimedResult(result *protocol.ToolResult, start time.Time) *protocol.ToolResult {
	result.DurationMs = time.Since(start).Milliseconds()
	return result
}

// Registry manages available tools for execution.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tool names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Execute runs a tool by name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (*protocol.ToolResult, error) {
	tool, ok := r.Get(name)
	if !ok {
		return nil, errors.User(errors.CodeToolNotFound, "unknown tool: "+name)
	}
	return tool.Execute(ctx, args)
}

// StringArg returns the first present string argument among keys.
func StringArg(args map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := args[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// IntArg returns the first present numeric argument among keys.
// JSON numbers decode as float64; both forms are accepted.
func IntArg(args map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := args[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		}
	}
	return 0
}
