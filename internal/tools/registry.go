// Package tools provides a unified tool registry with schemas and executors.
package tools

import (
	"context"

	"github.com/alita-ai/alita/internal/config"
	"github.com/alita-ai/alita/internal/tools/executor"
	"github.com/alita-ai/alita/internal/tools/schemas"
	"github.com/alita-ai/alita/pkg/protocol"
)

// Registry combines schemas and executors for complete tool management.
type Registry struct {
	schemas   *schemas.Registry
	executors *executor.Registry
}

// NewRegistry creates a new unified tool registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:   schemas.NewRegistry(),
		executors: executor.NewRegistry(),
	}
}

// Schemas returns the schema registry.
func (r *Registry) Schemas() *schemas.Registry {
	return r.schemas
}

// Executors returns the executor registry.
func (r *Registry) Executors() *executor.Registry {
	return r.executors
}

// Register registers both a schema and executor for a tool.
func (r *Registry) Register(tool executor.Tool, schema *schemas.Schema) {
	r.executors.Register(tool)
	r.schemas.Register(schema)
}

// ToOpenAIFormat returns all schemas in OpenAI function calling format.
func (r *Registry) ToOpenAIFormat() []map[string]interface{} {
	return r.schemas.ToOpenAIFormat()
}

// Execute validates the call against its schema, then runs it.
func (r *Registry) Execute(ctx context.Context, call protocol.ToolCall) (*protocol.ToolResult, error) {
	if schema, ok := r.schemas.Get(call.Name); ok {
		if err := schema.Validate(call.Args); err != nil {
			return nil, err
		}
	}
	return r.executors.Execute(ctx, call.Name, call.Args)
}

// Initialize registers all tools with their schemas and executors.
func (r *Registry) Initialize(cfg *config.Config) {
	r.Register(executor.NewImageGenerate(cfg.Image.APIKey, cfg.Image.Model),
		schemas.NewSchema("image.generate", "Generate an image from a text prompt").
			AddParam("prompt", "string", "What the image should show", true).
			AddParamWithEnum("size", "string", "Image size", []string{"1024x1024", "1792x1024", "1024x1792"}, false).
			AddParam("style", "string", "Visual style, folded into the prompt", false).
			Build())

	r.Register(executor.NewWebSearch(cfg.Search.TavilyAPIKey, cfg.Search.DefaultProvider),
		schemas.NewSchema("search.web", "Search the web for current information").
			AddParam("query", "string", "Search query", true).
			AddParam("max_results", "integer", "Maximum number of results", false).
			AddParamWithEnum("provider", "string", "Search backend", []string{"auto", "tavily", "duckduckgo"}, false).
			Build())

	r.Register(executor.NewFileSave(cfg.Paths.SavedDir),
		schemas.NewSchema("file.save", "Save content or tabular rows to a file").
			AddParam("content", "string", "Text content to save", false).
			AddParam("rows", "array", "Tabular rows as objects, for csv and xlsx", false).
			AddParam("filename", "string", "Target filename", false).
			AddParam("format", "string", "Output format: txt, md, json, py, pdf, docx, csv, xlsx, pptx", false).
			AddParam("title", "string", "Document title, used by pdf, docx and pptx", false).
			Build())

	r.Register(executor.NewPageFetch(),
		schemas.NewSchema("page.fetch", "Fetch a URL and return readable content as Markdown").
			AddParam("url", "string", "The http or https URL to fetch", true).
			AddParam("max_chars", "integer", "Truncate content beyond this length", false).
			Build())
}
