package executor

import (
	"context"
	"time"

	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/internal/export"
	"github.com/alita-ai/alita/pkg/protocol"
)

// FileSave exports content or rows under the configured output
// directory. Format is the explicit format/type argument or inferred
// from the filename extension.
type FileSave struct {
	dir string
}

// NewFileSave creates the export tool rooted at dir.
func NewFileSave(dir string) *FileSave {
	return &FileSave{dir: dir}
}

// Name returns the tool's identifier.
func (t *FileSave) Name() string { return "file.save" }

// Description returns what the tool does.
func (t *FileSave) Description() string {
	return "Save content or rows to a file (txt, md, json, py, pdf, docx, csv, xlsx, pptx)"
}

// Execute writes one export.
func (t *FileSave) Execute(ctx context.Context, args map[string]any) (*protocol.ToolResult, error) {
	start := time.Now()

	req := export.Request{
		Filename: StringArg(args, "filename", "name"),
		Format:   StringArg(args, "format", "type"),
		Title:    StringArg(args, "title"),
		Content:  StringArg(args, "content", "text"),
		Rows:     rowsArg(args["rows"]),
	}
	if req.Content == "" && len(req.Rows) == 0 {
		return nil, errors.User(errors.CodeToolInvalidParams, "file.save: content or rows is required")
	}

	path, format, err := export.Save(t.dir, req)
	if err != nil {
		if errors.IsUser(err) {
			return nil, err
		}
		return TimedResult(protocol.NewErrorResult("file", "%v", err), start), nil
	}

	return TimedResult(&protocol.ToolResult{
		Success: true,
		Type:    "file",
		Path:    path,
		Format:  format,
	}, start), nil
}

// rowsArg coerces a decoded JSON rows argument into uniform field maps.
func rowsArg(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			return typed
		}
		return nil
	}
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			rows = append(rows, m)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return rows
}
