package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alita-ai/alita/internal/errors"
)

func TestFileSaveContent(t *testing.T) {
	dir := t.TempDir()
	tool := NewFileSave(dir)

	result, err := tool.Execute(context.Background(), map[string]any{
		"filename": "notes",
		"format":   "md",
		"content":  "# hello",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "file", result.Type)
	assert.Equal(t, "md", result.Format)
	assert.Equal(t, ".md", filepath.Ext(result.Path))

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "# hello", string(data))
}

func TestFileSaveTypeArgAlias(t *testing.T) {
	tool := NewFileSave(t.TempDir())

	// "type" is accepted in place of "format", and the alias table
	// normalizes doc to docx.
	result, err := tool.Execute(context.Background(), map[string]any{
		"filename": "notes",
		"type":     "doc",
		"content":  "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "docx", result.Format)
	assert.Equal(t, ".docx", filepath.Ext(result.Path))
}

func TestFileSaveRowsFromJSON(t *testing.T) {
	tool := NewFileSave(t.TempDir())

	// Decoded JSON rows arrive as []any of map[string]any.
	result, err := tool.Execute(context.Background(), map[string]any{
		"filename": "data",
		"format":   "csv",
		"rows": []any{
			map[string]any{"a": float64(1), "b": float64(2)},
			map[string]any{"a": float64(3)},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,\n", string(data))
}

func TestFileSaveRequiresPayload(t *testing.T) {
	tool := NewFileSave(t.TempDir())

	_, err := tool.Execute(context.Background(), map[string]any{"filename": "empty"})
	require.Error(t, err)
	assert.True(t, errors.IsUser(err))
}

func TestFileSaveUnsupportedFormat(t *testing.T) {
	tool := NewFileSave(t.TempDir())

	_, err := tool.Execute(context.Background(), map[string]any{
		"filename": "evil",
		"format":   "exe",
		"content":  "x",
	})
	require.Error(t, err)
	assert.True(t, errors.IsUser(err))
}
