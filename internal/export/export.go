// Package export writes tool-call content to disk in a fixed set of
// document formats. This is deliberately minimal plumbing: each format
// has one small rendering policy and no layout engine.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alita-ai/alita/internal/errors"
)

// Supported export formats after alias normalization.
var supportedFormats = map[string]bool{
	"txt": true, "md": true, "json": true, "py": true,
	"pdf": true, "docx": true, "csv": true, "xlsx": true, "pptx": true,
}

// formatAliases normalizes common shorthand format names.
var formatAliases = map[string]string{
	"doc":      "docx",
	"ppt":      "pptx",
	"xls":      "xlsx",
	"markdown": "md",
	"text":     "txt",
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._\-]+`)

// Request describes one file.save invocation.
type Request struct {
	Filename string
	Format   string
	Title    string
	Content  string
	Rows     []map[string]any
}

// NormalizeFormat resolves the effective format from an explicit
// format argument or the filename extension, applying the alias table.
// An unsupported format is a caller error.
func NormalizeFormat(format, filename string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(format, ".")))
	if f == "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
		f = ext
	}
	if f == "" {
		f = "txt"
	}
	if alias, ok := formatAliases[f]; ok {
		f = alias
	}
	if !supportedFormats[f] {
		return "", errors.User(errors.CodeExportUnsupported, fmt.Sprintf("unsupported format: %s", f))
	}
	return f, nil
}

// SanitizeFilename strips the name to a safe character set and
// corrects its extension to the normalized format.
func SanitizeFilename(name, format string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		stamp := time.Now().Format("20060102-1504")
		base = fmt.Sprintf("export-%s-%s", stamp, uuid.NewString()[:8])
	}
	return base + "." + format
}

// Save renders the request under dir and returns the written path.
// Concurrent saves with the same explicit filename race; the later
// write wins.
func Save(dir string, req Request) (string, string, error) {
	format, err := NormalizeFormat(req.Format, req.Filename)
	if err != nil {
		return "", "", err
	}
	if req.Content == "" && len(req.Rows) == 0 {
		return "", "", errors.User(errors.CodeToolInvalidParams, "content or rows is required")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", errors.Wrap(err, errors.CodeExportWriteFailed, "cannot create output directory", errors.CategoryPermanent)
	}

	path := filepath.Join(dir, SanitizeFilename(req.Filename, format))
	title := req.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	switch format {
	case "txt", "md", "py":
		err = writeText(path, req)
	case "json":
		err = writeJSON(path, req)
	case "csv":
		err = writeCSV(path, req)
	case "pdf":
		err = writePDF(path, title, req)
	case "docx":
		err = writeDOCX(path, title, req)
	case "xlsx":
		err = writeXLSX(path, req)
	case "pptx":
		err = writePPTX(path, title, req)
	}
	if err != nil {
		return "", "", errors.Wrap(err, errors.CodeExportWriteFailed, fmt.Sprintf("failed to write %s", format), errors.CategoryPermanent)
	}

	return path, format, nil
}

func writeText(path string, req Request) error {
	content := req.Content
	if content == "" {
		content = rowsAsText(req.Rows)
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func writeJSON(path string, req Request) error {
	var data []byte
	var err error
	switch {
	case len(req.Rows) > 0:
		data, err = json.MarshalIndent(req.Rows, "", "  ")
	case json.Valid([]byte(req.Content)):
		data = []byte(req.Content)
	default:
		data, err = json.MarshalIndent(map[string]string{"content": req.Content}, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// writeCSV renders rows with a header that is the sorted union of all
// row keys; a key missing from a row renders as an empty field.
// Content-only requests are written as-is (the content may already be
// CSV text).
func writeCSV(path string, req Request) error {
	if len(req.Rows) == 0 {
		return os.WriteFile(path, []byte(req.Content), 0644)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := RowHeader(req.Rows)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range req.Rows {
		record := make([]string, len(header))
		for i, key := range header {
			if v, ok := row[key]; ok && v != nil {
				record[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// RowHeader returns the sorted union of all row keys.
func RowHeader(rows []map[string]any) []string {
	seen := make(map[string]bool)
	var header []string
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}
	sort.Strings(header)
	return header
}

func rowsAsText(rows []map[string]any) string {
	var sb strings.Builder
	header := RowHeader(rows)
	for _, row := range rows {
		var fields []string
		for _, key := range header {
			if v, ok := row[key]; ok && v != nil {
				fields = append(fields, fmt.Sprintf("%s: %v", key, v))
			}
		}
		sb.WriteString(strings.Join(fields, ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// bodyText is the flattened content used by the document formats.
func bodyText(req Request) string {
	if req.Content != "" {
		return req.Content
	}
	return rowsAsText(req.Rows)
}

// wrapFixed breaks text into fixed-width lines. Naive rune wrapping,
// no word-boundary awareness.
func wrapFixed(text string, width int) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		runes := []rune(raw)
		if len(runes) == 0 {
			lines = append(lines, "")
			continue
		}
		for len(runes) > width {
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		lines = append(lines, string(runes))
	}
	return lines
}
