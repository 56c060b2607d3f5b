package executor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/pkg/protocol"
)

// DefaultPageMaxChars bounds extracted page content.
const DefaultPageMaxChars = 8000

// PageFetch fetches a URL and extracts readable content as Markdown.
type PageFetch struct {
	client *http.Client
}

// NewPageFetch creates the page tool.
func NewPageFetch() *PageFetch {
	return &PageFetch{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the tool's identifier.
func (t *PageFetch) Name() string { return "page.fetch" }

// Description returns what the tool does.
func (t *PageFetch) Description() string {
	return "Fetch a URL and return its readable content as Markdown"
}

// Execute fetches and converts one page.
func (t *PageFetch) Execute(ctx context.Context, args map[string]any) (*protocol.ToolResult, error) {
	start := time.Now()

	target := StringArg(args, "url")
	if target == "" {
		return nil, errors.User(errors.CodeToolInvalidParams, "page.fetch: url is required")
	}
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, errors.User(errors.CodeToolInvalidParams, fmt.Sprintf("page.fetch: invalid url %q", target))
	}

	maxChars := IntArg(args, "max_chars")
	if maxChars <= 0 {
		maxChars = DefaultPageMaxChars
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "AlitaOS/1.0")

	resp, err := t.client.Do(req)
	if err != nil {
		return TimedResult(protocol.NewErrorResult("page", "failed to fetch URL: %v", err), start), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TimedResult(protocol.NewErrorResult("page", "HTTP error: %d %s", resp.StatusCode, resp.Status), start), nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return TimedResult(protocol.NewErrorResult("page", "failed to parse page: %v", err), start), nil
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	sel := doc.Find("article").First()
	if sel.Length() == 0 {
		sel = doc.Find("body").First()
	}
	html, err := sel.Html()
	if err != nil {
		return TimedResult(protocol.NewErrorResult("page", "failed to extract content: %v", err), start), nil
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return TimedResult(protocol.NewErrorResult("page", "failed to convert content: %v", err), start), nil
	}

	markdown = strings.TrimSpace(markdown)
	if runes := []rune(markdown); len(runes) > maxChars {
		markdown = string(runes[:maxChars]) + "\n\n... (truncated)"
	}

	return TimedResult(&protocol.ToolResult{
		Success:  true,
		Type:     "page",
		URL:      target,
		Title:    title,
		Markdown: markdown,
	}, start), nil
}
