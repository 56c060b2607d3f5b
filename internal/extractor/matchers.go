package extractor

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/alita-ai/alita/pkg/protocol"
)

// matcher inspects one parsed JSON candidate and returns a normalized
// call, or nil when the shape does not apply.
type matcher func(doc gjson.Result) *protocol.ToolCall

// matchers is the cascade, in priority order. The first match wins and
// later shapes are never consulted.
var matchers = []matcher{
	matchWrappedTool,
	matchNameArgs,
	matchFunctionCall,
	matchActionCountry,
	matchBareImage,
	matchBareQuery,
	matchNestedInput,
}

// toolAliases folds the name variants models emit into canonical tool
// names.
var toolAliases = map[string]string{
	"generate_image": "image.generate",
	"image":          "image.generate",
	"create_image":   "image.generate",
	"web_search":     "search.web",
	"search":         "search.web",
	"save_file":      "file.save",
	"file":           "file.save",
	"fetch_page":     "page.fetch",
	"fetch_url":      "page.fetch",
}

// Normalize parses a reconstructed JSON candidate and runs the matcher
// cascade. A candidate that fails to parse or matches no shape returns
// nil; such fragments are discarded silently.
func Normalize(raw string) *protocol.ToolCall {
	if !gjson.Valid(raw) {
		return nil
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return nil
	}
	for _, match := range matchers {
		if call := match(doc); call != nil {
			canonicalize(call)
			return call
		}
	}
	return nil
}

// canonicalize resolves name aliases and fills per-tool defaults.
func canonicalize(call *protocol.ToolCall) {
	if mapped, ok := toolAliases[strings.ToLower(call.Name)]; ok {
		call.Name = mapped
	}
	if call.Args == nil {
		call.Args = make(map[string]any)
	}
	if call.Name == "search.web" {
		if _, ok := call.Args["max_results"]; !ok {
			call.Args["max_results"] = float64(6)
		}
	}
}

// matchWrappedTool handles {tool:{name, args}}.
func matchWrappedTool(doc gjson.Result) *protocol.ToolCall {
	tool := doc.Get("tool")
	if !tool.IsObject() {
		return nil
	}
	name := tool.Get("name").String()
	if name == "" {
		return nil
	}
	return &protocol.ToolCall{Name: name, Args: argsMap(tool.Get("args"))}
}

// matchNameArgs handles {name, args}.
func matchNameArgs(doc gjson.Result) *protocol.ToolCall {
	name := doc.Get("name").String()
	if name == "" {
		return nil
	}
	return &protocol.ToolCall{Name: name, Args: argsMap(doc.Get("args"))}
}

// matchFunctionCall handles the OpenAI function-call shape
// {function, arguments} where arguments may be a nested object or a
// JSON string.
func matchFunctionCall(doc gjson.Result) *protocol.ToolCall {
	fn := doc.Get("function")
	name := fn.String()
	if fn.IsObject() {
		name = fn.Get("name").String()
	}
	if name == "" {
		return nil
	}
	args := doc.Get("arguments")
	if args.Type == gjson.String && gjson.Valid(args.String()) {
		args = gjson.Parse(args.String())
	}
	return &protocol.ToolCall{Name: name, Args: argsMap(args)}
}

// matchActionCountry handles the {action, country} shape some models
// emit for time questions.
func matchActionCountry(doc gjson.Result) *protocol.ToolCall {
	action := doc.Get("action").String()
	country := doc.Get("country").String()
	if action == "" || country == "" {
		return nil
	}
	query := action + " " + country
	if strings.Contains(strings.ToLower(action), "time") {
		query = "current time in " + country
	}
	return &protocol.ToolCall{
		Name: "search.web",
		Args: map[string]any{"query": query},
	}
}

// matchBareImage handles a bare {prompt} or {description} object.
func matchBareImage(doc gjson.Result) *protocol.ToolCall {
	prompt := doc.Get("prompt").String()
	if prompt == "" {
		prompt = doc.Get("description").String()
	}
	if prompt == "" {
		return nil
	}
	return &protocol.ToolCall{
		Name: "image.generate",
		Args: map[string]any{"prompt": prompt},
	}
}

// matchBareQuery handles a bare {query} object.
func matchBareQuery(doc gjson.Result) *protocol.ToolCall {
	query := doc.Get("query").String()
	if query == "" {
		return nil
	}
	return &protocol.ToolCall{
		Name: "search.web",
		Args: map[string]any{"query": query},
	}
}

// matchNestedInput handles {input:{prompt|description}}.
func matchNestedInput(doc gjson.Result) *protocol.ToolCall {
	input := doc.Get("input")
	if !input.IsObject() {
		return nil
	}
	return matchBareImage(input)
}

// argsMap decodes a gjson object into the map form the dispatcher
// consumes. Non-objects yield an empty map.
func argsMap(r gjson.Result) map[string]any {
	if !r.IsObject() {
		return make(map[string]any)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(r.Raw), &m); err != nil || m == nil {
		return make(map[string]any)
	}
	return m
}
