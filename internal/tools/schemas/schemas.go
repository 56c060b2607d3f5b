// Package schemas provides JSON Schema definitions for the proxy's
// tools, used both for request validation and for advertising tool
// definitions to the realtime session in OpenAI function format.
package schemas

import (
	"fmt"
	"sort"

	"github.com/alita-ai/alita/internal/errors"
)

// Schema defines a tool's JSON schema.
type Schema struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// SchemaBuilder provides a fluent interface for building tool schemas.
type SchemaBuilder struct {
	schema *Schema
}

// NewSchema creates a new schema builder with the given name and description.
func NewSchema(name, description string) *SchemaBuilder {
	return &SchemaBuilder{
		schema: &Schema{
			Name:        name,
			Description: description,
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": make(map[string]interface{}),
				"required":   make([]string, 0),
			},
		},
	}
}

// AddParam adds a parameter to the schema.
func (b *SchemaBuilder) AddParam(name, paramType, description string, required bool) *SchemaBuilder {
	props := b.schema.Parameters["properties"].(map[string]interface{})
	props[name] = map[string]interface{}{
		"type":        paramType,
		"description": description,
	}
	if required {
		req := b.schema.Parameters["required"].([]string)
		b.schema.Parameters["required"] = append(req, name)
	}
	return b
}

// AddParamWithEnum adds a parameter with an enum constraint.
func (b *SchemaBuilder) AddParamWithEnum(name, paramType, description string, enum []string, required bool) *SchemaBuilder {
	props := b.schema.Parameters["properties"].(map[string]interface{})
	paramDef := map[string]interface{}{
		"type":        paramType,
		"description": description,
	}
	if len(enum) > 0 {
		paramDef["enum"] = enum
	}
	props[name] = paramDef
	if required {
		req := b.schema.Parameters["required"].([]string)
		b.schema.Parameters["required"] = append(req, name)
	}
	return b
}

// Build returns the constructed schema.
func (b *SchemaBuilder) Build() *Schema {
	return b.schema
}

// Validate checks that every required parameter is present and, for
// strings, non-empty.
func (s *Schema) Validate(args map[string]any) error {
	required, _ := s.Parameters["required"].([]string)
	for _, name := range required {
		v, ok := args[name]
		if !ok || v == nil {
			return errors.User(errors.CodeToolInvalidParams, fmt.Sprintf("%s: missing required argument %q", s.Name, name))
		}
		if str, isStr := v.(string); isStr && str == "" {
			return errors.User(errors.CodeToolInvalidParams, fmt.Sprintf("%s: argument %q must not be empty", s.Name, name))
		}
	}
	return nil
}

// Registry holds all tool schemas.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry creates a new empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register adds a schema to the registry.
func (r *Registry) Register(schema *Schema) {
	r.schemas[schema.Name] = schema
}

// Get retrieves a schema by name.
func (r *Registry) Get(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// List returns all registered schema names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToOpenAIFormat converts schemas to OpenAI function calling format,
// used by the browser to configure the realtime session.
func (r *Registry) ToOpenAIFormat() []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(r.schemas))
	for _, name := range r.List() {
		result = append(result, map[string]interface{}{
			"type":     "function",
			"function": r.schemas[name],
		})
	}
	return result
}
