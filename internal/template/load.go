package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// descriptorSchema is the JSON-Schema (draft 2020-12 subset) a descriptor
// file must satisfy before it is trusted to drive zone geometry.
func descriptorSchema() map[string]any {
	anchor := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"markers": map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 1}},
			"keywords": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 1}},
			},
			"default_ratio": map[string]any{"type": "number", "exclusiveMinimum": 0.0, "exclusiveMaximum": 1.0},
		},
		"required": []string{"default_ratio"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":           map[string]any{"type": "string", "minLength": 1},
			"languages":      map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 2, "maxLength": 2}, "minItems": 1},
			"operator":       anchor,
			"activity":       anchor,
			"category":       anchor,
			"footer_ratio":   map[string]any{"type": "number", "exclusiveMinimum": 0.0, "maximum": 1.0},
			"column_pad":     map[string]any{"type": "integer", "minimum": 0},
			"height_floor":   map[string]any{"type": "integer", "minimum": 1},
			"min_confidence": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		},
		"required": []string{"name", "languages", "operator", "activity", "category"},
	}
}

// validateAgainstSchema validates "data" against "schemaMap".
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("descriptor does not match schema: %w", err)
	}
	return nil
}

// Load reads, validates and defaults a descriptor from a JSON file.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	return Parse(data)
}

// Parse validates and defaults a descriptor from JSON bytes.
func Parse(data []byte) (*Descriptor, error) {
	if err := validateAgainstSchema(descriptorSchema(), data); err != nil {
		return nil, err
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal descriptor: %w", err)
	}
	d.applyDefaults()
	return &d, nil
}
