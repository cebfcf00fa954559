// Package tools contains MCP tool implementations for jsonclass.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	schemautil "github.com/usestring/jsonclass/pkg/jsonschema"
)

// toAny converts a typed value into its plain JSON form so that output
// schemas see an arbitrary JSON value rather than the Go type's shape.
func toAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// parseSchema parses the schema argument of a tool call.
func parseSchema(text string) (*jsonschema.Schema, error) {
	s, err := schemautil.Parse([]byte(text))
	if err != nil {
		return nil, ErrInvalidInput(fmt.Sprintf("schema is not valid JSON Schema: %v", err))
	}
	return s, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
