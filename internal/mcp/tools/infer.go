package tools

import (
	"context"
	"fmt"
	"sort"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	schemautil "github.com/usestring/jsonclass/pkg/jsonschema"
)

// InferSchemaInput is the input for jsonclass_infer_schema.
type InferSchemaInput struct {
	JSON  string `json:"json" jsonschema:"Sample JSON document"`
	Query string `json:"query,omitempty" jsonschema:"jq expression selecting the part of json to analyze (default: the whole document)"`
}

// InferSchemaOutput is the output for jsonclass_infer_schema.
type InferSchemaOutput struct {
	Schema      any      `json:"schema"`
	Definitions []string `json:"definitions,omitzero"`
	Hint        string   `json:"hint,omitempty"`
}

// ToolInferSchema infers the JSON Schema that jsonclass_generate derives its
// structs from. Every nested object appears once under $defs.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
		value, err := d.Sample(ctx, input.JSON, input.Query)
		if err != nil {
			return nil, InferSchemaOutput{}, err
		}

		opts := schemautil.DefaultInferOptions()
		opts.ReservedNames = []string{d.Config.RootName}
		opts.MaxDepth = d.Config.MaxDepth
		inferred := schemautil.InferValues(opts, value)

		schema, err := toAny(inferred.Schema)
		if err != nil {
			return nil, InferSchemaOutput{}, fmt.Errorf("encoding schema: %w", err)
		}

		output := InferSchemaOutput{
			Schema: schema,
			Hint:   "Edit the schema and pass it to jsonclass_generate(schema=...) to control the generated structs.",
		}
		for name := range inferred.Schema.Definitions {
			output.Definitions = append(output.Definitions, name)
		}
		sort.Strings(output.Definitions)

		return nil, output, nil
	}
}
