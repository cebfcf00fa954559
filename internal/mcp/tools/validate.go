package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	schemautil "github.com/usestring/jsonclass/pkg/jsonschema"
)

// ValidateInput is the input for jsonclass_validate.
type ValidateInput struct {
	JSON   string `json:"json" jsonschema:"JSON document to validate"`
	Schema string `json:"schema" jsonschema:"JSON Schema to validate against"`
	Query  string `json:"query,omitempty" jsonschema:"jq expression selecting the part of json to validate (default: the whole document)"`
}

// ValidateOutput is the output for jsonclass_validate.
type ValidateOutput struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitzero"`
}

// ToolValidate validates a JSON document against a JSON Schema.
func ToolValidate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
		if input.Schema == "" {
			return nil, ValidateOutput{}, ErrInvalidInput("schema is required")
		}
		schema, err := parseSchema(input.Schema)
		if err != nil {
			return nil, ValidateOutput{}, err
		}
		validator, err := schemautil.NewValidator(schema)
		if err != nil {
			return nil, ValidateOutput{}, ErrInvalidInput(fmt.Sprintf("schema does not compile: %v", err))
		}

		value, err := d.Sample(ctx, input.JSON, input.Query)
		if err != nil {
			return nil, ValidateOutput{}, err
		}

		res := validator.ValidateValue(value)
		return nil, ValidateOutput{Valid: res.Valid, Errors: res.Errors}, nil
	}
}
