package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsonclass/internal/cache"
	"github.com/usestring/jsonclass/pkg/jsonclass"
)

// GenerateInput is the input for jsonclass_generate.
type GenerateInput struct {
	JSON     string `json:"json" jsonschema:"Sample JSON document"`
	Query    string `json:"query,omitempty" jsonschema:"jq expression selecting the part of json to model (default: the whole document)"`
	Schema   string `json:"schema,omitempty" jsonschema:"JSON Schema used instead of inference; json must validate against it"`
	Package  string `json:"package,omitempty" jsonschema:"Package clause of the generated source (default: model)"`
	RootName string `json:"root_name,omitempty" jsonschema:"Name of the root struct (default: Root)"`
}

// GenerateOutput is the output for jsonclass_generate.
type GenerateOutput struct {
	Source      string        `json:"source"`
	Classes     []ClassOutput `json:"classes,omitzero"`
	Diagnostics []string      `json:"diagnostics,omitzero"`
	Cached      bool          `json:"cached,omitempty"`
}

// ClassOutput describes one generated struct.
type ClassOutput struct {
	Name   string        `json:"name"`
	Fields []FieldOutput `json:"fields,omitzero"`
}

// FieldOutput describes one struct field.
type FieldOutput struct {
	Name     string `json:"name"`
	Key      string `json:"key"`
	Type     string `json:"type"`
	Degraded bool   `json:"degraded,omitempty"`
}

// ToolGenerate generates Go structs from a sample JSON document. Results are
// cached by the content of the call.
func ToolGenerate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, GenerateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, GenerateOutput, error) {
		opts := jsonclass.Options{
			RootName: orDefault(input.RootName, d.Config.RootName),
			Package:  orDefault(input.Package, d.Config.Package),
			Banner:   d.Config.Banner,
			MaxDepth: d.Config.MaxDepth,
		}

		key := cache.Key("generate", input.JSON, input.Query, input.Schema, opts.RootName, opts.Package)
		if res, ok := d.Cache.Get(key); ok {
			output := buildGenerateOutput(res)
			output.Cached = true
			return nil, output, nil
		}

		if input.Schema != "" {
			s, err := parseSchema(input.Schema)
			if err != nil {
				return nil, GenerateOutput{}, err
			}
			opts.Schema = s
		}

		value, err := d.Sample(ctx, input.JSON, input.Query)
		if err != nil {
			return nil, GenerateOutput{}, err
		}

		res, err := jsonclass.GenerateValue(ctx, value, opts)
		if err != nil {
			return nil, GenerateOutput{}, WrapGenerateError(err)
		}
		d.Cache.Put(key, res)

		return nil, buildGenerateOutput(res), nil
	}
}

func buildGenerateOutput(res *jsonclass.Result) GenerateOutput {
	output := GenerateOutput{Source: string(res.Source)}
	for _, c := range res.Classes {
		class := ClassOutput{Name: c.Name}
		for _, f := range c.Fields {
			class.Fields = append(class.Fields, FieldOutput{
				Name:     f.Name,
				Key:      f.Key,
				Type:     f.Type,
				Degraded: f.Degraded,
			})
		}
		output.Classes = append(output.Classes, class)
	}
	for _, diag := range res.Diagnostics {
		output.Diagnostics = append(output.Diagnostics, diag.String())
	}
	return output
}
