package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "jsonclass_generate",
		Description: "Generate Go struct declarations from a sample JSON document. Returns {source, classes: [{name, fields: [{name, key, type, degraded}]}], diagnostics, cached}. Integer fields start at int32 and widen to int64/uint64 as the sample demands; numbers are float32 unless a value needs float64; missing or null fields become pointers (strings excepted); undeterminable fields become any and are listed in diagnostics. Use query to model a sub-document, or schema to control the structure.",
	}, ToolGenerate(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "jsonclass_infer_schema",
		Description: "Infer the JSON Schema (Draft 2020-12) that jsonclass_generate builds its structs from. Nested objects are hoisted into $defs, one per generated struct. Returns {schema, definitions, hint}.",
	}, ToolInferSchema(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "jsonclass_validate",
		Description: "Validate a JSON document against a JSON Schema. Returns {valid, errors} with one message per failing location.",
	}, ToolValidate(d))
}
