// Package mcpsrv provides an extensible MCP server that generates Go structs
// from sample JSON.
//
// The server exposes three builtin tools: jsonclass_generate,
// jsonclass_infer_schema and jsonclass_validate.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type CountInput struct {
//	    JSON string `json:"json"`
//	}
//
//	type CountOutput struct {
//	    Classes int `json:"classes"`
//	}
//
//	func count(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	    res, err := jsonclass.Generate(ctx, []byte(in.JSON), jsonclass.Options{})
//	    if err != nil {
//	        return nil, CountOutput{}, err
//	    }
//	    return nil, CountOutput{Classes: len(res.Classes)}, nil
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithTool(&mcp.Tool{Name: "count_classes"}, count),
//	)
//
// # Configuration
//
// Settings are read from the environment (LOG_LEVEL, JSONCLASS_PACKAGE,
// RESULT_CACHE_MAX_ITEMS, ...) and can be overridden with options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/jsonclass-mcp.log"),
//	    mcpsrv.WithPackage("api"),
//	)
package mcpsrv
