package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsonclass/internal/mcp/tools"
)

// AddTool registers a tool with the server. It panics at registration when
// the zero value of Out would fail the output schema the SDK infers, e.g. a
// nil slice without omitzero marshaling as null where an array is expected.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
