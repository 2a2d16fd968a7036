package plugin

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers the plugin's tools with the MCP server.
// Called from main after server creation but before Run(). The version
// is what ping reports back to the host.
func RegisterAll(server *mcp.Server, deps *Dependencies, version string) {
	// The search action - the plugin's reason to exist
	mcp.AddTool(server, &mcp.Tool{
		Name:        ActionName,
		Description: "Search NBA/NFL game, team and player statistics for a date",
	}, NewSearchHandler(deps))

	// Ping tool - transport smoke test and build identification
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Test tool - reports the plugin build or echoes input",
	}, NewPingHandler(deps, version))
}
