package plugin

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ikb-gg/ikb-go/internal/server"
)

// PingInput defines the input schema for the ping tool.
type PingInput struct {
	Echo string `json:"echo,omitempty" jsonschema:"Text to echo back instead of the identity line"`
}

// NewPingHandler creates the ping tool handler. Without input it reports
// the plugin's name and version so a host can verify which build it is
// talking to; with echo input it round-trips the text through the
// transport instead.
func NewPingHandler(deps *Dependencies, version string) mcp.ToolHandlerFor[PingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, any, error) {
		deps.logger().Debug("ping tool called", "echo", input.Echo)

		if input.Echo != "" {
			return TextResult(input.Echo), nil, nil
		}
		return TextResult(fmt.Sprintf("%s %s: pong", server.Name, version)), nil, nil
	}
}
