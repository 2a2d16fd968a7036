package plugin

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput defines the input schema for the IKB_SEARCH tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"required,Free-text sports query, e.g. nba games on 2024-03-01"`
	View  string `json:"view,omitempty" jsonschema:"Optional view mode override: game, teams or players"`
}

// NewSearchHandler creates the IKB_SEARCH tool handler. The handler never
// returns a protocol error for query failures; every failure surfaces as a
// tool error result with its user-facing message.
func NewSearchHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
		*mcp.CallToolResult, any, error,
	) {
		res := Handle(ctx, deps, input.Query, input.View)
		if !res.Success {
			return ErrorResult(res.Response), nil, nil
		}
		return TextResult(res.Response), nil, nil
	}
}
