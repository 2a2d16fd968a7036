package plugin

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrorResult wraps a user-facing failure message as a tool error result.
// IsError=true lets the calling agent read the message and rephrase its
// query instead of treating the failure as a broken transport. The
// message is already mapped by failureMessage, so it goes out as-is.
func ErrorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// TextResult wraps a rendered snippet (or any plain text) as a success
// result.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
