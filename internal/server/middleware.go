package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxParamsLogLen caps logged request params. Search queries are short,
// but tool results echoed through notifications can carry whole game
// payloads.
const maxParamsLogLen = 200

// slowRequestThreshold marks requests worth a WARN. The upstream IKB
// fetch dominates tool-call latency, so slow entries almost always point
// at the sports API rather than this process.
const slowRequestThreshold = 100 * time.Millisecond

// LoggingMiddleware returns middleware that times every MCP request and
// logs it with method, duration, and truncated params.
func LoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			logRequest(logger, method, req, time.Since(start), err)
			return result, err
		}
	}
}

// logRequest picks the log level from the outcome: ERROR on failure,
// WARN past the slow threshold, DEBUG otherwise.
func logRequest(logger *slog.Logger, method string, req mcp.Request, duration time.Duration, err error) {
	attrs := []any{
		"method", method,
		"duration_ms", duration.Milliseconds(),
	}
	if params := formatParams(req); params != "" {
		attrs = append(attrs, "params", truncate(params, maxParamsLogLen))
	}

	switch {
	case err != nil:
		logger.Error("request failed", append(attrs, "error", err.Error())...)
	case duration > slowRequestThreshold:
		logger.Warn("slow request", attrs...)
	default:
		logger.Debug("request completed", attrs...)
	}
}

// formatParams extracts and formats request parameters for logging.
func formatParams(req mcp.Request) string {
	params := req.GetParams()
	if params == nil {
		return ""
	}
	return fmt.Sprintf("%+v", params)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
