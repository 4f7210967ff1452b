// tools_util.go centralises MCP tool parameter extraction: permissive
// helpers that return a default on error rather than propagating one, since
// an LLM omitting an optional parameter shouldn't produce a cryptic error.
// Grounded on llmd/internal/mcp/tools_util.go.
package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// getString returns a string parameter or the default if not present.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns a boolean parameter or the default if not present.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt returns an integer parameter or the default. Handles JSON's
// float64 number representation.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}
