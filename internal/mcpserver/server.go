// Package mcpserver implements the Model Context Protocol server, exposing
// igr's condition-algebra pipeline to LLMs: igr_search, igr_apply,
// igr_pop, igr_commit and igr_preview let an MCP client drive the same
// search/apply/commit engine the CLI uses, plus igr_guide for the help
// topic. Grounded on llmd's internal/mcp/server.go's server bootstrap and
// tools_search.go's handler-plus-audit-log wrapping pattern.
package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/igr/internal/model"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNoResult is returned by tools that operate on the current result
// (igr_apply, igr_pop, igr_commit, igr_preview) before igr_search has run.
const ErrNoResult = "no search result yet - call igr_search first"

// Serve starts the MCP server over stdio.
func Serve() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{}

	s := server.NewMCPServer(
		"igr",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, h)

	slog.Info("igr MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the live
// SearchResult, mutated by igr_search/igr_apply/igr_pop/igr_commit.
type handlers struct {
	mu      sync.Mutex
	current model.SearchResult
	hasRun  bool
}

func (h *handlers) requireResult() *mcp.CallToolResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.hasRun {
		return mcp.NewToolResultError(ErrNoResult)
	}
	return nil
}

// registerTools exposes igr operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("igr_search",
			mcp.WithDescription("Run an igr query over a directory, producing the initial search result"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Pipe-separated condition query, e.g. 'ignore_case(hello) | line.ends_with(o)'")),
			mcp.WithString("root", mcp.Description("Directory to search (default: current directory)")),
			mcp.WithNumber("before", mcp.Description("Lines of context before each match")),
			mcp.WithNumber("after", mcp.Description("Lines of context after each match")),
			mcp.WithNumber("threads", mcp.Description("Worker-pool size (default: number of CPUs)")),
		),
		h.search,
	)

	s.AddTool(
		mcp.NewTool("igr_apply",
			mcp.WithDescription("Fold one more condition into the current search result"),
			mcp.WithString("condition", mcp.Required(), mcp.Description("A single condition, e.g. 'line.ends_with(o)' or 'upper_case()'")),
		),
		h.apply,
	)

	s.AddTool(
		mcp.NewTool("igr_pop",
			mcp.WithDescription("Remove the last applied condition and re-derive the result"),
		),
		h.pop,
	)

	s.AddTool(
		mcp.NewTool("igr_commit",
			mcp.WithDescription("Write every Transformed match in the current result back to disk"),
		),
		h.commit,
	)

	s.AddTool(
		mcp.NewTool("igr_preview",
			mcp.WithDescription("Preview the diff a commit would produce for one file, without writing"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path, as it appears in the search result")),
		),
		h.preview,
	)

	s.AddTool(
		mcp.NewTool("igr_guide",
			mcp.WithDescription("Get the igr query-language and usage guide"),
		),
		h.guide,
	)
}
