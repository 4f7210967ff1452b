package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/igr/internal/auditlog"
	"github.com/jpl-au/igr/internal/commit"
	"github.com/jpl-au/igr/internal/events"
	"github.com/jpl-au/igr/internal/model"
	"github.com/jpl-au/igr/internal/query"
	"github.com/jpl-au/igr/internal/render"
	"github.com/jpl-au/igr/internal/search"
	"github.com/jpl-au/igr/internal/walker"
)

// search runs a full query over a root directory and stores the result as
// the server's current result, ready for igr_apply/igr_commit/igr_pop.
func (h *handlers) search(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := getString(req, "query", "")
	if q == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	root := getString(req, "root", ".")
	before := getInt(req, "before", 0)
	after := getInt(req, "after", 0)
	threads := getInt(req, "threads", 0)

	conds, errs := query.Parse(q)
	if len(errs) > 0 {
		return mcp.NewToolResultError(joinErrors(errs)), nil
	}

	paths, err := walker.Walk(root, walker.Config{})
	if err != nil {
		auditlog.Event("mcp:igr_search", "search").Root(root).Detail("query", q).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := search.Config{
		BeforeContext: before,
		AfterContext:  after,
		Threads:       threads,
		Roots:         paths,
	}
	result, err := search.Search(conds, cfg)
	if err == nil {
		matcherIdx, lineFilterIdx := search.ConsumedIndices(conds)
		for i := range conds {
			if i == matcherIdx || i == lineFilterIdx {
				continue
			}
			result, err = model.Apply(result, conds[i], i+1)
			if err != nil {
				break
			}
		}
	}
	auditlog.Event("mcp:igr_search", "search").
		Root(root).
		Detail("query", q).
		Detail("file_count", result.Stat().FileCount).
		Detail("match_count", result.Stat().MatchCount).
		Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.mu.Lock()
	h.current = result
	h.hasRun = true
	h.mu.Unlock()

	return jsonResult(result.Stat())
}

// apply folds one more condition into the current result.
func (h *handlers) apply(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if errResult := h.requireResult(); errResult != nil {
		return errResult, nil
	}
	expr := getString(req, "condition", "")
	if expr == "" {
		return mcp.NewToolResultError("condition is required"), nil
	}
	conds, errs := query.Parse(expr)
	if len(errs) > 0 || len(conds) != 1 {
		return mcp.NewToolResultError(joinErrors(errs)), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	index := len(h.current.Conditions) + 1
	next, err := model.Apply(h.current, conds[0], index)
	auditlog.Event("mcp:igr_apply", "apply").
		Detail("condition", expr).
		Detail("index", index).
		Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h.current = next
	return jsonResult(next.Stat())
}

// pop removes the last applied condition and re-derives the result.
func (h *handlers) pop(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if errResult := h.requireResult(); errResult != nil {
		return errResult, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	next, err := model.PopLast(h.current)
	auditlog.Event("mcp:igr_pop", "pop").Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h.current = next
	return jsonResult(next.Stat())
}

// commit writes every Transformed match in the current result to disk.
func (h *handlers) commit(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if errResult := h.requireResult(); errResult != nil {
		return errResult, nil
	}
	h.mu.Lock()
	current := h.current
	h.mu.Unlock()

	sink := make(events.Sink, 16)
	go func() {
		for range sink {
		}
	}()

	res, err := commit.CommitAll(current, sink)
	auditlog.Event("mcp:igr_commit", "commit").
		Detail("committed_files", res.CommittedFiles).
		Detail("committed_lines", res.CommittedLines).
		Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// preview shows the diff a commit would produce for one file, without
// writing it.
func (h *handlers) preview(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if errResult := h.requireResult(); errResult != nil {
		return errResult, nil
	}
	path := getString(req, "path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	h.mu.Lock()
	current := h.current
	h.mu.Unlock()

	var target model.FileResult
	found := false
	for _, fr := range current.Files {
		if fr.FilePath == path {
			target = fr
			found = true
			break
		}
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("file %q not found in current result", path)), nil
	}

	diffResult, err := commit.Preview(path, target)
	auditlog.Event("mcp:igr_preview", "preview").Root(path).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(diffResult.Format(false)), nil
}

// guide returns the igr query-language and usage guide as plain markdown.
func (h *handlers) guide(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := render.Guide()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// jsonResult wraps v as a pretty-printed JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
