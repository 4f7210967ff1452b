package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestApplyWithoutSearchErrors(t *testing.T) {
	h := &handlers{}
	res, err := h.apply(context.Background(), newRequest(map[string]any{"condition": "upper_case()"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), ErrNoResult)
}

func TestPopWithoutSearchErrors(t *testing.T) {
	h := &handlers{}
	res, err := h.pop(context.Background(), newRequest(nil))
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestCommitWithoutSearchErrors(t *testing.T) {
	h := &handlers{}
	res, err := h.commit(context.Background(), newRequest(nil))
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestSearchPopulatesCurrentResult(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.txt", "hello world\n")

	h := &handlers{}
	res, err := h.search(context.Background(), newRequest(map[string]any{
		"query": "hello",
		"root":  dir,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "MatchCount")

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.True(t, h.hasRun)
	assert.Equal(t, 1, h.current.Stat().FileCount)
}

func TestSearchMissingQueryErrors(t *testing.T) {
	h := &handlers{}
	res, err := h.search(context.Background(), newRequest(map[string]any{"root": "."}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSearchFoldsPipedConditionsInOneCall(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.txt", "hello world\n")

	h := &handlers{}
	_, err := h.search(context.Background(), newRequest(map[string]any{
		"query": "hello | upper_case()",
		"root":  dir,
	}))
	require.NoError(t, err)

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.current.Conditions, 2)
	require.Len(t, h.current.Files, 1)
	matches := h.current.Files[0].Lines[0].Line.Matches
	require.Len(t, matches, 1)
	assert.Equal(t, "HELLO", matches[0].Text)
}

func TestSearchLineFilterBeforeMatcherDoesNotDuplicateMatches(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.txt", "hello world\n")

	h := &handlers{}
	_, err := h.search(context.Background(), newRequest(map[string]any{
		"query": "line.contains(hello) | hello",
		"root":  dir,
	}))
	require.NoError(t, err)

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.current.Files, 1)
	matches := h.current.Files[0].Lines[0].Line.Matches
	assert.Len(t, matches, 1, "the line-filter-then-matcher pipeline must not re-apply the matcher search already consumed")
}

func TestApplyFoldsConditionAndIncrementsIndex(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.txt", "hello world\n")

	h := &handlers{}
	_, err := h.search(context.Background(), newRequest(map[string]any{"query": "hello", "root": dir}))
	require.NoError(t, err)

	res, err := h.apply(context.Background(), newRequest(map[string]any{"condition": "upper_case()"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Len(t, h.current.Conditions, 2)
}

func TestPopRemovesLastCondition(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.txt", "hello world\n")

	h := &handlers{}
	_, err := h.search(context.Background(), newRequest(map[string]any{"query": "hello", "root": dir}))
	require.NoError(t, err)
	_, err = h.apply(context.Background(), newRequest(map[string]any{"condition": "upper_case()"}))
	require.NoError(t, err)

	res, err := h.pop(context.Background(), newRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Len(t, h.current.Conditions, 1)
}

func TestCommitWritesTransformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "hello world\n")

	h := &handlers{}
	_, err := h.search(context.Background(), newRequest(map[string]any{"query": "hello", "root": dir}))
	require.NoError(t, err)
	_, err = h.apply(context.Background(), newRequest(map[string]any{"condition": "upper_case()"}))
	require.NoError(t, err)

	res, err := h.commit(context.Background(), newRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "CommittedFiles")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "HELLO"))
}

func TestPreviewDoesNotWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", "hello world\n")

	h := &handlers{}
	_, err := h.search(context.Background(), newRequest(map[string]any{"query": "hello", "root": dir}))
	require.NoError(t, err)
	_, err = h.apply(context.Background(), newRequest(map[string]any{"condition": "upper_case()"}))
	require.NoError(t, err)

	relPath := "a.txt"
	h.mu.Lock()
	if len(h.current.Files) > 0 {
		relPath = h.current.Files[0].FilePath
	}
	h.mu.Unlock()

	res, err := h.preview(context.Background(), newRequest(map[string]any{"path": relPath}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "HELLO")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(data))
}

func TestPreviewUnknownFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.txt", "hello world\n")

	h := &handlers{}
	_, err := h.search(context.Background(), newRequest(map[string]any{"query": "hello", "root": dir}))
	require.NoError(t, err)

	res, err := h.preview(context.Background(), newRequest(map[string]any{"path": "missing.txt"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGuideReturnsMarkdown(t *testing.T) {
	h := &handlers{}
	res, err := h.guide(context.Background(), newRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "matcher")
}
