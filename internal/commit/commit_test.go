package commit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/igr/internal/condition"
	"github.com/jpl-au/igr/internal/events"
	"github.com/jpl-au/igr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func newResult(path string, lines ...model.Line) model.SearchResult {
	lrs := make([]model.LineResult, len(lines))
	for i := range lines {
		l := lines[i]
		lrs[i] = model.LineResult{Line: &l}
	}
	return model.SearchResult{Files: []model.FileResult{{FilePath: path, Lines: lrs}}}
}

func transformed(path string, t *testing.T) model.SearchResult {
	t.Helper()
	r := newResult(path, model.NewLine(1, "hello world", nil))
	r, err := model.Apply(r, condition.Condition{Kind: condition.KindExact, Arg: "hello"}, 1)
	require.NoError(t, err)
	r, err = model.Apply(r, condition.Condition{Kind: condition.KindUpperCase}, 2)
	require.NoError(t, err)
	return r
}

func TestCommitAllRewritesTransformedLine(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.txt", "hello world\n")
	r := transformed(p, t)

	sink := make(events.Sink, 8)
	res, err := CommitAll(r, sink)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CommittedFiles)
	assert.Equal(t, 1, res.CommittedLines)
	assert.Empty(t, res.Errors)

	out, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "HELLO world\n", string(out))

	var sawProgress, sawFinished bool
	for len(sink) > 0 {
		e := <-sink
		if e.Kind == events.Progress {
			sawProgress = true
		}
		if e.Kind == events.ReplaceFinished {
			sawFinished = true
		}
	}
	assert.True(t, sawProgress)
	assert.True(t, sawFinished)
}

func TestCommitAllSkipsFilesWithoutTransforms(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "b.txt", "plain\n")
	r := newResult(p, model.NewLine(1, "plain", nil))

	res, err := CommitAll(r, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CommittedFiles)

	out, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "plain\n", string(out))
}

func TestCommitAllRecordsPerFileError(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	r := transformed(missing, t)

	res, err := CommitAll(r, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CommittedFiles)
	require.Len(t, res.Errors, 1)
}

func TestCommitLineRemovesLineFromResult(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "c.txt", "hello world\nsecond line\n")
	r := transformed(p, t)

	out, err := CommitLine(r, p, 1)
	require.NoError(t, err)
	assert.Empty(t, out.Files[0].Lines)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "HELLO world\nsecond line\n", string(data))
}

func TestCommitLineUnknownFileErrors(t *testing.T) {
	r := newResult("x.txt", model.NewLine(1, "x", nil))
	_, err := CommitLine(r, "y.txt", 1)
	require.Error(t, err)
}

func TestPreviewDoesNotWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "d.txt", "hello world\n")
	r := transformed(p, t)

	d, err := Preview(p, r.Files[0])
	require.NoError(t, err)
	assert.Contains(t, d.Diff, "HELLO world")

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(data))
}
