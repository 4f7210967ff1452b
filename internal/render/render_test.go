package render

import (
	"strings"
	"testing"

	"github.com/jpl-au/igr/internal/condition"
	"github.com/jpl-au/igr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) model.SearchResult {
	t.Helper()
	r := model.SearchResult{Files: []model.FileResult{{
		FilePath: "a.txt",
		Lines:    []model.LineResult{{Line: ptr(model.NewLine(1, "hello world", nil))}},
	}}}
	r, err := model.Apply(r, condition.Condition{Kind: condition.KindExact, Arg: "hello"}, 1)
	require.NoError(t, err)
	return r
}

func ptr(l model.Line) *model.Line { return &l }

func TestRenderDefaultShowsHeaderAndLine(t *testing.T) {
	r := sampleResult(t)
	out, hasMatch := Render(r, ShapeDefault, false)
	assert.True(t, hasMatch)
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "1:hello world")
}

func TestRenderDefaultColorizesMatch(t *testing.T) {
	r := sampleResult(t)
	out, _ := Render(r, ShapeDefault, true)
	assert.Contains(t, out, "\033[31m")
}

func TestRenderVimgrepOneRowPerMatch(t *testing.T) {
	r := sampleResult(t)
	out, hasMatch := Render(r, ShapeVimgrep, false)
	assert.True(t, hasMatch)
	assert.Equal(t, "a.txt:1:1:hello world\n", out)
}

func TestRenderCount(t *testing.T) {
	r := sampleResult(t)
	out, _ := Render(r, ShapeCount, false)
	assert.Equal(t, "1", out)
}

func TestRenderCountIsLinesNotFiles(t *testing.T) {
	r := model.SearchResult{Files: []model.FileResult{{
		FilePath: "a.txt",
		Lines: []model.LineResult{
			{Line: ptr(model.NewLine(1, "hello world", nil))},
			{Line: ptr(model.NewLine(2, "HELLO", nil))},
		},
	}}}
	r, err := model.Apply(r, condition.Condition{Kind: condition.KindIgnoreCase, Arg: "hello"}, 1)
	require.NoError(t, err)

	out, hasMatch := Render(r, ShapeCount, false)
	assert.True(t, hasMatch)
	assert.Equal(t, "2", out, "count must be the number of matching lines, not files")
}

func TestRenderCountMatches(t *testing.T) {
	r := sampleResult(t)
	out, _ := Render(r, ShapeCountMatches, false)
	assert.Equal(t, "1", out)
}

func TestRenderQuietEmptyOutput(t *testing.T) {
	r := sampleResult(t)
	out, hasMatch := Render(r, ShapeQuiet, false)
	assert.Empty(t, out)
	assert.True(t, hasMatch)
}

func TestRenderQuietNoMatchReportsFalse(t *testing.T) {
	_, hasMatch := Render(model.SearchResult{}, ShapeQuiet, false)
	assert.False(t, hasMatch)
}

func TestGuideContainsQueryGrammar(t *testing.T) {
	content, err := Guide()
	require.NoError(t, err)
	assert.True(t, strings.Contains(content, "matcher"))
}
