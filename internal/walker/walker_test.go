package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalkSingleFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.txt")
	writeFile(t, f, "hello")

	got, err := Walk(f, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{f}, got)
}

func TestWalkHonoursGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "ignored.txt\n")
	writeFile(t, filepath.Join(dir, "kept.txt"), "x")
	writeFile(t, filepath.Join(dir, "ignored.txt"), "x")

	got, err := Walk(dir, Config{})
	require.NoError(t, err)
	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	assert.Contains(t, names, "kept.txt")
	assert.NotContains(t, names, "ignored.txt")
}

func TestWalkHiddenToggle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden.txt"), "x")
	writeFile(t, filepath.Join(dir, "visible.txt"), "x")

	got, err := Walk(dir, Config{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = Walk(dir, Config{Hidden: true})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestWalkMaxDepth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.txt"), "x")
	writeFile(t, filepath.Join(dir, "sub", "deep.txt"), "x")

	got, err := Walk(dir, Config{MaxDepth: 1})
	require.NoError(t, err)
	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	assert.Contains(t, names, "top.txt")
	assert.NotContains(t, names, "deep.txt")
}

func TestWalkExcludeGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "vendor", "lib.go"), "x")
	writeFile(t, filepath.Join(dir, "main.go"), "x")

	got, err := Walk(dir, Config{ExcludePath: "vendor/**"})
	require.NoError(t, err)
	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	assert.Contains(t, names, "main.go")
	assert.NotContains(t, names, "lib.go")
}
