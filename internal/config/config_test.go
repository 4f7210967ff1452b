package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScopeMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	orig := globalPathFunc
	globalPathFunc = func() string { return filepath.Join(dir, "config.yaml") }
	defer func() { globalPathFunc = orig }()

	cfg, err := LoadScope(ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, DefaultThreads, cfg.ThreadCount())
	assert.Equal(t, DefaultTheme, cfg.ThemeName())
	assert.Equal(t, DefaultContextSeparator, cfg.Separator())
	assert.Equal(t, DefaultMaxLineLength, cfg.MaxLineLength())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	orig := globalPathFunc
	globalPathFunc = func() string { return filepath.Join(dir, "config.yaml") }
	defer func() { globalPathFunc = orig }()

	cfg, err := LoadScope(ScopeGlobal)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("threads", "8"))
	require.NoError(t, cfg.Set("theme", "solarized"))
	require.NoError(t, cfg.SaveScope(ScopeGlobal))

	reloaded, err := LoadScope(ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, 8, reloaded.ThreadCount())
	assert.Equal(t, "solarized", reloaded.ThemeName())
}

func TestValidateRejectsOutOfRangeMaxLineLength(t *testing.T) {
	n := 0
	cfg := &Config{Limits: Limits{MaxLineLength: &n}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSetUnknownKeyErrors(t *testing.T) {
	cfg := &Config{}
	err := cfg.Set("nonsense.key", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestIsSetDistinguishesExplicitFromDefault(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.IsSet("threads"))
	require.NoError(t, cfg.Set("threads", "4"))
	assert.True(t, cfg.IsSet("threads"))
}

func TestIsValidKey(t *testing.T) {
	assert.True(t, IsValidKey("threads"))
	assert.False(t, IsValidKey("bogus"))
}
