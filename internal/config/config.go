// Package config provides reading and writing of igr configuration.
// Supports both global (~/.igr/config.yaml) and local (.igr/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: Save goes back to the file the config was read from; use
// --local to read and write the local file explicitly.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.igr/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .igr/config.yaml
	ScopeLocal
)

// Context holds default before/after context-window sizes.
type Context struct {
	Before *int `yaml:"before,omitempty"`
	After  *int `yaml:"after,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxLineLength *int `yaml:"max_line_length,omitempty"`
}

// Default values applied when not configured.
const (
	DefaultThreads          = 0 // 0 means "runtime.NumCPU()"
	DefaultContextBefore    = 0
	DefaultContextAfter     = 0
	DefaultTheme            = "default"
	DefaultContextSeparator = "--"
	DefaultMaxLineLength    = 10 * 1024 * 1024 // 10 MB
)

// Validation bounds for configuration values.
const (
	MinMaxLineLength = 1
	MaxMaxLineLength = 1024 * 1024 * 1024 // 1 GB
	MinThreads       = 0
	MaxThreads       = 4096
)

// Config contains configuration for igr.
type Config struct {
	Threads          *int    `yaml:"threads,omitempty"`
	Theme            string  `yaml:"theme,omitempty"`
	ContextSeparator string  `yaml:"context_separator,omitempty"`
	Context          Context `yaml:"context,omitempty"`
	Limits           Limits  `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxLineLength != nil {
		v := *c.Limits.MaxLineLength
		if v < MinMaxLineLength || v > MaxMaxLineLength {
			return fmt.Errorf("%w: max_line_length must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxLineLength, MaxMaxLineLength, v)
		}
	}
	if c.Threads != nil {
		v := *c.Threads
		if v < MinThreads || v > MaxThreads {
			return fmt.Errorf("%w: threads must be between %d and %d, got %d",
				ErrInvalidValue, MinThreads, MaxThreads, v)
		}
	}
	return nil
}

// ThreadCount returns the configured worker-pool size (defaults to 0,
// meaning "use runtime.NumCPU()").
func (c *Config) ThreadCount() int {
	if c.Threads == nil {
		return DefaultThreads
	}
	return *c.Threads
}

// ContextBefore returns the default number of context lines before a match.
func (c *Config) ContextBefore() int {
	if c.Context.Before == nil {
		return DefaultContextBefore
	}
	return *c.Context.Before
}

// ContextAfter returns the default number of context lines after a match.
func (c *Config) ContextAfter() int {
	if c.Context.After == nil {
		return DefaultContextAfter
	}
	return *c.Context.After
}

// ThemeName returns the configured color theme name (defaults to "default").
func (c *Config) ThemeName() string {
	if c.Theme == "" {
		return DefaultTheme
	}
	return c.Theme
}

// Separator returns the context-gap separator string (defaults to "--").
func (c *Config) Separator() string {
	if c.ContextSeparator == "" {
		return DefaultContextSeparator
	}
	return c.ContextSeparator
}

// MaxLineLength returns the configured maximum line length, in bytes
// (defaults to 10 MB). The search engine does not read this value: lines
// are matched at their full length whatever it is set to.
func (c *Config) MaxLineLength() int {
	if c.Limits.MaxLineLength == nil {
		return DefaultMaxLineLength
	}
	return *c.Limits.MaxLineLength
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".igr", "config.yaml")
}

// globalPathFunc is the function that returns the global config path. Tests
// override this to use a temp directory.
var globalPathFunc = defaultGlobalPath

func defaultGlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".igr", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.igr/config.yaml
func GlobalPath() string {
	return globalPathFunc()
}

// Path returns the local config path (for backwards compatibility).
func Path() string {
	return LocalPath()
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
