// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "limits.max_line_length").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"threads", "theme", "context_separator",
		"context.before", "context.after",
		"limits.max_line_length",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "threads":
		return strconv.Itoa(c.ThreadCount()), nil
	case "theme":
		return c.ThemeName(), nil
	case "context_separator":
		return c.Separator(), nil
	case "context.before":
		return strconv.Itoa(c.ContextBefore()), nil
	case "context.after":
		return strconv.Itoa(c.ContextAfter()), nil
	case "limits.max_line_length":
		return strconv.Itoa(c.MaxLineLength()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: threads must be a non-negative integer", ErrInvalidValue)
		}
		c.Threads = &n
	case "theme":
		c.Theme = value
	case "context_separator":
		c.ContextSeparator = value
	case "context.before":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: context.before must be a non-negative integer", ErrInvalidValue)
		}
		c.Context.Before = &n
	case "context.after":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: context.after must be a non-negative integer", ErrInvalidValue)
		}
		c.Context.After = &n
	case "limits.max_line_length":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_line_length must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxLineLength = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"threads":                strconv.Itoa(c.ThreadCount()),
		"theme":                  c.ThemeName(),
		"context_separator":      c.Separator(),
		"context.before":         strconv.Itoa(c.ContextBefore()),
		"context.after":          strconv.Itoa(c.ContextAfter()),
		"limits.max_line_length": strconv.Itoa(c.MaxLineLength()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "threads":
		return c.Threads != nil
	case "theme":
		return c.Theme != ""
	case "context_separator":
		return c.ContextSeparator != ""
	case "context.before":
		return c.Context.Before != nil
	case "context.after":
		return c.Context.After != nil
	case "limits.max_line_length":
		return c.Limits.MaxLineLength != nil
	default:
		return false
	}
}
