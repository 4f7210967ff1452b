// Package walker implements the C5 file walker: directory traversal
// honoring .gitignore / .git/info/exclude, a hidden-entry toggle, a max
// depth, and a single user-supplied exclude glob. No complete example repo
// depends on a gitignore-matching library, so pattern matching is
// hand-rolled on top of internal/glob, the teacher's own glob idiom.
package walker

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/igr/internal/glob"
)

// Config controls traversal. MaxDepth of 0 means unlimited.
type Config struct {
	NoGitIgnore  bool
	NoGitExclude bool
	Hidden       bool
	MaxDepth     int
	ExcludePath  string
}

// Walk enumerates candidate files under root. If root is itself a regular
// file it is yielded directly without traversal, per spec §4.8.
func Walk(root string, cfg Config) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	patterns := loadIgnorePatterns(root, cfg)

	var out []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Walker I/O errors are logged to stderr and the entry is
			// skipped, per spec §7 kind 3.
			fmt.Fprintf(os.Stderr, "igr: %v\n", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if !cfg.Hidden && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if depth := strings.Count(rel, "/") + 1; cfg.MaxDepth > 0 && depth > cfg.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if matchesAny(patterns, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if cfg.ExcludePath != "" {
			if m, _ := glob.Match(cfg.ExcludePath, rel); m {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if m, err := glob.Match(p, rel); err == nil && m {
			return true
		}
	}
	return false
}

// loadIgnorePatterns reads the root .gitignore and .git/info/exclude
// files. Nested per-directory .gitignore files are not consulted; this is
// a deliberate single-level simplification (see DESIGN.md).
func loadIgnorePatterns(root string, cfg Config) []string {
	var patterns []string
	if !cfg.NoGitIgnore {
		patterns = append(patterns, readPatternFile(filepath.Join(root, ".gitignore"))...)
	}
	if !cfg.NoGitExclude {
		patterns = append(patterns, readPatternFile(filepath.Join(root, ".git", "info", "exclude"))...)
	}
	return patterns
}

func readPatternFile(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		patterns = append(patterns, strings.TrimPrefix(line, "/"))
	}
	return patterns
}
