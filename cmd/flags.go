// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic,
// following the same package-level flag-variable-plus-accessor pattern as
// the teacher's cmd/flags.go.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/igr/internal/config"
)

var validOutputFormats = []string{"default", "vimgrep", "count", "count_matches", "quiet"}

var (
	outputShape   string
	beforeCtx     int
	afterCtx      int
	threadCount   int
	noColorFlag   bool
	commitFlag    bool
	dryRunFlag    bool
	stdinFlag     bool
	hiddenFlag    bool
	noIgnoreFlag  bool
	noExcludeFlag bool
	maxDepthFlag  int
	excludeFlag   string
	editorFlag    string
	themeFlag     string
)

// out is the output writer for the run command. Tests can replace this to
// capture output without touching the real stdout.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// OutputShape returns the requested output-shape flag value.
func OutputShape() string { return outputShape }

// Commit returns true if matched transforms should be written to disk.
func Commit() bool { return commitFlag }

// DryRun returns true if a commit preview (no write) was requested.
func DryRun() bool { return dryRunFlag }

// Stdin returns true if input should be read from stdin instead of walking
// a directory.
func Stdin() bool { return stdinFlag }

// Editor returns the --editor passthrough value. igr never launches an
// editor itself; this is a hook for an external collaborator (the
// eventual TUI) to read.
func Editor() string { return editorFlag }

// Theme returns the --theme passthrough value. Empty means "use the
// configured theme"; igr performs no syntax highlighting or color-scheme
// selection itself in headless mode.
func Theme() string { return themeFlag }

// resolvedThreads returns the --threads flag value, falling back to the
// loaded config's ThreadCount when unset.
func resolvedThreads(cfg *config.Config) int {
	if threadCount > 0 {
		return threadCount
	}
	return cfg.ThreadCount()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputShape, "output", "o", "default", "Output shape: default, vimgrep, count, count_matches, quiet")
	rootCmd.PersistentFlags().IntVarP(&beforeCtx, "before", "B", 0, "Lines of context before each match")
	rootCmd.PersistentFlags().IntVarP(&afterCtx, "after", "A", 0, "Lines of context after each match")
	rootCmd.PersistentFlags().IntVarP(&threadCount, "threads", "j", 0, "Worker-pool size (0 = number of CPUs)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&commitFlag, "commit", false, "Write Transformed matches back to disk")
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "Preview the commit diff without writing")
	rootCmd.PersistentFlags().BoolVar(&stdinFlag, "stdin", false, "Read input from stdin instead of walking a directory")
	rootCmd.PersistentFlags().BoolVar(&hiddenFlag, "hidden", false, "Include hidden files and directories")
	rootCmd.PersistentFlags().BoolVar(&noIgnoreFlag, "no-gitignore", false, "Do not honor .gitignore")
	rootCmd.PersistentFlags().BoolVar(&noExcludeFlag, "no-git-exclude", false, "Do not honor .git/info/exclude")
	rootCmd.PersistentFlags().IntVar(&maxDepthFlag, "max-depth", 0, "Maximum directory recursion depth (0 = unlimited)")
	rootCmd.PersistentFlags().StringVar(&excludeFlag, "exclude", "", "Glob pattern of paths to exclude")
	rootCmd.PersistentFlags().StringVar(&editorFlag, "editor", "", "Editor passthrough for an external TUI collaborator (not implemented headlessly)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Theme passthrough for an external TUI collaborator (not implemented headlessly)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
