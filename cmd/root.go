// root.go defines the root command and CLI execution entry point.
//
// Separated from flags.go/run.go to isolate cobra bootstrap from flag
// definitions and query execution, the same split the teacher uses between
// root.go and init_extensions.go.
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/igr/internal/auditlog"
	"github.com/jpl-au/igr/internal/ierr"
)

var rootCmd = &cobra.Command{
	Use:   "igr [query] [path]",
	Short: "Interactive grep-and-transform engine",
	Long: `igr evaluates a pipeline of conditions - matchers, filters and
transforms, separated by "|" - over a directory or stdin, and can commit
Transformed matches back to disk.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runQuery,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if outputShape != "" && !slices.Contains(validOutputFormats, outputShape) {
			return fmt.Errorf("invalid output shape: %s (valid: %v)", outputShape, validOutputFormats)
		}
		if commitFlag && dryRunFlag {
			return fmt.Errorf("--commit and --dry-run are mutually exclusive")
		}
		if editorFlag != "" {
			return fmt.Errorf("--editor %q: %w", editorFlag, ierr.ErrNotImplemented)
		}
		if themeFlag != "" {
			return fmt.Errorf("--theme %q: %w", themeFlag, ierr.ErrNotImplemented)
		}
		return nil
	},
}

// Execute runs the root command and handles process lifecycle: opens the
// audit logger, runs the command, closes the logger, and exits non-zero on
// error or (for the quiet output shape) on "nothing matched".
func Execute() {
	if err := auditlog.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer auditlog.Close()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
