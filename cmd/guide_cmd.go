// guide_cmd.go implements "igr guide": prints the query-language cheat
// sheet, glamour-rendered for a terminal. Grounded on the teacher's
// extension/core/guide.go command shape.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/igr/internal/render"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show the igr query-language and usage guide",
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := render.RenderGuide()
			if err != nil {
				return fmt.Errorf("guide: %w", err)
			}
			fmt.Fprint(Out(), content)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newGuideCmd())
}
