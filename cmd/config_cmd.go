// config_cmd.go implements "igr config" for viewing and setting the
// global/local YAML config, following the local-overrides-global cascade
// and flag shape of the teacher's extension/core/config.go.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/igr/internal/auditlog"
	"github.com/jpl-au/igr/internal/config"
)

var configLocal bool

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set igr config values",
		Long: `View or set configuration values.

  igr config                         # show all values
  igr config threads                 # show one value
  igr config threads 8                # set a value

Configuration locations:
  Global: ~/.igr/config.yaml
  Local:  .igr/config.yaml

Uses local config if it exists, otherwise global. Writes go to the same
place reads come from. Use --local to target local config explicitly.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().BoolVar(&configLocal, "local", false, "Use local config (.igr/config.yaml)")
	return c
}

func runConfig(_ *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if configLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		for k, v := range cfg.All() {
			fmt.Fprintf(Out(), "%s: %s\n", k, v)
		}
		auditlog.Event("config:view", "list").Write(nil)

	case 1:
		v, err := cfg.Get(args[0])
		auditlog.Event("config:view", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return fmt.Errorf("config get %q: %w", args[0], err)
		}
		fmt.Fprintln(Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			auditlog.Event("config:set", "set").Detail("key", args[0]).Write(err)
			return fmt.Errorf("config set %q: %w", args[0], err)
		}
		saveErr := cfg.Save()
		auditlog.Event("config:set", "set").Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return fmt.Errorf("config save: %w", saveErr)
		}
		fmt.Fprintf(Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newConfigCmd())
}
