package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/config"
	"github.com/jsonenv/json_env/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage json_env configuration.

Config file: $XDG_CONFIG_HOME/json_env/config.toml (~/.config/json_env/config.toml)
Every setting can be overridden with a JSON_ENV_* environment variable.`,
		Example: `  json_env config init   # Create default config
  json_env config show   # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  json_env config init           # Create config
  json_env config init --force   # Overwrite existing config
  json_env config init --stdout  # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}

			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.Init(path, force); err != nil {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the configuration after applying the config file and JSON_ENV_*
overrides, with defaults filled in.`,
		Example: `  json_env config show          # as TOML
  json_env config show --json   # as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			eff, err := effectiveConfig(config.FromContext(ctx))
			if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(eff)
			}
			return toml.NewEncoder(out.Writer()).Encode(eff)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// effectiveConfig returns a copy of cfg with every unset setting replaced by
// the value json_env actually uses.
func effectiveConfig(cfg *config.Config) (config.Config, error) {
	eff := *cfg

	expand := cfg.ExpandEnabled()
	eff.Expand = &expand
	notify := cfg.NotifyEnabled()
	eff.Hook.Notify = &notify

	store, err := openTrustStore(cfg)
	if err != nil {
		return eff, err
	}
	eff.TrustFile = store.Path()

	return eff, nil
}
