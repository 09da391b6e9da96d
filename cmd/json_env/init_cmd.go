package main

import (
	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/output"
	"github.com/jsonenv/json_env/internal/shell"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Print the shell hook",
		GroupID:   GroupShell,
		Args:      cobra.ExactArgs(1),
		ValidArgs: shell.Names(),
		Long: `Print the hook that exports trusted variables on every directory change.

Add the loader line to your shell profile, or run 'json_env install'.`,
		Example: `  # Bash (~/.bashrc)
  eval "$(json_env init bash)"

  # Zsh (~/.zshrc)
  eval "$(json_env init zsh)"

  # Fish (~/.config/fish/config.fish)
  json_env init fish | source`,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := shell.Lookup(args[0])
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Print(variant.Hook)
			return nil
		},
	}

	return cmd
}
