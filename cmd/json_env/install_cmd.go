package main

import (
	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/output"
	"github.com/jsonenv/json_env/internal/shell"
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "install [shell]",
		Short:     "Add the shell hook to your profile",
		GroupID:   GroupShell,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: shell.Names(),
		Long: `Append the hook loader to the shell's profile (~/.bashrc, ~/.zshrc or
~/.config/fish/config.fish). Running it again changes nothing.

The shell defaults to the one named by $SHELL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			variant, err := shellVariant(ctx, args)
			if err != nil {
				return err
			}
			home, err := homeDir(ctx)
			if err != nil {
				return err
			}

			profile, added, err := shell.Install(variant, home)
			if err != nil {
				return err
			}
			if !added {
				out.Printf("Hook already installed in %s\n", profile)
				return nil
			}
			out.Printf("Added hook to %s\n", profile)
			out.Printf("Restart your shell or run: source %s\n", profile)
			return nil
		},
	}

	return cmd
}
