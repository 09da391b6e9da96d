package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/config"
	"github.com/jsonenv/json_env/internal/log"
	"github.com/jsonenv/json_env/internal/shell"
	"github.com/jsonenv/json_env/internal/ui/prompt"
)

func newExportCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "export [shell]",
		Short:     "Print export statements for the current shell",
		GroupID:   GroupCore,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: shell.Names(),
		Long: `Print shell statements that export the resolved variables.

Files that are not yet trusted must be confirmed first. Confirming records
them in the trust store so the shell hook picks them up from then on.
Without a terminal the confirmation is declined; pass --yes to trust
non-interactively.

The shell defaults to the one named by $SHELL.`,
		Example: `  eval "$(json_env export)"            # export into the current shell
  json_env export fish | source        # fish
  json_env -f ci.json export bash -y   # trust without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			variant, err := shellVariant(ctx, args)
			if err != nil {
				return err
			}

			sources, err := a.sources(ctx, cfg)
			if err != nil {
				return err
			}
			res, err := a.resolve(ctx, cfg, sources)
			if err != nil {
				return err
			}

			store, err := openTrustStore(cfg)
			if err != nil {
				return err
			}
			for _, file := range uniqueFiles(sources) {
				if store.IsTrusted(file) {
					continue
				}
				if !yes {
					initStyles(cfg)
					answer, err := prompt.Confirm(fmt.Sprintf("Trust %s and export its variables?", file))
					if err != nil {
						return err
					}
					if !answer.Confirmed {
						return fmt.Errorf("%s is not trusted (run 'json_env trust %s' or pass --yes)", file, file)
					}
				}
				added, err := store.Trust(file)
				if err != nil {
					return err
				}
				if added {
					l.Printf("Trusted %s\n", file)
				}
			}

			printScript(ctx, variant, res.Vars, true)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Trust untrusted files without asking")

	return cmd
}
