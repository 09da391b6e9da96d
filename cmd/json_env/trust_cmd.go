package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/config"
	"github.com/jsonenv/json_env/internal/output"
	"github.com/jsonenv/json_env/internal/trust"
	"github.com/jsonenv/json_env/internal/ui/static"
	"github.com/jsonenv/json_env/internal/ui/styles"
)

func newTrustCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "trust [file]",
		Short:   "Mark a config file as trusted",
		GroupID: GroupTrust,
		Args:    cobra.MaximumNArgs(1),
		Long: `Record a config file as trusted so the shell hook exports it.

Without an argument, trusts the file nearest to the working directory.
Paths are stored with symlinks resolved. Trusting is permanent; edit the
trust store to revoke.`,
		Example: `  json_env trust                  # trust ./.env.json (or a parent's)
  json_env trust ../shared.json   # trust a specific file
  json_env trust --list           # list trusted files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			store, err := openTrustStore(cfg)
			if err != nil {
				return err
			}

			if list {
				if len(args) > 0 {
					return errors.New("--list does not take a file")
				}
				return listTrusted(cfg, store, out)
			}

			var file string
			if len(args) > 0 {
				file = absPath(config.WorkDirFromContext(ctx), args[0])
			} else {
				file, err = locateFile(ctx, cfg)
				if err != nil {
					return err
				}
			}

			added, err := store.Trust(file)
			if err != nil {
				return err
			}
			canonical, err := trust.Canonical(file)
			if err != nil {
				canonical = file
			}
			if added {
				out.Printf("Trusted %s\n", canonical)
			} else {
				out.Printf("%s is already trusted\n", canonical)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List trusted files")

	return cmd
}

func listTrusted(cfg *config.Config, store *trust.Store, out *output.Printer) error {
	paths, err := store.List()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		out.Println("No trusted files")
		return nil
	}

	initStyles(cfg)
	rows := make([][]string, 0, len(paths))
	for _, p := range paths {
		state := styles.SuccessStyle.Render("ok")
		if _, err := os.Stat(p); err != nil {
			state = styles.WarningStyle.Render("missing")
		}
		rows = append(rows, []string{p, state})
	}
	fmt.Fprint(styles.Writer(out.Writer()), static.RenderTable([]string{"FILE", "STATE"}, rows))
	return nil
}
