package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/config"
	"github.com/jsonenv/json_env/internal/locate"
	"github.com/jsonenv/json_env/internal/output"
	"github.com/jsonenv/json_env/internal/shell"
	"github.com/jsonenv/json_env/internal/ui/static"
	"github.com/jsonenv/json_env/internal/ui/styles"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show config files, trust and hook state",
		Aliases: []string{"st"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Show every config file from the working directory up to the root with
its trust state, the trust store location, and whether the shell hook is
installed. The file marked * is the one used by default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)
			workDir := config.WorkDirFromContext(ctx)

			initStyles(cfg)
			w := styles.Writer(out.Writer())

			files, err := locate.FindAllUp(workDir, cfg.FileName)
			if err != nil {
				return err
			}
			store, err := openTrustStore(cfg)
			if err != nil {
				return err
			}

			if len(files) == 0 {
				fmt.Fprintf(w, "No %s found in %s or any parent directory\n", cfg.FileName, workDir)
			} else {
				rows := make([][]string, 0, len(files))
				for i, f := range files {
					rows = append(rows, static.StatusTableRow(static.FileStatus{
						Path:    f,
						Trusted: store.IsTrusted(f),
						Active:  i == 0,
					}))
				}
				fmt.Fprint(w, static.RenderTable(static.StatusHeaders, rows))
			}

			fmt.Fprintf(w, "\nTrust store: %s\n", store.Path())

			variant, err := shell.Detect(config.Getenv(ctx, "SHELL"))
			if err != nil {
				fmt.Fprintf(w, "Shell hook:  %s\n", styles.MutedStyle.Render("unknown shell"))
				return nil
			}
			home, err := homeDir(ctx)
			if err != nil {
				return err
			}
			installed, err := shell.Installed(variant, home)
			if err != nil {
				return err
			}
			if installed {
				fmt.Fprintf(w, "Shell hook:  %s (%s)\n", styles.SuccessStyle.Render("installed"), filepath.Join(home, variant.Profile))
			} else {
				fmt.Fprintf(w, "Shell hook:  %s, run 'json_env install'\n", styles.WarningStyle.Render("not installed"))
			}
			return nil
		},
	}

	return cmd
}
