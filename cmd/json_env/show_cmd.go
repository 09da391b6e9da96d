package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/config"
	"github.com/jsonenv/json_env/internal/log"
	"github.com/jsonenv/json_env/internal/output"
	"github.com/jsonenv/json_env/internal/ui/static"
	"github.com/jsonenv/json_env/internal/ui/styles"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		asJSON      bool
		copyVars    bool
		withSources bool
	)

	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the resolved variables",
		Aliases: []string{"print"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Print the variables a program would receive, one KEY=VALUE per line,
sorted by name. The inherited environment is not included.`,
		Example: `  json_env show                   # KEY=VALUE lines
  json_env show --json            # as a JSON object
  json_env show --sources         # table with the source of each variable
  json_env -p '$.prod' show -c    # copy to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			sources, err := a.sources(ctx, cfg)
			if err != nil {
				return err
			}
			res, err := a.resolve(ctx, cfg, sources)
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				if err := out.JSON(res.Vars); err != nil {
					return err
				}
			case withSources:
				initStyles(cfg)
				keys := make([]string, len(res.Entries))
				for i, e := range res.Entries {
					keys[i] = e.Key
				}
				fmt.Fprint(styles.Writer(out.Writer()),
					static.RenderTable(static.VarsHeaders, static.VarsTableRows(keys, res.Vars, res.Origins)))
			default:
				out.Vars(res.Vars)
			}

			if copyVars {
				var b strings.Builder
				for _, e := range res.Entries {
					fmt.Fprintf(&b, "%s=%s\n", e.Key, e.Value)
				}
				if err := clipboard.WriteAll(b.String()); err != nil {
					l.Warn("failed to copy to clipboard: %v", err)
				} else {
					l.Printf("Copied %d variables to clipboard\n", len(res.Entries))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as a JSON object")
	cmd.Flags().BoolVarP(&copyVars, "copy", "c", false, "Also copy KEY=VALUE lines to the clipboard")
	cmd.Flags().BoolVar(&withSources, "sources", false, "Show which file and path set each variable")
	cmd.MarkFlagsMutuallyExclusive("json", "sources")

	return cmd
}
