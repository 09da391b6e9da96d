package main

import (
	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/config"
	"github.com/jsonenv/json_env/internal/locate"
	"github.com/jsonenv/json_env/internal/log"
	"github.com/jsonenv/json_env/internal/shell"
	"github.com/jsonenv/json_env/internal/source"
)

func newHookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "hook <shell>",
		Short:     "Print exports for the directory hook",
		GroupID:   GroupShell,
		Args:      cobra.ExactArgs(1),
		ValidArgs: shell.Names(),
		Long: `Print export statements for the config file nearest to the working
directory, if that file is trusted. Called by the shell hook on every
directory change; see 'json_env init'.

Untrusted files are skipped with a notice on stderr (disable it with
hook.notify = false). Nothing is printed when no file is found.

Only keys that are valid shell variable names are exported. JSON_ENV_*
keys are never exported, since they would reconfigure json_env itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			variant, err := shell.Lookup(args[0])
			if err != nil {
				return err
			}

			workDir := config.WorkDirFromContext(ctx)
			file, found, err := locate.FindUp(workDir, cfg.FileName)
			if err != nil {
				return err
			}
			if !found {
				l.Debug("no config file", "dir", workDir, "name", cfg.FileName)
				return nil
			}

			store, err := openTrustStore(cfg)
			if err != nil {
				return err
			}
			if !store.IsTrusted(file) {
				if cfg.NotifyEnabled() {
					l.Warn("%s is not trusted, run 'json_env trust' to load it", file)
				}
				return nil
			}

			sources, err := source.Build([]string{file}, a.paths, cfg.DefaultPath)
			if err != nil {
				return err
			}
			res, err := a.resolve(ctx, cfg, sources)
			if err != nil {
				return err
			}

			printScript(ctx, variant, res.Vars, cfg.NotifyEnabled())
			return nil
		},
	}

	return cmd
}
