package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsonenv/json_env/internal/config"
	"github.com/jsonenv/json_env/internal/expand"
	"github.com/jsonenv/json_env/internal/log"
	"github.com/jsonenv/json_env/internal/output"
	"github.com/jsonenv/json_env/internal/resolve"
	"github.com/jsonenv/json_env/internal/spawn"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupTrust  = "trust"
	GroupShell  = "shell"
	GroupConfig = "config"
)

// app holds global flags and the streams commands write to.
type app struct {
	stdout io.Writer
	stderr io.Writer

	files   []string
	paths   []string
	expand  bool
	silent  bool
	verbose bool
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json_env [flags] <command> [args...]",
		Short: "Run programs with environment variables from .env.json",
		Long: `json_env reads environment variables from a structured config file
(.env.json by default, found in the current directory or any parent) and
starts the given program with those variables added to its environment.

Flags for json_env must come before the program name; everything after it
is passed to the program untouched. Use -- to run a program whose name
matches a json_env command.

With the shell hook installed (json_env install), variables from trusted
files are exported into the shell whenever you change directory.`,
		Example: `  json_env node server.js                  # run with ./.env.json (or a parent's)
  json_env -p '$.development' npm start    # select a sub-object
  json_env -f base.json -f local.json make # later files override earlier ones
  json_env -e ./deploy.sh                  # expand $NAME references in values
  json_env -- show                         # run a program called "show"`,
		Args:                       cobra.ArbitraryArgs,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runProgram(cmd.Context(), args)
		},
	}

	// Stop at the program name so its own flags reach it.
	cmd.Flags().SetInterspersed(false)

	pf := cmd.PersistentFlags()
	pf.StringArrayVarP(&a.files, "file", "f", nil, "Config file to read (repeatable, later files win)")
	pf.StringArrayVarP(&a.paths, "path", "p", nil, "JSONPath expression selecting the variables (repeatable)")
	pf.BoolVarP(&a.expand, "expand", "e", false, "Substitute $NAME references in values")
	pf.BoolVarP(&a.silent, "silent", "s", false, "Suppress all diagnostics")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Show what is loaded and executed")
	cmd.MarkFlagsMutuallyExclusive("silent", "verbose")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupTrust, Title: "Trust Commands:"},
		&cobra.Group{ID: GroupShell, Title: "Shell Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newStatusCmd())

	// Trust commands
	cmd.AddCommand(newTrustCmd(a))

	// Shell commands
	cmd.AddCommand(newHookCmd(a))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newInstallCmd())

	// Config commands
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads config and attaches logger, printer and config to the
// command's context.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	l := log.New(a.stderr, a.verbose, a.silent)
	ctx = log.WithLogger(ctx, l)
	ctx = output.WithPrinter(ctx, a.stdout)

	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("locate config: %w", err)
	}
	cfg, err := config.Load(path, expand.Environ(config.EnvFromContext(ctx)))
	if err != nil {
		return err
	}
	l.Debug("loaded config", "path", path, "file_name", cfg.FileName, "default_path", cfg.DefaultPath)

	ctx = config.WithConfig(ctx, &cfg)
	cmd.SetContext(ctx)
	return nil
}

// runProgram resolves the configured sources and starts args[0] with the
// result merged over the inherited environment.
func (a *app) runProgram(ctx context.Context, args []string) error {
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	sources, err := a.sources(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := a.resolve(ctx, cfg, sources)
	if err != nil {
		return err
	}

	vars := withoutReserved(ctx, res.Vars)
	env := resolve.MergeEnviron(config.EnvFromContext(ctx), vars)
	l.Debug("starting program", "program", args[0], "vars", len(vars))
	return spawn.Run(ctx, args[0], args[1:], env)
}

// Execute runs the CLI against the process's arguments and environment and
// returns the exit status.
func Execute() int {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "json_env: failed to get working directory: %v\n", err)
		return 1
	}

	ctx := config.WithWorkDir(context.Background(), workDir)
	ctx = config.WithEnv(ctx, os.Environ())
	return a.execute(ctx, os.Args[1:])
}

// execute runs the command tree with args. A child's exit status is
// returned as is; any other error is reported (unless silent) as status 1.
func (a *app) execute(ctx context.Context, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *spawn.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	if !a.silent {
		fmt.Fprintf(a.stderr, "json_env: %v\n", err)
	}
	return 1
}
