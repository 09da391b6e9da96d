package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsonenv/json_env/internal/config"
	"github.com/jsonenv/json_env/internal/expand"
	"github.com/jsonenv/json_env/internal/locate"
	"github.com/jsonenv/json_env/internal/log"
	"github.com/jsonenv/json_env/internal/output"
	"github.com/jsonenv/json_env/internal/resolve"
	"github.com/jsonenv/json_env/internal/shell"
	"github.com/jsonenv/json_env/internal/source"
	"github.com/jsonenv/json_env/internal/trust"
	"github.com/jsonenv/json_env/internal/ui/styles"
)

// errNoConfigFile is returned when no config file is found walking up.
var errNoConfigFile = errors.New("no config file found")

// sources builds the ordered source list from --file and --path, falling
// back to the config file nearest to the working directory.
func (a *app) sources(ctx context.Context, cfg *config.Config) ([]source.Source, error) {
	workDir := config.WorkDirFromContext(ctx)

	var files []string
	if len(a.files) == 0 {
		file, err := locateFile(ctx, cfg)
		if err != nil {
			return nil, err
		}
		files = []string{file}
	} else {
		for _, f := range a.files {
			files = append(files, absPath(workDir, f))
		}
	}

	return source.Build(files, a.paths, cfg.DefaultPath)
}

// resolve runs resolution with the context's environment snapshot.
func (a *app) resolve(ctx context.Context, cfg *config.Config, sources []source.Source) (*resolve.Result, error) {
	return resolve.Resolve(ctx, resolve.Request{
		Sources: sources,
		Env:     expand.Environ(config.EnvFromContext(ctx)),
		Expand:  a.expand || cfg.ExpandEnabled(),
	})
}

// locateFile finds the config file nearest to the working directory.
func locateFile(ctx context.Context, cfg *config.Config) (string, error) {
	workDir := config.WorkDirFromContext(ctx)
	path, found, err := locate.FindUp(workDir, cfg.FileName)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: no %s in %s or any parent directory", errNoConfigFile, cfg.FileName, workDir)
	}
	return path, nil
}

func absPath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// uniqueFiles lists each source file once, in first-use order.
func uniqueFiles(sources []source.Source) []string {
	var files []string
	seen := make(map[string]bool)
	for _, s := range sources {
		if !seen[s.File] {
			seen[s.File] = true
			files = append(files, s.File)
		}
	}
	return files
}

// openTrustStore opens the configured trust record, or the default one.
func openTrustStore(cfg *config.Config) (*trust.Store, error) {
	if cfg.TrustFile != "" {
		return trust.Open(cfg.TrustFile), nil
	}
	path, err := trust.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("locate trust store: %w", err)
	}
	return trust.Open(path), nil
}

// shellVariant returns the named shell, or the one $SHELL names.
func shellVariant(ctx context.Context, args []string) (shell.Variant, error) {
	if len(args) > 0 {
		return shell.Lookup(args[0])
	}
	return shell.Detect(config.Getenv(ctx, "SHELL"))
}

// homeDir returns $HOME from the context's environment.
func homeDir(ctx context.Context) (string, error) {
	if home := config.Getenv(ctx, "HOME"); home != "" {
		return home, nil
	}
	return os.UserHomeDir()
}

// initStyles applies the configured theme. Only commands that render styled
// output call it, since auto mode may query the terminal.
func initStyles(cfg *config.Config) {
	styles.Init(cfg.Theme)
}

// printScript prints the shell assignments for vars. Keys the shell cannot
// take are reported when warn is set.
func printScript(ctx context.Context, variant shell.Variant, vars map[string]string, warn bool) {
	script, skipped := variant.Script(vars)
	if warn {
		l := log.FromContext(ctx)
		for _, key := range skipped {
			if strings.HasPrefix(key, shell.ReservedPrefix) {
				l.Warn("not exporting %s: %s* variables configure json_env itself", key, shell.ReservedPrefix)
			} else {
				l.Warn("not exporting %q: not a valid shell variable name", key)
			}
		}
	}
	output.FromContext(ctx).Print(script)
}

// withoutReserved drops the variables that would reconfigure json_env in
// the child, reporting each one.
func withoutReserved(ctx context.Context, vars map[string]string) map[string]string {
	l := log.FromContext(ctx)
	kept := make(map[string]string, len(vars))
	for key, val := range vars {
		if strings.HasPrefix(key, shell.ReservedPrefix) {
			l.Warn("not passing %s: %s* variables configure json_env itself", key, shell.ReservedPrefix)
			continue
		}
		kept[key] = val
	}
	return kept
}
