package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsonenv/json_env/internal/config"
)

// cliResult holds what one in-process invocation produced.
type cliResult struct {
	stdout string
	stderr string
	code   int
}

// testEnv is an isolated home with its own config dir and trust store.
type testEnv struct {
	home    string
	environ []string
}

// newTestEnv points HOME and XDG_CONFIG_HOME at a fresh temp dir.
// Tests using it cannot run in parallel.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := resolvePath(t, t.TempDir())
	configHome := filepath.Join(home, ".config")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("NO_COLOR", "1")

	return &testEnv{
		home: home,
		environ: []string{
			"HOME=" + home,
			"XDG_CONFIG_HOME=" + configHome,
			"PATH=" + os.Getenv("PATH"),
			"SHELL=/bin/bash",
			"NO_COLOR=1",
		},
	}
}

// run executes json_env in workDir with the test environment plus extra.
func (e *testEnv) run(t *testing.T, workDir string, extra []string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr}

	ctx := config.WithWorkDir(context.Background(), workDir)
	ctx = config.WithEnv(ctx, append(append([]string{}, e.environ...), extra...))

	code := a.execute(ctx, args)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func mustSucceed(t *testing.T, r cliResult) {
	t.Helper()
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstdout: %s\nstderr: %s", r.code, r.stdout, r.stderr)
	}
}
