package main

import (
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `{
  "NODE_ENV": "DEV",
  "PORT": 3000,
  "nested": {"hello": "world"},
  "TEST": "$FOO"
}`

func TestRun_PassesVariablesToProgram(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)

	r := e.run(t, dir, nil, "sh", "-c", `test "$NODE_ENV" = DEV && test "$PORT" = 3000`)
	mustSucceed(t, r)
}

func TestRun_FindsFileInParent(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)
	sub := filepath.Join(dir, "a", "b")
	writeFile(t, filepath.Join(sub, "keep"), "")

	r := e.run(t, sub, nil, "sh", "-c", `test "$NODE_ENV" = DEV`)
	mustSucceed(t, r)
}

func TestRun_MirrorsExitCode(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)

	r := e.run(t, dir, nil, "sh", "-c", "exit 7")
	if r.code != 7 {
		t.Errorf("exit code = %d, want 7", r.code)
	}
	if r.stderr != "" {
		t.Errorf("stderr = %q, want empty", r.stderr)
	}
}

func TestRun_ProgramFlagsPassThrough(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)

	// -v and -s belong to sh's script here, not to json_env.
	r := e.run(t, dir, nil, "sh", "-c", `test "$1" = -v && test "$2" = -s`, "sh", "-v", "-s")
	mustSucceed(t, r)
}

func TestRun_UnknownProgram(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)

	r := e.run(t, dir, nil, "json-env-no-such-program")
	if r.code != 1 {
		t.Errorf("exit code = %d, want 1", r.code)
	}
	if !strings.Contains(r.stderr, "could not start executable 'json-env-no-such-program'") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestRun_SilentSuppressesErrors(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()

	r := e.run(t, dir, nil, "-s", "sh", "-c", "exit 0")
	if r.code != 1 {
		t.Errorf("exit code = %d, want 1", r.code)
	}
	if r.stderr != "" {
		t.Errorf("stderr = %q, want empty in silent mode", r.stderr)
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()

	r := e.run(t, dir, nil, "sh", "-c", "exit 0")
	if r.code != 1 {
		t.Errorf("exit code = %d, want 1", r.code)
	}
	if !strings.Contains(r.stderr, "no .env.json") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestRun_DoubleDashRunsProgramNamedLikeCommand(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)

	r := e.run(t, dir, nil, "--", "show")
	if !strings.Contains(r.stderr, "could not start executable 'show'") {
		t.Errorf("stderr = %q, want spawn failure for program 'show'", r.stderr)
	}
}

func TestRoot_NoArgsShowsHelp(t *testing.T) {
	e := newTestEnv(t)

	r := e.run(t, t.TempDir(), nil)
	mustSucceed(t, r)
	if !strings.Contains(r.stdout, "Usage:") {
		t.Errorf("stdout = %q, want help", r.stdout)
	}
}

func TestRoot_SilentAndVerboseConflict(t *testing.T) {
	e := newTestEnv(t)

	r := e.run(t, t.TempDir(), nil, "-s", "-v", "show")
	if r.code != 1 {
		t.Errorf("exit code = %d, want 1", r.code)
	}
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)

	r := e.run(t, dir, nil, "-v", "show")
	mustSucceed(t, r)
	if !strings.Contains(r.stderr, "loaded config") {
		t.Errorf("stderr = %q, want debug output", r.stderr)
	}
	if strings.Contains(r.stdout, "loaded config") {
		t.Error("debug output leaked to stdout")
	}
}

func TestRoot_InvalidConfigFile(t *testing.T) {
	e := newTestEnv(t)
	writeFile(t, filepath.Join(e.home, ".config", "json_env", "config.toml"), "bogus = 1\n")

	r := e.run(t, t.TempDir(), nil, "version")
	if r.code != 1 || !strings.Contains(r.stderr, "bogus") {
		t.Errorf("code = %d, stderr = %q", r.code, r.stderr)
	}
}
