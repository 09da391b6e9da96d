package spawn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsonenv/json_env/internal/log"
)

// waitDelay bounds how long Run waits for the child after cancellation.
const waitDelay = 5 * time.Second

// SpawnError reports a program that could not be started.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not start executable '%s': %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError reports a child that ran but did not exit cleanly.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// ExitCode returns the status to mirror.
func (e *ExitError) ExitCode() int { return e.Code }

// Stdio holds the streams handed to the child. Nil fields fall back to the
// process's own streams.
type Stdio struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Run starts name with args and env, waits for it, and reports how it ended.
func Run(ctx context.Context, name string, args, env []string) error {
	return RunWithStdio(ctx, name, args, env, Stdio{})
}

// RunWithStdio is Run with explicit streams.
func RunWithStdio(ctx context.Context, name string, args, env []string, stdio Stdio) error {
	l := log.FromContext(ctx)

	path, err := exec.LookPath(name)
	if err != nil {
		return &SpawnError{Name: name, Err: err}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Args[0] = name
	cmd.Env = env
	cmd.Stdin = orDefault(stdio.Stdin, os.Stdin)
	cmd.Stdout = orDefault(stdio.Stdout, os.Stdout)
	cmd.Stderr = orDefault(stdio.Stderr, os.Stderr)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = waitDelay

	done := l.Command("", name, args...)
	start := time.Now()

	// Notify before Start: a signal arriving before the relay runs must not
	// terminate json_env.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return &SpawnError{Name: name, Err: err}
	}

	stop := relaySignals(cmd.Process, sigs)
	err = cmd.Wait()
	stop()
	done(time.Since(start))

	return exitStatus(ctx, name, err)
}

// relaySignals passes signals from sigs on to p until the returned function
// is called. SIGINT and SIGQUIT are only absorbed: the terminal sends them
// to the whole foreground process group, so the child already has them.
func relaySignals(p *os.Process, sigs <-chan os.Signal) func() {
	quit := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				if relayed(sig) {
					_ = p.Signal(sig)
				}
			case <-quit:
				return
			}
		}
	}()

	return func() { close(quit) }
}

// relayed reports whether sig is passed on to the child.
func relayed(sig os.Signal) bool {
	return sig == syscall.SIGTERM
}

func exitStatus(ctx context.Context, name string, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return &ExitError{Name: name, Code: 128 + int(ws.Signal())}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &ExitError{Name: name, Code: exitErr.ExitCode()}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("run %s: %w", name, err)
}

func orDefault(f, def *os.File) *os.File {
	if f != nil {
		return f
	}
	return def
}
