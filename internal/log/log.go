// Package log provides context-aware logging for json_env.
//
// All diagnostics go to stderr so that stdout stays reserved for data the
// shell evaluates (export statements) or the user pipes (show output).
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// Logger writes user-facing diagnostics and verbose debug lines.
// Quiet (silent mode) suppresses everything, including warnings.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	debug   zerolog.Logger
}

// New creates a new logger.
func New(out io.Writer, verbose, quiet bool) *Logger {
	level := zerolog.Disabled
	if verbose && !quiet {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName},
	}
	return &Logger{
		out:     out,
		verbose: verbose,
		quiet:   quiet,
		debug:   zerolog.New(console).Level(level),
	}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a logger writing to io.Discard if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, false, false)
}

// Printf writes formatted output unless quiet.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output unless quiet.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warn prints a "json_env: " prefixed warning line unless quiet.
func (l *Logger) Warn(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, "json_env: "+format+"\n", args...)
}

// Debug logs a message with key/value pairs. Only printed in verbose mode.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}
	l.debug.Debug().Fields(keyvals).Msg(msg)
}

// Command logs an external command before it runs. The returned function
// is called with the elapsed time once the command finished.
// Only prints when verbose mode is enabled.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if dir != "" {
		line = fmt.Sprintf("[%s] $ %s", dir, line)
	} else {
		line = "$ " + line
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "%s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// IsVerbose returns true if verbose mode is enabled and not overridden by quiet.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// IsQuiet returns true in silent mode.
func (l *Logger) IsQuiet() bool {
	return l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
