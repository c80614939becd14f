// Package log provides context-aware diagnostics for fw.
//
// Everything here is verbose-only and goes to stderr as zerolog console
// records. Operator-facing progress goes through report.Reporter instead.
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

// Logger writes verbose diagnostics.
type Logger struct {
	out     io.Writer
	verbose bool
	zl      zerolog.Logger
}

// New creates a logger. Output is enabled only when verbose is set and
// quiet is not.
func New(out io.Writer, verbose, quiet bool) *Logger {
	verbose = verbose && !quiet
	level := zerolog.Disabled
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return &Logger{
		out:     out,
		verbose: verbose,
		zl:      zerolog.New(cw).Level(level),
	}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a silent logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, false, true)
}

// Debug logs msg with key/value pairs.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.verbose {
		return
	}
	ev := l.zl.Debug()
	for i := 0; i+1 < len(keyvals); i += 2 {
		ev = ev.Interface(fmt.Sprint(keyvals[i]), keyvals[i+1])
	}
	ev.Msg(msg)
}

// Command traces an external command. The returned func records the
// command line with its duration once the command has finished.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.verbose {
		return func(time.Duration) {}
	}
	line := "$ " + strings.TrimSpace(name+" "+strings.Join(args, " "))
	return func(d time.Duration) {
		ev := l.zl.Debug()
		if dir != "" {
			ev = ev.Str("dir", dir)
		}
		ev.Str("took", d.Round(time.Millisecond).String()).Msg(line)
	}
}

// IsVerbose reports whether diagnostics are written.
func (l *Logger) IsVerbose() bool {
	return l.verbose
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
