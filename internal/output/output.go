// Package output writes fw's primary results to stdout: the status link
// table, changelog records, resolved config and bare versions. Progress and
// diagnostics go to stderr through report and log.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
)

type ctxKey struct{}

// Printer writes results. Styled text is downsampled to the color
// profile of the destination, so pipes and files receive plain text.
type Printer struct {
	w *colorprofile.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: colorprofile.NewWriter(w, os.Environ())}
}

// WithPrinter attaches a Printer writing to w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext retrieves the Printer from context, or one writing to
// os.Stdout.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Block writes s terminated by exactly one newline. Empty blocks are skipped.
func (p *Printer) Block(s string) {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return
	}
	fmt.Fprintln(p.w, s)
}

// Println writes a line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer returns the profile-aware writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Unstyled reports whether styling is stripped for this destination.
func (p *Printer) Unstyled() bool {
	return p.w.Profile <= colorprofile.NoTTY
}
