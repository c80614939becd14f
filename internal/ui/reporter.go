package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/fw/internal/report"
	"github.com/raphi011/fw/internal/ui/progress"
	"github.com/raphi011/fw/internal/ui/styles"
)

// Reporter renders report events on a terminal.
type Reporter struct {
	out     io.Writer // color-downsampled
	raw     io.Writer // spinner output; bubbletea detects the terminal itself
	animate bool

	mu      sync.Mutex
	spinner *progress.Spinner
}

var _ report.Reporter = (*Reporter)(nil)

// NewReporter returns a Reporter writing to out. With animate set,
// progress events show a spinner until the next event arrives.
func NewReporter(out io.Writer, animate bool) *Reporter {
	return &Reporter{
		out:     colorprofile.NewWriter(out, os.Environ()),
		raw:     out,
		animate: animate,
	}
}

// Report implements report.Reporter.
func (r *Reporter) Report(e report.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopSpinner()
	if e.Kind == report.KindProgress && r.animate {
		r.spinner = progress.NewSpinner(r.raw, e.Message)
		r.spinner.Start()
		return
	}
	fmt.Fprintln(r.out, Format(e))
}

// Close stops a running spinner.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopSpinner()
}

func (r *Reporter) stopSpinner() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}

// Format renders a single event without a trailing newline.
func Format(e report.Event) string {
	switch e.Kind {
	case report.KindStep:
		return "\n" + styles.StepStyle.Render(e.Message)
	case report.KindProgress:
		return styles.MutedStyle.Render("… " + e.Message)
	case report.KindSuccess:
		return styles.SuccessStyle.Render("✓") + " " + e.Message
	case report.KindWarning:
		return styles.WarningStyle.Render("!") + " " + e.Message
	case report.KindError:
		return styles.ErrorStyle.Render("✗") + " " + e.Message
	case report.KindBlock:
		return formatBlock(e.Message, e.Lines)
	default:
		return "  " + e.Message
	}
}

func formatBlock(title string, lines []string) string {
	var b strings.Builder
	b.WriteString(styles.Bold.Render(title))
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(l)
	}
	return styles.RoundedBorder.Render(b.String())
}
