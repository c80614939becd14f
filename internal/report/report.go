// Package report carries structured progress and result events from the
// engine to whatever renders them.
//
// The engine never writes to a terminal. It emits [Event]s to a [Reporter];
// the CLI renders them with styles, tests record them with [Recorder].
package report

import (
	"fmt"
	"strings"
)

// Kind classifies an event.
type Kind int

const (
	// KindStep marks the start of a numbered phase ("Verify environment").
	KindStep Kind = iota
	// KindProgress marks a long-running action starting; the next event of
	// any other kind ends it.
	KindProgress
	KindInfo
	KindSuccess
	KindWarning
	KindError
	// KindBlock is a titled multi-line box (guidance, summaries, diffs).
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindStep:
		return "step"
	case KindProgress:
		return "progress"
	case KindInfo:
		return "info"
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	case KindBlock:
		return "block"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single report.
type Event struct {
	Kind    Kind
	Message string
	Lines   []string // body for KindBlock
}

func (e Event) String() string {
	if len(e.Lines) == 0 {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %s\n%s", e.Kind, e.Message, strings.Join(e.Lines, "\n"))
}

// Reporter receives events.
type Reporter interface {
	Report(Event)
}

// Func adapts a function to a Reporter.
type Func func(Event)

func (f Func) Report(e Event) { f(e) }

// Discard drops every event.
var Discard Reporter = Func(func(Event) {})

// Step emits a KindStep event.
func Step(r Reporter, format string, args ...any) {
	r.Report(Event{Kind: KindStep, Message: fmt.Sprintf(format, args...)})
}

// Progress emits a KindProgress event.
func Progress(r Reporter, format string, args ...any) {
	r.Report(Event{Kind: KindProgress, Message: fmt.Sprintf(format, args...)})
}

// Info emits a KindInfo event.
func Info(r Reporter, format string, args ...any) {
	r.Report(Event{Kind: KindInfo, Message: fmt.Sprintf(format, args...)})
}

// Success emits a KindSuccess event.
func Success(r Reporter, format string, args ...any) {
	r.Report(Event{Kind: KindSuccess, Message: fmt.Sprintf(format, args...)})
}

// Warning emits a KindWarning event.
func Warning(r Reporter, format string, args ...any) {
	r.Report(Event{Kind: KindWarning, Message: fmt.Sprintf(format, args...)})
}

// Error emits a KindError event.
func Error(r Reporter, format string, args ...any) {
	r.Report(Event{Kind: KindError, Message: fmt.Sprintf(format, args...)})
}

// Block emits a titled multi-line block.
func Block(r Reporter, title string, lines ...string) {
	r.Report(Event{Kind: KindBlock, Message: title, Lines: lines})
}

// Recorder stores events in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Report(e Event) {
	r.Events = append(r.Events, e)
}

// Messages returns the messages of all events of kind k.
func (r *Recorder) Messages(k Kind) []string {
	var out []string
	for _, e := range r.Events {
		if e.Kind == k {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any event message or block line contains s.
func (r *Recorder) Contains(s string) bool {
	for _, e := range r.Events {
		if strings.Contains(e.Message, s) {
			return true
		}
		for _, l := range e.Lines {
			if strings.Contains(l, s) {
				return true
			}
		}
	}
	return false
}
