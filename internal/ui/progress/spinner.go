// Package progress shows a spinner while a long-running step runs.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/fw/internal/ui/styles"
)

// elapsedAfter is how long a step runs before its duration is shown.
const elapsedAfter = 3 * time.Second

type setMessage string

type spinnerModel struct {
	spinner spinner.Model
	message string
	started time.Time
	now     func() time.Time
}

func newSpinnerModel(message string, now func() time.Time) spinnerModel {
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.PrimaryStyle))
	return spinnerModel{spinner: sp, message: message, started: now(), now: now}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if text, ok := msg.(setMessage); ok {
		m.message = string(text)
		m.started = m.now()
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) render() string {
	if m.message == "" {
		return ""
	}
	line := m.spinner.View() + " " + m.message
	if d := m.now().Sub(m.started); d >= elapsedAfter {
		line += styles.MutedStyle.Render(fmt.Sprintf(" (%ds)", int(d.Seconds())))
	}
	return line
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(m.render())
}

// Spinner animates a message on a terminal until stopped. It never reads
// input, so prompts can take over the terminal after Stop.
type Spinner struct {
	out     io.Writer
	mu      sync.Mutex
	message string
	program *tea.Program
	done    chan struct{}
}

// NewSpinner creates a stopped spinner that draws on out.
func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{out: out, message: message}
}

// Start begins the animation. Starting a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program != nil {
		return
	}

	s.program = tea.NewProgram(newSpinnerModel(s.message, time.Now),
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(s.out),
		tea.WithColorProfile(colorprofile.Detect(s.out, os.Environ())),
	)
	s.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(s.program, s.done)
}

// UpdateMessage replaces the message and restarts the elapsed timer.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if s.program != nil {
		go s.program.Send(setMessage(message))
	}
}

// Running reports whether the spinner is animating.
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program != nil
}

// Stop ends the animation and clears its line. Stopping a stopped spinner
// does nothing.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program = nil
	s.mu.Unlock()
	if p == nil {
		return
	}

	p.Quit()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		p.Kill()
	}
	fmt.Fprint(s.out, "\r\033[K")
}
