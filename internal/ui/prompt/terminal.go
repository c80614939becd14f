package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/fw/internal/engine"
	"github.com/raphi011/fw/internal/ui/styles"
)

// Terminal asks questions interactively. Prompts render to Out (stderr by
// default) so stdout stays clean for piping.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

var _ engine.Prompter = (*Terminal)(nil)

// NewTerminal returns a Terminal on stdin/stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	profile := colorprofile.Detect(t.Out, os.Environ())
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
		tea.WithColorProfile(profile),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return nil, engine.ErrCancelled
		}
		return nil, err
	}
	return final, nil
}

// echo leaves the answered question in the scrollback.
func (t *Terminal) echo(message, answer string) {
	fmt.Fprintf(t.Out, "%s %s\n", styles.Bold.Render(message), styles.MutedStyle.Render(answer))
}

// Confirm asks a yes/no question. Enter picks req.Default.
func (t *Terminal) Confirm(ctx context.Context, req engine.ConfirmRequest) (bool, error) {
	final, err := t.run(ctx, confirmModel{prompt: req.Message, def: req.Default})
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, engine.ErrCancelled
	}
	answer := "no"
	if m.confirmed {
		answer = "yes"
	}
	t.echo(req.Message, answer)
	return m.confirmed, nil
}

// Select asks for one of req.Options and returns its index.
func (t *Terminal) Select(ctx context.Context, req engine.SelectRequest) (int, error) {
	if len(req.Options) == 0 {
		return -1, engine.ErrCancelled
	}
	final, err := t.run(ctx, newSelectModel(req.Message, req.Options, req.Default))
	if err != nil {
		return -1, err
	}
	m := final.(selectModel)
	if m.cancelled || m.selected < 0 || m.selected >= len(req.Options) {
		return -1, engine.ErrCancelled
	}
	t.echo(req.Message, req.Options[m.selected])
	return m.selected, nil
}

// Input asks for a line of text.
func (t *Terminal) Input(ctx context.Context, req engine.InputRequest) (string, error) {
	final, err := t.run(ctx, newTextInputModel(req.Message, req.Placeholder, req.Default))
	if err != nil {
		return "", err
	}
	m := final.(textInputModel)
	if m.cancelled {
		return "", engine.ErrCancelled
	}
	t.echo(req.Message, m.value)
	return m.value, nil
}
