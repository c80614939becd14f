package prompt

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/fw/internal/ui/styles"
)

var (
	yesKey    = key.NewBinding(key.WithKeys("y", "Y"))
	noKey     = key.NewBinding(key.WithKeys("n", "N"))
	acceptKey = key.NewBinding(key.WithKeys("enter"))
	abortKey  = key.NewBinding(key.WithKeys("ctrl+c", "esc", "q"))
)

// confirmModel is a single-keystroke yes/no question.
type confirmModel struct {
	prompt    string
	def       bool
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(press, yesKey):
		return m.finish(true, false)
	case key.Matches(press, noKey):
		return m.finish(false, false)
	case key.Matches(press, acceptKey):
		return m.finish(m.def, false)
	case key.Matches(press, abortKey):
		return m.finish(false, true)
	}
	return m, nil
}

func (m confirmModel) finish(confirmed, cancelled bool) (tea.Model, tea.Cmd) {
	m.confirmed = confirmed
	m.cancelled = cancelled
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) render() string {
	if m.done {
		return ""
	}
	hint := "[y/N]"
	if m.def {
		hint = "[Y/n]"
	}
	return styles.Bold.Render(m.prompt) + " " + styles.MutedStyle.Render(hint) + " "
}

func (m confirmModel) View() tea.View {
	return tea.NewView(m.render())
}
