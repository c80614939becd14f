package prompt

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/fw/internal/ui/styles"
)

type selectKeys struct {
	up, down, choose, cancel key.Binding
}

var selectKeyMap = selectKeys{
	up:     key.NewBinding(key.WithKeys("up", "k", "shift+tab")),
	down:   key.NewBinding(key.WithKeys("down", "j", "tab")),
	choose: key.NewBinding(key.WithKeys("enter", "space")),
	cancel: key.NewBinding(key.WithKeys("ctrl+c", "esc", "q")),
}

// selectModel picks one option with the cursor or its 1-based number.
type selectModel struct {
	prompt    string
	options   []string
	cursor    int
	selected  int
	done      bool
	cancelled bool
}

func newSelectModel(prompt string, options []string, def int) selectModel {
	m := selectModel{prompt: prompt, options: options, selected: -1}
	if def > 0 && def < len(options) {
		m.cursor = def
	}
	return m
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(press, selectKeyMap.cancel):
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case key.Matches(press, selectKeyMap.choose):
		m.selected = m.cursor
		m.done = true
		return m, tea.Quit
	case key.Matches(press, selectKeyMap.up):
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case key.Matches(press, selectKeyMap.down):
		m.cursor = (m.cursor + 1) % len(m.options)
	default:
		if n := int(press.Code - '0'); press.Mod == 0 && n >= 1 && n <= len(m.options) && n <= 9 {
			m.cursor = n - 1
			m.selected = m.cursor
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) render() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.Bold.Render(m.prompt))
	b.WriteString("\n")
	for i, opt := range m.options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		if i == m.cursor {
			b.WriteString(styles.AccentStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedStyle.Render("↑/↓ move · enter select · 1-9 pick · esc cancel"))
	return b.String()
}

func (m selectModel) View() tea.View {
	return tea.NewView(m.render())
}
