package prompt

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/fw/internal/ui/styles"
)

// maxInputLength bounds a changelog description.
const maxInputLength = 200

// textInputModel reads one line. The value is trimmed on submit; empty
// answers are returned as-is and left to the caller to reject.
type textInputModel struct {
	input     textinput.Model
	prompt    string
	value     string
	done      bool
	cancelled bool
}

func newTextInputModel(prompt, placeholder, def string) textInputModel {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = maxInputLength
	in.SetWidth(60)
	in.SetValue(def)
	in.Focus()
	return textInputModel{input: in, prompt: prompt}
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if press, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(press, acceptKey):
			m.value = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case press.String() == "ctrl+c", press.String() == "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textInputModel) render() string {
	if m.done {
		return ""
	}
	return styles.Bold.Render(m.prompt) + "\n" + m.input.View()
}

func (m textInputModel) View() tea.View {
	return tea.NewView(m.render())
}
