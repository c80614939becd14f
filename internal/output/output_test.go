package output

import (
	"bytes"
	"context"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adds newline", "1.2.0", "1.2.0\n"},
		{"collapses trailing newlines", "## 1.2.1 (PATCH)\n\n- fix\n\n\n", "## 1.2.1 (PATCH)\n\n- fix\n"},
		{"skips empty", "", ""},
		{"skips newline only", "\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			New(&buf).Block(tt.in)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_StripsStylingForNonTerminal(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	p := New(&buf)
	p.Println(lipgloss.NewStyle().Bold(true).Render("valid"))

	assert.True(t, p.Unstyled())
	assert.Equal(t, "valid\n", buf.String())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithPrinter(context.Background(), &buf)
	FromContext(ctx).Println("from context")
	assert.Equal(t, "from context\n", buf.String())

	assert.NotNil(t, FromContext(context.Background()).Writer())
}
