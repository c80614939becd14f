package ui

import (
	"strings"

	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/ui/styles"
)

// FormatError renders a failed command: the error line, then any guidance
// attached to the error chain, then the backup tag if one was created.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(styles.ErrorStyle.Render("✗ Error:"))
	b.WriteString(" ")
	b.WriteString(err.Error())

	if guidance := errs.GuidanceOf(err); len(guidance) > 0 {
		b.WriteString("\n\n")
		for i, line := range guidance {
			if i > 0 {
				b.WriteString("\n")
			}
			if line != "" {
				b.WriteString("  ")
				b.WriteString(line)
			}
		}
	}

	if e, ok := errs.As(err); ok {
		if tag := e.Detail(errs.DetailBackupTag); tag != "" {
			b.WriteString("\n\n")
			b.WriteString(styles.MutedStyle.Render("Backup tag: " + tag))
		}
	}
	return b.String()
}
