package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidUpdateChecks are the allowed update.check values.
var ValidUpdateChecks = []string{CheckUpstream, CheckOutgoing}

// ValidThemeNames are the preset theme families.
var ValidThemeNames = []string{"default", "none", "nord", "gruvbox", "catppuccin"}

// ValidThemeModes are the allowed ui.mode values.
var ValidThemeModes = []string{"auto", "light", "dark"}

// Validate checks enum fields and the upstream reference.
func (c *Config) Validate() error {
	if err := validateEnum(c.Update.Check, "update.check", ValidUpdateChecks); err != nil {
		return err
	}
	if err := validateEnum(c.UI.Theme, "ui.theme", ValidThemeNames); err != nil {
		return err
	}
	if err := validateEnum(c.UI.Mode, "ui.mode", ValidThemeModes); err != nil {
		return err
	}
	if strings.ContainsAny(c.Push.BaseRef, " \t") {
		return fmt.Errorf("invalid push.base_ref %q: must be a git ref", c.Push.BaseRef)
	}
	if _, err := c.Ref(); err != nil {
		return fmt.Errorf("invalid remote.repo: %w", err)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
