package styles

import (
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/fw/internal/config"
)

func dark() bool  { return true }
func light() bool { return false }

func TestSelectTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    config.UIConfig
		isDark func() bool
		want   Theme
	}{
		{"empty config", config.UIConfig{}, dark, DefaultTheme},
		{"unknown name falls back", config.UIConfig{Theme: "solarized"}, dark, DefaultTheme},
		{"default has no light variant", config.UIConfig{Theme: "default", Mode: "light"}, light, DefaultTheme},
		{"auto on dark background", config.UIConfig{Theme: "nord", Mode: "auto"}, dark, NordTheme},
		{"auto on light background", config.UIConfig{Theme: "nord", Mode: "auto"}, light, NordLightTheme},
		{"explicit light", config.UIConfig{Theme: "gruvbox", Mode: "light"}, dark, GruvboxLightTheme},
		{"explicit dark", config.UIConfig{Theme: "catppuccin", Mode: "dark"}, light, CatppuccinMochaTheme},
		{"none", config.UIConfig{Theme: "none"}, dark, NoneTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := selectTheme(tt.cfg, tt.isDark)
			if got != tt.want {
				t.Errorf("selectTheme(%+v) = %+v, want %+v", tt.cfg, got, tt.want)
			}
		})
	}
}

func TestSelectTheme_DetectsOnlyWhenNeeded(t *testing.T) {
	t.Parallel()

	called := false
	probe := func() bool { called = true; return true }

	selectTheme(config.UIConfig{Theme: "default", Mode: "auto"}, probe)
	if called {
		t.Error("background detected for a dark-only theme")
	}
	selectTheme(config.UIConfig{Theme: "nord", Mode: "dark"}, probe)
	if called {
		t.Error("background detected for an explicit mode")
	}
}

func TestThemeNamesHavePresets(t *testing.T) {
	t.Parallel()

	for _, name := range config.ValidThemeNames {
		if _, ok := themeFamilies[name]; !ok {
			t.Errorf("theme %q accepted by config has no preset", name)
		}
	}
}

func TestApplyTheme_UpdatesGlobalStyles(t *testing.T) {
	applyTheme(NordTheme)
	t.Cleanup(func() {
		currentTheme = DefaultTheme
		applyTheme(DefaultTheme)
	})

	if Primary != lipgloss.Color("#88c0d0") {
		t.Errorf("expected Primary to be updated to nord color, got %v", Primary)
	}
	if PrimaryStyle.GetForeground() != lipgloss.Color("#88c0d0") {
		t.Errorf("expected PrimaryStyle foreground to be updated, got %v",
			PrimaryStyle.GetForeground())
	}
	if StepStyle.GetForeground() != lipgloss.Color("#88c0d0") {
		t.Errorf("expected StepStyle foreground to be updated, got %v",
			StepStyle.GetForeground())
	}
}
