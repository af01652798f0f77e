package ui

import (
	"testing"

	"github.com/vkazakov/repetitor/internal/chat"
)

func TestSetTheme(t *testing.T) {
	defer SetTheme(chat.ThemeLight)

	SetTheme(chat.ThemeDark)
	if CurrentTheme().Name != "Dark" {
		t.Errorf("CurrentTheme().Name = %q, want Dark", CurrentTheme().Name)
	}

	SetTheme(chat.ThemeLight)
	if CurrentTheme().Name != "Light" {
		t.Errorf("CurrentTheme().Name = %q, want Light", CurrentTheme().Name)
	}
}

func TestSetThemeUnknownFallsBackToLight(t *testing.T) {
	defer SetTheme(chat.ThemeLight)

	SetTheme(chat.Theme("solarized"))
	if CurrentTheme().Name != "Light" {
		t.Errorf("CurrentTheme().Name = %q, want Light", CurrentTheme().Name)
	}
}

func TestBuiltinThemesComplete(t *testing.T) {
	for name, theme := range BuiltinThemes {
		if theme.Primary == "" || theme.Text == "" || theme.Border == "" {
			t.Errorf("theme %q is missing core colors: %+v", name, theme)
		}
	}
}

func TestModeLabelsAndSuggestionsCoverAllModes(t *testing.T) {
	for _, m := range chat.Modes {
		if _, ok := ModeLabels[m]; !ok {
			t.Errorf("no label for mode %q", m)
		}
		if len(ModeSuggestions[m]) == 0 {
			t.Errorf("no suggestions for mode %q", m)
		}
	}
	for _, d := range chat.Difficulties {
		if _, ok := DifficultyLabels[d]; !ok {
			t.Errorf("no label for difficulty %q", d)
		}
	}
}
