package ui

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/vkazakov/repetitor/internal/chat"
)

// FormTheme returns a huh theme matching the current color palette. Called
// each time a form is created so it picks up theme changes.
func FormTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("> ")
		t.Focused.Option = lipgloss.NewStyle().Foreground(ColorText)
		t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base

		return t
	})
}

// NewSessionForm is the modal for configuring a new chat: learning mode,
// difficulty level, and model.
type NewSessionForm struct {
	form       *huh.Form
	mode       string
	difficulty string
	model      string
}

// NewNewSessionForm creates the form pre-filled with the current selection.
func NewNewSessionForm(sel chat.Selection) *NewSessionForm {
	f := &NewSessionForm{
		mode:       string(sel.Mode),
		difficulty: string(sel.Difficulty),
		model:      sel.Model,
	}

	modeOptions := make([]huh.Option[string], len(chat.Modes))
	for i, m := range chat.Modes {
		modeOptions[i] = huh.NewOption(ModeLabels[m], string(m))
	}

	difficultyOptions := make([]huh.Option[string], len(chat.Difficulties))
	for i, d := range chat.Difficulties {
		difficultyOptions[i] = huh.NewOption(DifficultyLabels[d], string(d))
	}

	modelOptions := make([]huh.Option[string], len(chat.Models))
	for i, m := range chat.Models {
		modelOptions[i] = huh.NewOption(chat.ModelNames[m], m)
	}

	f.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Режим").
			Options(modeOptions...).
			Value(&f.mode),
		huh.NewSelect[string]().
			Title("Уровень").
			Options(difficultyOptions...).
			Value(&f.difficulty),
		huh.NewSelect[string]().
			Title("Модель").
			Options(modelOptions...).
			Value(&f.model),
	)).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(44)

	// Initialize eagerly so the form renders correctly immediately
	f.form.Init()
	return f
}

// Update forwards a message to the form.
func (f *NewSessionForm) Update(msg tea.Msg) tea.Cmd {
	m, cmd := f.form.Update(msg)
	f.form = m.(*huh.Form)
	return cmd
}

// Completed reports whether the user submitted the form.
func (f *NewSessionForm) Completed() bool {
	return f.form.State == huh.StateCompleted
}

// Selection returns the configured settings.
func (f *NewSessionForm) Selection() chat.Selection {
	return chat.Selection{
		Mode:       chat.ParseMode(f.mode),
		Difficulty: chat.ParseDifficulty(f.difficulty),
		Model:      f.model,
	}
}

// View renders the form inside a modal box.
func (f *NewSessionForm) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1).
		Render("Новый чат")

	help := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1).
		Render("Enter: создать  Esc: отмена")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, f.form.View(), help))
}
