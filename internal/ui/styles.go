package ui

import "charm.land/lipgloss/v2"

// Color palette - regenerated whenever the theme changes
var (
	ColorPrimary     = lipgloss.Color("#6366F1")
	ColorSecondary   = lipgloss.Color("#0891B2")
	ColorBorder      = lipgloss.Color("#D1D5DB")
	ColorBorderFocus = lipgloss.Color("#6366F1")
	ColorText        = lipgloss.Color("#1F2937")
	ColorTextMuted   = lipgloss.Color("#6B7280")
	ColorTextInverse = lipgloss.Color("#FFFFFF")
	ColorUser        = lipgloss.Color("#7C3AED")
	ColorAssistant   = lipgloss.Color("#0891B2")
	ColorWarning     = lipgloss.Color("#D97706")
	ColorError       = lipgloss.Color("#DC2626")
)

// Header and footer styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextInverse).
			Background(ColorPrimary).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Sidebar styles
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#E0E7FF")).
				Foreground(ColorText).
				Bold(true).
				Padding(0, 1)
)

// Chat styles
var (
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
				Foreground(ColorAssistant).
				Bold(true)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	AttachmentStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Layout constants
const (
	HeaderHeight     = 1
	FooterHeight     = 1
	SidebarWidth     = 32
	InputHeight      = 3
	InputTotalHeight = InputHeight + 2 // input plus its border
	MinTerminalWidth = 60
)
