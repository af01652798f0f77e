package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vkazakov/repetitor/internal/chat"
)

// Chat is the right panel with the conversation view and the input box.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	md       *markdownRenderer

	width   int
	height  int
	focused bool

	session    chat.Session
	hasSession bool
	selection  chat.Selection // shown on the welcome screen

	// Index of the highlighted welcome-screen suggestion, -1 for none
	suggestionIdx int

	waiting      bool
	spinnerFrame int
	spinnerTick  int

	// Attachments staged for the next message
	pending []chat.Attachment
}

// NewChat creates the conversation panel.
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Напиши сообщение..."
	ti.CharLimit = 0
	ti.SetHeight(InputHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport:      vp,
		input:         ti,
		md:            newMarkdownRenderer(80),
		selection:     chat.DefaultSelection(),
		suggestionIdx: -1,
	}
	c.updateContent()
	return c
}

// SetSize sets the panel dimensions.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	innerWidth := width - 2
	viewportHeight := height - InputTotalHeight - 2
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	if innerWidth < 1 {
		innerWidth = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(innerWidth - 2)
	c.md.UpdateWidth(innerWidth - 2)
	c.updateContent()
}

// SetFocused sets the focus state.
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state.
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetSession shows a session's conversation.
func (c *Chat) SetSession(sess chat.Session) {
	c.session = sess
	c.hasSession = true
	c.updateContent()
	c.viewport.GotoBottom()
}

// ClearSession shows the welcome screen instead of a conversation.
func (c *Chat) ClearSession() {
	c.session = chat.Session{}
	c.hasSession = false
	c.updateContent()
}

// SetSelection updates the settings shown on the welcome screen.
func (c *Chat) SetSelection(sel chat.Selection) {
	if sel.Mode != c.selection.Mode {
		c.suggestionIdx = -1
	}
	c.selection = sel
	if !c.hasSession || c.session.IsDraft() {
		c.updateContent()
	}
}

// ShowingWelcome reports whether the welcome screen is visible instead of a
// conversation.
func (c *Chat) ShowingWelcome() bool {
	return !c.hasSession || c.session.IsDraft()
}

// CycleSuggestion moves the welcome-screen highlight to the next suggestion,
// wrapping around at the end.
func (c *Chat) CycleSuggestion() {
	suggestions := ModeSuggestions[c.selection.Mode]
	if !c.ShowingWelcome() || len(suggestions) == 0 {
		return
	}
	c.suggestionIdx = (c.suggestionIdx + 1) % len(suggestions)
	c.updateContent()
}

// TakeSuggestion inserts the highlighted suggestion into the input box and
// clears the highlight. Returns false if nothing is highlighted.
func (c *Chat) TakeSuggestion() bool {
	suggestions := ModeSuggestions[c.selection.Mode]
	if !c.ShowingWelcome() || c.suggestionIdx < 0 || c.suggestionIdx >= len(suggestions) {
		return false
	}
	c.input.SetValue(suggestions[c.suggestionIdx])
	c.suggestionIdx = -1
	c.updateContent()
	return true
}

// SetWaiting toggles the typing indicator.
func (c *Chat) SetWaiting(waiting bool) {
	c.waiting = waiting
	c.updateContent()
	if waiting {
		c.viewport.GotoBottom()
	}
}

// IsWaiting reports whether the typing indicator is visible.
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// AdvanceSpinner moves the typing animation one tick forward.
func (c *Chat) AdvanceSpinner() {
	c.spinnerTick++
	if c.spinnerTick >= sidebarSpinnerHoldTimes[c.spinnerFrame] {
		c.spinnerTick = 0
		c.spinnerFrame = (c.spinnerFrame + 1) % len(sidebarSpinnerFrames)
	}
	if c.waiting {
		c.updateContent()
	}
}

// GetInput returns the trimmed input text.
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field.
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// UpdateInput forwards a message to the textarea.
func (c *Chat) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// UpdateViewport forwards a message to the viewport for scrolling.
func (c *Chat) UpdateViewport(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

// AddAttachment stages an attachment for the next message.
func (c *Chat) AddAttachment(att chat.Attachment) {
	c.pending = append(c.pending, att)
	c.updateContent()
}

// TakeAttachments returns the staged attachments and clears them.
func (c *Chat) TakeAttachments() []chat.Attachment {
	atts := c.pending
	c.pending = nil
	c.updateContent()
	return atts
}

// HasAttachments reports whether attachments are staged.
func (c *Chat) HasAttachments() bool {
	return len(c.pending) > 0
}

// LastReply returns the most recent assistant turn's text, if any.
func (c *Chat) LastReply() (string, bool) {
	for i := len(c.session.Turns) - 1; i >= 0; i-- {
		if c.session.Turns[i].Role == chat.RoleAssistant {
			return c.session.Turns[i].Content, true
		}
	}
	return "", false
}

// updateContent re-renders the conversation into the viewport.
func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = 80
	}

	var content string
	if !c.hasSession || c.session.IsDraft() {
		content = c.renderWelcome()
	} else {
		content = c.renderTurns(wrapWidth)
	}

	c.viewport.SetContent(content)
}

// renderWelcome shows the current settings and first-prompt suggestions for
// a fresh chat.
func (c *Chat) renderWelcome() string {
	muted := lipgloss.NewStyle().Foreground(ColorTextMuted)
	title := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(title.Render("Привет! Я твой репетитор по английскому."))
	sb.WriteString("\n\n")
	sb.WriteString(muted.Render(fmt.Sprintf("Режим: %s  ·  Уровень: %s  ·  Модель: %s",
		ModeLabels[c.selection.Mode],
		DifficultyLabels[c.selection.Difficulty],
		chat.ModelNames[c.selection.Model])))
	sb.WriteString("\n\n")
	sb.WriteString(muted.Render("С чего начнём?"))
	sb.WriteString("\n")
	selected := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	for i, sg := range ModeSuggestions[c.selection.Mode] {
		if i == c.suggestionIdx {
			sb.WriteString(selected.Render("  ▸ " + sg))
		} else {
			sb.WriteString(SuggestionStyle.Render("  • " + sg))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(muted.Render("Tab — выбрать подсказку, Enter — вставить её в поле ввода"))
	sb.WriteString("\n")
	sb.WriteString(muted.Render("Ctrl+N — настроить новый чат, /attach <файл> — прикрепить файл"))
	return sb.String()
}

func (c *Chat) renderTurns(wrapWidth int) string {
	var sb strings.Builder

	for _, turn := range c.session.Turns {
		switch turn.Role {
		case chat.RoleUser:
			sb.WriteString(ChatUserStyle.Render("Ты:"))
		case chat.RoleAssistant:
			sb.WriteString(ChatAssistantStyle.Render("Репетитор:"))
		}
		sb.WriteString("\n")

		if turn.Role == chat.RoleAssistant {
			sb.WriteString(c.md.Render(turn.Content))
		} else {
			sb.WriteString(lipgloss.NewStyle().Width(wrapWidth).Render(turn.Content))
		}
		sb.WriteString("\n")

		for _, att := range turn.Attachments {
			sb.WriteString(AttachmentStyle.Render("  📎 " + att.Name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if c.waiting {
		frame := sidebarSpinnerFrames[c.spinnerFrame]
		sb.WriteString(StatusLoadingStyle.Render(frame + " Печатает..."))
		sb.WriteString("\n")
	}

	return sb.String()
}

// View renders the conversation panel with the input box below it.
func (c *Chat) View() string {
	panelStyle := PanelStyle
	inputStyle := ChatInputStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
		inputStyle = ChatInputFocusedStyle
	}

	var header string
	if c.hasSession && !c.session.IsDraft() {
		title := c.session.Title
		header = PanelTitleStyle.Render(title) + "\n"
	} else {
		header = PanelTitleStyle.Render("Новый чат") + "\n"
	}

	conversation := panelStyle.
		Width(c.width - 2).
		Height(c.viewport.Height() + 1).
		Render(header + c.viewport.View())

	inputView := c.input.View()
	if len(c.pending) > 0 {
		names := make([]string, len(c.pending))
		for i, att := range c.pending {
			names[i] = att.Name
		}
		inputView = AttachmentStyle.Render("📎 "+strings.Join(names, ", ")) + "\n" + inputView
	}
	input := inputStyle.Width(c.width - 4).Render(inputView)

	return lipgloss.JoinVertical(lipgloss.Left, conversation, input)
}
