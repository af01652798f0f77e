package ui

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/vkazakov/repetitor/internal/attach"
	"github.com/vkazakov/repetitor/internal/chat"
	"github.com/vkazakov/repetitor/internal/clipboard"
	"github.com/vkazakov/repetitor/internal/keys"
	"github.com/vkazakov/repetitor/internal/logger"
	"github.com/vkazakov/repetitor/internal/notification"
)

// Focus identifies which panel receives key input.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// sendDoneMsg is emitted when a turn exchange finishes.
type sendDoneMsg struct {
	sessionID string
	ok        bool
}

// Model is the root Bubble Tea model.
type Model struct {
	store   *chat.Store
	sidebar *Sidebar
	chat    *Chat
	form    *NewSessionForm // non-nil while the new-chat modal is open

	width         int
	height        int
	focus         Focus
	windowFocused bool
	status        string // transient message shown in the footer
}

// NewModel creates the root model around the session store.
func NewModel(store *chat.Store) *Model {
	SetTheme(store.Theme())

	m := &Model{
		store:         store,
		sidebar:       NewSidebar(),
		chat:          NewChat(),
		focus:         FocusChat,
		windowFocused: true,
	}
	m.chat.SetFocused(true)
	m.refresh()
	return m
}

// Init starts the animation ticker.
func (m *Model) Init() tea.Cmd {
	return SidebarTick()
}

// refresh re-reads the store and pushes state into the panels.
func (m *Model) refresh() {
	sessions := m.store.Sessions()
	activeID := m.store.ActiveID()
	m.sidebar.SetSessions(sessions, activeID)
	m.chat.SetSelection(m.store.Selection())

	if sess, ok := m.store.ActiveSession(); ok {
		m.chat.SetSession(sess)
	} else {
		m.chat.ClearSession()
	}
}

// Update routes messages. This is the core Bubble Tea update function.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		return m, nil

	case SidebarTickMsg:
		m.sidebar.AdvanceSpinner()
		m.chat.AdvanceSpinner()
		if m.store.InFlight() {
			m.sidebar.SetBusy(m.store.ActiveID())
			// Pick up the user turn that Send has already committed
			m.refresh()
		} else {
			m.sidebar.SetBusy("")
		}
		return m, SidebarTick()

	case sendDoneMsg:
		m.chat.SetWaiting(false)
		m.sidebar.SetBusy("")
		m.refresh()
		if msg.ok && !m.windowFocused {
			if sess, found := m.store.ActiveSession(); found && sess.ID == msg.sessionID {
				notification.ReplyReady(sess.Title)
			}
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Everything else (mouse, cursor blink) goes to both chat widgets
	return m, tea.Batch(m.chat.UpdateInput(msg), m.chat.UpdateViewport(msg))
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.status = ""

	// Modal captures all input while open
	if m.form != nil {
		if key == keys.Escape {
			m.form = nil
			return m, nil
		}
		cmd := m.form.Update(msg)
		if m.form.Completed() {
			sel := m.form.Selection()
			m.form = nil
			m.store.StartNewSession(sel)
			m.refresh()
			m.setFocus(FocusChat)
		}
		return m, cmd
	}

	switch key {
	case keys.CtrlC:
		return m, tea.Quit

	case keys.CtrlN:
		m.form = NewNewSessionForm(m.store.Selection())
		return m, nil

	case keys.CtrlT:
		theme := m.store.ToggleTheme()
		SetTheme(theme)
		m.refresh()
		return m, nil

	case keys.CtrlY:
		if reply, ok := m.chat.LastReply(); ok {
			if err := clipboard.WriteText(ansi.Strip(reply)); err != nil {
				m.status = "Не удалось скопировать"
			} else {
				m.status = "Ответ скопирован"
			}
		}
		return m, nil

	case keys.Tab:
		// On the welcome screen Tab cycles the first-prompt suggestions
		if m.focus == FocusChat && m.chat.ShowingWelcome() && m.chat.GetInput() == "" {
			m.chat.CycleSuggestion()
			return m, nil
		}
		m.toggleFocus()
		return m, nil

	case keys.ShiftTab:
		m.toggleFocus()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(key)
	}
	return m.handleChatKey(msg, key)
}

func (m *Model) handleSidebarKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Up, "k":
		m.sidebar.MoveUp()
	case keys.Down, "j":
		m.sidebar.MoveDown()
	case keys.Enter:
		if sess, ok := m.sidebar.Selected(); ok {
			m.store.SelectSession(sess.ID)
			m.refresh()
			m.setFocus(FocusChat)
		}
	case "d", keys.CtrlD:
		if sess, ok := m.sidebar.Selected(); ok {
			m.store.DeleteSession(sess.ID)
			m.refresh()
		}
	}
	return m, nil
}

func (m *Model) handleChatKey(msg tea.KeyPressMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter:
		if m.chat.GetInput() == "" && !m.chat.HasAttachments() && m.chat.TakeSuggestion() {
			return m, nil
		}
		return m, m.submit()
	case keys.PgUp, keys.PgDown:
		return m, m.chat.UpdateViewport(msg)
	}
	return m, m.chat.UpdateInput(msg)
}

// submit reads the input box and either runs a command or sends the message.
func (m *Model) submit() tea.Cmd {
	content := m.chat.GetInput()

	if path, ok := strings.CutPrefix(content, "/attach "); ok {
		att, err := attach.FromFile(strings.TrimSpace(path))
		if err != nil {
			logger.Warn("attach failed: %v", err)
			m.status = "Не удалось прикрепить файл"
			return nil
		}
		m.chat.AddAttachment(att)
		m.chat.ClearInput()
		m.status = "Файл прикреплён: " + att.Name
		return nil
	}

	attachments := m.chat.TakeAttachments()
	if content == "" && len(attachments) == 0 {
		return nil
	}
	if m.store.InFlight() {
		m.status = "Подожди, репетитор ещё печатает"
		return nil
	}

	sessionID := m.store.ActiveID()
	if _, ok := m.store.ActiveSession(); !ok {
		sessionID = m.store.StartNewSession(m.store.Selection())
	}

	m.chat.ClearInput()
	m.chat.SetWaiting(true)
	m.sidebar.SetBusy(sessionID)

	store := m.store
	return func() tea.Msg {
		ok := store.Send(context.Background(), sessionID, content, attachments)
		return sendDoneMsg{sessionID: sessionID, ok: ok}
	}
}

func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		m.setFocus(FocusChat)
	} else {
		m.setFocus(FocusSidebar)
	}
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.sidebar.SetFocused(f == FocusSidebar)
	m.chat.SetFocused(f == FocusChat)
}

// updateSizes recalculates panel dimensions from the terminal size.
func (m *Model) updateSizes() {
	contentHeight := m.height - HeaderHeight - FooterHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	sidebarWidth := SidebarWidth
	if m.width < MinTerminalWidth {
		sidebarWidth = m.width / 3
	}
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.chat.SetSize(m.width-sidebarWidth, contentHeight)
}

func (m *Model) headerView() string {
	return HeaderStyle.Width(m.width).Render("Репетитор — AI English Teacher")
}

func (m *Model) footerView() string {
	if m.status != "" {
		return FooterStyle.Width(m.width).Render(m.status)
	}

	hints := []struct{ key, desc string }{
		{"Enter", "отправить"},
		{"Ctrl+N", "новый чат"},
		{"Tab", "панели"},
		{"Ctrl+T", "тема"},
		{"Ctrl+Y", "копировать ответ"},
		{"Ctrl+C", "выход"},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = FooterKeyStyle.Render(h.key) + " " + h.desc
	}
	return FooterStyle.Width(m.width).Render(strings.Join(parts, "  "))
}

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Загрузка...")
		return v
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebar.View(),
		m.chat.View(),
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		panels,
		m.footerView(),
	)

	if m.form != nil {
		v.SetContent(lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.form.View(),
		))
		return v
	}

	v.SetContent(view)
	return v
}

// RenderToString renders the current view as a string, for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Загрузка..."
	}

	if m.form != nil {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.form.View(),
		)
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebar.View(),
		m.chat.View(),
	)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		panels,
		m.footerView(),
	)
}
