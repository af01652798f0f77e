package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/vkazakov/repetitor/internal/chat"
)

// sidebarSpinnerFrames is a shimmering spinner shown next to the session that
// is waiting for a reply.
var sidebarSpinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// sidebarSpinnerHoldTimes defines how long each frame is held (in ticks).
// First and last frames hold longer for a "breathing" effect.
var sidebarSpinnerHoldTimes = []int{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3}

// SidebarTickMsg advances the spinner animation
type SidebarTickMsg time.Time

// SidebarTick returns a command that sends the next animation tick.
func SidebarTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return SidebarTickMsg(t)
	})
}

// Sidebar is the left panel listing saved sessions.
type Sidebar struct {
	sessions     []chat.Session // only sessions with turns
	activeID     string
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int
	busyID       string // session currently waiting for a reply
	spinnerFrame int
	spinnerTick  int
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state.
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetSessions replaces the session list. Draft sessions are hidden; the
// selection follows the active session when possible.
func (s *Sidebar) SetSessions(sessions []chat.Session, activeID string) {
	s.sessions = s.sessions[:0]
	for _, sess := range sessions {
		if !sess.IsDraft() {
			s.sessions = append(s.sessions, sess)
		}
	}
	s.activeID = activeID

	for i, sess := range s.sessions {
		if sess.ID == activeID {
			s.selectedIdx = i
			break
		}
	}
	if s.selectedIdx >= len(s.sessions) {
		s.selectedIdx = max(0, len(s.sessions)-1)
	}
	s.clampScroll()
}

// SetBusy marks the session waiting for a reply, or clears it with "".
func (s *Sidebar) SetBusy(sessionID string) {
	s.busyID = sessionID
}

// AdvanceSpinner moves the spinner animation one tick forward.
func (s *Sidebar) AdvanceSpinner() {
	s.spinnerTick++
	if s.spinnerTick >= sidebarSpinnerHoldTimes[s.spinnerFrame] {
		s.spinnerTick = 0
		s.spinnerFrame = (s.spinnerFrame + 1) % len(sidebarSpinnerFrames)
	}
}

// MoveUp moves the selection up one row.
func (s *Sidebar) MoveUp() {
	if s.selectedIdx > 0 {
		s.selectedIdx--
	}
	s.clampScroll()
}

// MoveDown moves the selection down one row.
func (s *Sidebar) MoveDown() {
	if s.selectedIdx < len(s.sessions)-1 {
		s.selectedIdx++
	}
	s.clampScroll()
}

// Selected returns the highlighted session, if any.
func (s *Sidebar) Selected() (chat.Session, bool) {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.sessions) {
		return chat.Session{}, false
	}
	return s.sessions[s.selectedIdx], true
}

// Count returns the number of listed sessions.
func (s *Sidebar) Count() int {
	return len(s.sessions)
}

func (s *Sidebar) visibleRows() int {
	// panel borders and the title row
	rows := s.height - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (s *Sidebar) clampScroll() {
	rows := s.visibleRows()
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+rows {
		s.scrollOffset = s.selectedIdx - rows + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

// View renders the sidebar panel.
func (s *Sidebar) View() string {
	innerWidth := s.width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}

	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Чаты"))
	sb.WriteString("\n")

	if len(s.sessions) == 0 {
		empty := SidebarItemStyle.Foreground(ColorTextMuted).Italic(true).Render("Нет сохранённых чатов")
		sb.WriteString(empty)
	} else {
		rows := s.visibleRows()
		end := s.scrollOffset + rows
		if end > len(s.sessions) {
			end = len(s.sessions)
		}
		for i := s.scrollOffset; i < end; i++ {
			sess := s.sessions[i]
			line := s.renderItem(sess, i == s.selectedIdx, innerWidth)
			sb.WriteString(line)
			if i < end-1 {
				sb.WriteString("\n")
			}
		}
	}

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}
	return style.Width(s.width - 2).Height(s.height - 2).Render(sb.String())
}

func (s *Sidebar) renderItem(sess chat.Session, selected bool, width int) string {
	marker := "  "
	if sess.ID == s.activeID {
		marker = "▸ "
	}
	if sess.ID == s.busyID {
		marker = sidebarSpinnerFrames[s.spinnerFrame] + " "
	}

	title := sess.Title
	if title == "" {
		title = "Новый чат"
	}
	label := ModeLabels[sess.Mode]

	// marker, mode tag, and item padding all eat into the row
	maxTitle := width - runewidth.StringWidth(marker) - runewidth.StringWidth(label) - 4
	if maxTitle < 4 {
		maxTitle = 4
	}
	title = runewidth.Truncate(title, maxTitle, "…")

	line := marker + title + " " + SuggestionStyle.Render(label)
	if selected {
		return SidebarSelectedStyle.Width(width).Render(line)
	}
	return SidebarItemStyle.Width(width).Render(line)
}
