package ui

import (
	"strings"
	"testing"

	"github.com/vkazakov/repetitor/internal/chat"
)

func testSessions() []chat.Session {
	return []chat.Session{
		{ID: "a", Title: "Present Simple", Mode: chat.ModeGrammar,
			Turns: []chat.Turn{{ID: "t1", Role: chat.RoleUser, Content: "hi"}}},
		{ID: "b", Title: "Еда и напитки", Mode: chat.ModeVocabulary,
			Turns: []chat.Turn{{ID: "t2", Role: chat.RoleUser, Content: "hi"}}},
	}
}

func TestSidebarHidesDrafts(t *testing.T) {
	s := NewSidebar()
	sessions := append(testSessions(), chat.Session{ID: "draft", Turns: []chat.Turn{}})
	s.SetSessions(sessions, "a")

	if s.Count() != 2 {
		t.Errorf("Count = %d, want 2 (draft hidden)", s.Count())
	}
}

func TestSidebarSelectionFollowsActive(t *testing.T) {
	s := NewSidebar()
	s.SetSessions(testSessions(), "b")

	sel, ok := s.Selected()
	if !ok || sel.ID != "b" {
		t.Errorf("Selected = %+v, want session b", sel)
	}
}

func TestSidebarNavigation(t *testing.T) {
	s := NewSidebar()
	s.SetSessions(testSessions(), "a")

	s.MoveDown()
	if sel, _ := s.Selected(); sel.ID != "b" {
		t.Errorf("after MoveDown Selected = %q, want b", sel.ID)
	}
	s.MoveDown() // already at the bottom
	if sel, _ := s.Selected(); sel.ID != "b" {
		t.Errorf("MoveDown past end moved selection to %q", sel.ID)
	}
	s.MoveUp()
	if sel, _ := s.Selected(); sel.ID != "a" {
		t.Errorf("after MoveUp Selected = %q, want a", sel.ID)
	}
}

func TestSidebarViewShowsTitles(t *testing.T) {
	s := NewSidebar()
	s.SetSize(32, 20)
	s.SetSessions(testSessions(), "a")

	view := s.View()
	if !strings.Contains(view, "Present Simple") {
		t.Error("view missing session title")
	}
	if !strings.Contains(view, "Чаты") {
		t.Error("view missing panel title")
	}
}

func TestSidebarViewEmpty(t *testing.T) {
	s := NewSidebar()
	s.SetSize(32, 20)
	s.SetSessions(nil, "")

	if !strings.Contains(s.View(), "Нет сохранённых чатов") {
		t.Error("empty sidebar missing placeholder")
	}
}

func TestSidebarSpinnerAdvances(t *testing.T) {
	s := NewSidebar()
	start := s.spinnerFrame
	// First frame is held for several ticks
	for i := 0; i < sidebarSpinnerHoldTimes[0]; i++ {
		s.AdvanceSpinner()
	}
	if s.spinnerFrame == start {
		t.Error("spinner did not advance after hold time")
	}
}
