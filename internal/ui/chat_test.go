package ui

import (
	"strings"
	"testing"

	"github.com/vkazakov/repetitor/internal/chat"
)

func testChatSession() chat.Session {
	return chat.Session{
		ID:    "a",
		Title: "Irregular Verbs",
		Mode:  chat.ModeGrammar,
		Turns: []chat.Turn{
			{ID: "t1", Role: chat.RoleUser, Content: "Hello"},
			{ID: "t2", Role: chat.RoleAssistant, Content: "Hi! Let's practice."},
		},
	}
}

func TestChatWelcomeShowsSuggestions(t *testing.T) {
	c := NewChat()
	c.SetSize(80, 24)
	c.SetSelection(chat.Selection{Mode: chat.ModeVocabulary, Difficulty: chat.DifficultyEasy, Model: chat.ModelFlash})

	view := c.View()
	if !strings.Contains(view, "Топ 100 глаголов") {
		t.Error("welcome view missing vocabulary suggestions")
	}
	if !strings.Contains(view, "Новый чат") {
		t.Error("welcome view missing title")
	}
}

func TestChatSuggestionCycleAndInsert(t *testing.T) {
	c := NewChat()
	c.SetSize(80, 24)

	if c.TakeSuggestion() {
		t.Fatal("TakeSuggestion should fail before anything is highlighted")
	}

	c.CycleSuggestion()
	if !strings.Contains(c.View(), "▸ Как учить английский?") {
		t.Error("first suggestion not highlighted after one cycle")
	}

	c.CycleSuggestion()
	if !c.TakeSuggestion() {
		t.Fatal("TakeSuggestion should succeed with a highlighted suggestion")
	}
	if got := c.GetInput(); got != "Разница между Do и Make" {
		t.Errorf("input = %q, want the second suggestion", got)
	}

	if c.TakeSuggestion() {
		t.Error("highlight should be cleared after insertion")
	}
}

func TestChatSuggestionHighlightResetsOnModeChange(t *testing.T) {
	c := NewChat()
	c.SetSize(80, 24)

	c.CycleSuggestion()
	c.SetSelection(chat.Selection{Mode: chat.ModeGrammar, Difficulty: chat.DifficultyMedium, Model: chat.ModelFlash})
	if c.TakeSuggestion() {
		t.Error("highlight should reset when the mode changes")
	}
}

func TestChatShowsConversation(t *testing.T) {
	c := NewChat()
	c.SetSize(80, 24)
	c.SetSession(testChatSession())

	view := c.View()
	if !strings.Contains(view, "Hello") {
		t.Error("view missing user message")
	}
	if !strings.Contains(view, "practice") {
		t.Error("view missing assistant message")
	}
	if !strings.Contains(view, "Irregular Verbs") {
		t.Error("view missing session title")
	}
}

func TestChatWaitingIndicator(t *testing.T) {
	c := NewChat()
	c.SetSize(80, 24)
	c.SetSession(testChatSession())
	c.SetWaiting(true)

	if !strings.Contains(c.View(), "Печатает") {
		t.Error("waiting view missing typing indicator")
	}

	c.SetWaiting(false)
	if strings.Contains(c.View(), "Печатает") {
		t.Error("typing indicator not cleared")
	}
}

func TestChatAttachments(t *testing.T) {
	c := NewChat()
	c.SetSize(80, 24)

	att := chat.Attachment{Kind: chat.AttachmentImage, Name: "homework.png", MIMEType: "image/png"}
	c.AddAttachment(att)

	if !c.HasAttachments() {
		t.Error("HasAttachments should be true")
	}
	if !strings.Contains(c.View(), "homework.png") {
		t.Error("pending attachment not shown")
	}

	taken := c.TakeAttachments()
	if len(taken) != 1 || taken[0].Name != "homework.png" {
		t.Errorf("TakeAttachments = %+v", taken)
	}
	if c.HasAttachments() {
		t.Error("attachments should be cleared after TakeAttachments")
	}
}

func TestChatLastReply(t *testing.T) {
	c := NewChat()
	c.SetSession(testChatSession())

	reply, ok := c.LastReply()
	if !ok || reply != "Hi! Let's practice." {
		t.Errorf("LastReply = %q, %v", reply, ok)
	}

	c.SetSession(chat.Session{ID: "x", Turns: []chat.Turn{{Role: chat.RoleUser, Content: "hi"}}})
	if _, ok := c.LastReply(); ok {
		t.Error("LastReply should be false without assistant turns")
	}
}

func TestChatInputRoundTrip(t *testing.T) {
	c := NewChat()
	c.input.SetValue("  Привет  ")
	if got := c.GetInput(); got != "Привет" {
		t.Errorf("GetInput = %q, want trimmed value", got)
	}
	c.ClearInput()
	if got := c.GetInput(); got != "" {
		t.Errorf("GetInput after clear = %q", got)
	}
}
