package gemini

import (
	"encoding/base64"
	"log/slog"
	"strings"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/vkazakov/repetitor/internal/chat"
)

func TestSystemInstruction(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	got := systemInstruction(chat.ModeGrammar, chat.DifficultyHard, now)

	if !strings.Contains(got, "нейро-учитель английского языка") {
		t.Error("missing base prompt")
	}
	if !strings.Contains(got, modeInstructions[chat.ModeGrammar]) {
		t.Error("missing mode instruction")
	}
	if !strings.Contains(got, "УРОВЕНЬ СЛОЖНОСТИ: hard") {
		t.Error("missing difficulty")
	}
	if !strings.Contains(got, "14.03.2026, 15:09:26") {
		t.Errorf("missing timestamp, got: %s", got)
	}
	if !strings.Contains(got, "в рамках режима grammar") {
		t.Error("missing level-test addendum")
	}
}

func TestSystemInstructionCoversAllModes(t *testing.T) {
	for _, m := range chat.Modes {
		if _, ok := modeInstructions[m]; !ok {
			t.Errorf("no instruction for mode %q", m)
		}
	}
}

func TestBuildContentsRoles(t *testing.T) {
	c := &Client{log: slog.Default()}
	history := []chat.Turn{
		{Role: chat.RoleUser, Content: "Hello"},
		{Role: chat.RoleAssistant, Content: "Hi!"},
	}

	contents := c.buildContents(history)
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != genai.RoleUser {
		t.Errorf("first role = %q, want user", contents[0].Role)
	}
	if contents[1].Role != genai.RoleModel {
		t.Errorf("second role = %q, want model", contents[1].Role)
	}
	if contents[0].Parts[0].Text != "Hello" {
		t.Errorf("text part = %q", contents[0].Parts[0].Text)
	}
}

func TestBuildContentsAttachments(t *testing.T) {
	c := &Client{log: slog.Default()}
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	history := []chat.Turn{
		{
			Role:    chat.RoleUser,
			Content: "what is this?",
			Attachments: []chat.Attachment{
				{Kind: chat.AttachmentImage, Data: base64.StdEncoding.EncodeToString(raw), MIMEType: "image/png", Name: "pic.png"},
			},
		},
	}

	contents := c.buildContents(history)
	parts := contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected text + inline data parts, got %d", len(parts))
	}
	blob := parts[1].InlineData
	if blob == nil {
		t.Fatal("second part has no inline data")
	}
	if blob.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q", blob.MIMEType)
	}
	if string(blob.Data) != string(raw) {
		t.Error("attachment bytes mangled")
	}
}

func TestBuildContentsSkipsBadBase64(t *testing.T) {
	c := &Client{log: slog.Default()}
	history := []chat.Turn{
		{
			Role:    chat.RoleUser,
			Content: "hi",
			Attachments: []chat.Attachment{
				{Kind: chat.AttachmentImage, Data: "!!not base64!!", MIMEType: "image/png", Name: "bad.png"},
			},
		},
	}

	contents := c.buildContents(history)
	if len(contents[0].Parts) != 1 {
		t.Errorf("bad attachment should be skipped, got %d parts", len(contents[0].Parts))
	}
}
