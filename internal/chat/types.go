// Package chat implements the session state machine: draft sessions that
// track global settings, configuration freezing on first message, title
// promotion, and the user/assistant turn exchange.
package chat

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Mode is the learning mode a session is configured with.
type Mode string

const (
	ModeVocabulary  Mode = "vocabulary"
	ModeGrammar     Mode = "grammar"
	ModeTrainer     Mode = "trainer"
	ModeLearning    Mode = "learning"
	ModeComposition Mode = "composition"
)

// Modes lists all learning modes in display order.
var Modes = []Mode{ModeVocabulary, ModeGrammar, ModeTrainer, ModeLearning, ModeComposition}

// ParseMode returns the mode matching s, or ModeLearning if unknown.
func ParseMode(s string) Mode {
	for _, m := range Modes {
		if string(m) == s {
			return m
		}
	}
	return ModeLearning
}

// Difficulty is the student proficiency level a session is configured with.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all difficulty levels in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty returns the difficulty matching s, or DifficultyMedium if unknown.
func ParseDifficulty(s string) Difficulty {
	for _, d := range Difficulties {
		if string(d) == s {
			return d
		}
	}
	return DifficultyMedium
}

// Model identifiers for the Gemini backend.
const (
	ModelFlash      = "gemini-3-flash-preview"
	ModelPro        = "gemini-3-pro-preview"
	ModelFlashImage = "gemini-2.5-flash-image"
)

// ModelNames maps model identifiers to their display names.
var ModelNames = map[string]string{
	ModelFlash:      "Gemini 3 Flash",
	ModelPro:        "Gemini 3 Pro",
	ModelFlashImage: "Gemini 2.5 Image",
}

// Models lists the selectable model identifiers in display order.
var Models = []string{ModelFlash, ModelPro, ModelFlashImage}

// Role of a turn author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Theme is the UI color theme, persisted with the rest of the state.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// AttachmentKind classifies what kind of media an attachment carries.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentVideo AttachmentKind = "video"
	AttachmentAudio AttachmentKind = "audio"
)

// Attachment is a media file attached to a user turn. Data is base64-encoded.
type Attachment struct {
	Kind     AttachmentKind `json:"type"`
	Data     string         `json:"data"`
	MIMEType string         `json:"mime_type"`
	Name     string         `json:"name"`
}

// Turn is a single message in a session.
type Turn struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Timestamp   int64        `json:"timestamp"`
}

func (t Turn) clone() Turn {
	c := t
	if t.Attachments != nil {
		c.Attachments = make([]Attachment, len(t.Attachments))
		copy(c.Attachments, t.Attachments)
	}
	return c
}

// Selection is the mode/difficulty/model triple a new session starts with.
type Selection struct {
	Mode       Mode
	Difficulty Difficulty
	Model      string
}

// DefaultSelection returns the settings used before the user changes anything.
func DefaultSelection() Selection {
	return Selection{
		Mode:       ModeLearning,
		Difficulty: DifficultyMedium,
		Model:      ModelFlash,
	}
}

// Session is one conversation with its frozen configuration.
type Session struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	Model      string     `json:"model"`
	Turns      []Turn     `json:"messages"`
	CreatedAt  int64      `json:"created_at"`
}

// IsDraft reports whether the session has no turns yet. Draft sessions track
// global settings and are never persisted.
func (s Session) IsDraft() bool {
	return len(s.Turns) == 0
}

func (s Session) clone() Session {
	c := s
	c.Turns = make([]Turn, len(s.Turns))
	for i, t := range s.Turns {
		c.Turns[i] = t.clone()
	}
	return c
}

// State is everything that survives a restart.
type State struct {
	Sessions []Session `json:"sessions"`
	ActiveID string    `json:"active_id,omitempty"`
	Theme    Theme     `json:"theme"`
}

func defaultState() State {
	return State{Theme: ThemeLight}
}

func (st State) clone() State {
	c := st
	c.Sessions = make([]Session, len(st.Sessions))
	for i, s := range st.Sessions {
		c.Sessions[i] = s.clone()
	}
	return c
}

// titleLimit is the number of grapheme clusters kept from the first message.
const titleLimit = 32

// deriveTitle builds a session title from the first user message. The prefix
// is cut on grapheme boundaries so combined characters stay intact.
func deriveTitle(content string) string {
	gr := uniseg.NewGraphemes(content)
	var b strings.Builder
	n := 0
	truncated := false
	for gr.Next() {
		if n == titleLimit {
			truncated = true
			break
		}
		b.WriteString(gr.Str())
		n++
	}
	title := strings.TrimSpace(b.String())
	if truncated {
		title += "..."
	}
	return title
}
