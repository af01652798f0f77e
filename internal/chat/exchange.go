package chat

import (
	"context"

	"github.com/vkazakov/repetitor/internal/errors"
)

// Generator produces an assistant reply for a session's history. Attachments
// ride on the turns they belong to.
type Generator interface {
	Generate(ctx context.Context, model string, history []Turn, mode Mode, difficulty Difficulty) (string, error)
}

// ErrorReply is shown in place of an assistant reply when generation fails.
const ErrorReply = "### Ошибка\n\nНе удалось получить ответ. Проверьте соединение с интернетом или настройки ключа API."

// Send appends a user turn to the session and requests an assistant reply.
// It blocks until the exchange completes, so callers run it off the UI loop.
//
// The user turn is persisted before generation starts, so a crash mid-flight
// never loses the user's message. A generation failure produces ErrorReply as
// the assistant turn instead of surfacing an error.
//
// Returns false without side effects if the input is empty, the session does
// not exist, or another exchange is already in flight.
func (s *Store) Send(ctx context.Context, sessionID, content string, attachments []Attachment) bool {
	if content == "" && len(attachments) == 0 {
		return false
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		s.log.Debug("send rejected, exchange already in flight", "sessionID", sessionID)
		return false
	}
	i, found := findSession(s.state.Sessions, sessionID)
	if !found {
		s.mu.Unlock()
		s.log.Warn("send rejected", "error", errors.SessionNotFound(sessionID))
		return false
	}
	sess := &s.state.Sessions[i]

	turn := Turn{
		ID:        s.newID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: s.now().UnixMilli(),
	}
	if len(attachments) > 0 {
		turn.Attachments = attachments
	}

	// First message freezes the configuration and names the session
	if sess.IsDraft() && content != "" {
		sess.Title = deriveTitle(content)
	}
	sess.Turns = append(sess.Turns, turn)
	s.inFlight = true
	s.persistLocked()

	history := make([]Turn, len(sess.Turns))
	for j, t := range sess.Turns {
		history[j] = t.clone()
	}
	model, mode, difficulty := sess.Model, sess.Mode, sess.Difficulty
	s.mu.Unlock()

	reply := s.generate(ctx, model, history, mode, difficulty)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	// The session may have been deleted while we waited
	i, found = findSession(s.state.Sessions, sessionID)
	if !found {
		s.log.Warn("session deleted mid-exchange, dropping reply", "sessionID", sessionID)
		return true
	}
	s.state.Sessions[i].Turns = append(s.state.Sessions[i].Turns, Turn{
		ID:        s.newID(),
		Role:      RoleAssistant,
		Content:   reply,
		Timestamp: s.now().UnixMilli(),
	})
	s.persistLocked()
	return true
}

// generate calls the backend and converts every failure mode, panics
// included, into ErrorReply.
func (s *Store) generate(ctx context.Context, model string, history []Turn, mode Mode, difficulty Difficulty) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("generator panicked", "panic", r)
			reply = ErrorReply
		}
	}()

	text, err := s.gen.Generate(ctx, model, history, mode, difficulty)
	if err != nil {
		s.log.Error("generation failed", "model", model, "error", err)
		return ErrorReply
	}
	return text
}
