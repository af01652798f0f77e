package chat

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vkazakov/repetitor/internal/blob"
	"github.com/vkazakov/repetitor/internal/errors"
	"github.com/vkazakov/repetitor/internal/logger"
)

// StateKey is the blob key the whole application state is stored under.
const StateKey = "ai_english_teacher_v4_state"

// Store owns the session state. All methods are safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     State
	selection Selection
	inFlight  bool

	blob  blob.Store
	gen   Generator
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// New creates a Store backed by the given blob store and generator, restoring
// any previously saved state.
func New(bs blob.Store, gen Generator) *Store {
	s := &Store{
		state:     defaultState(),
		selection: DefaultSelection(),
		blob:      bs,
		gen:       gen,
		log:       logger.ComponentLogger("Chat"),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	s.load()
	return s
}

// load restores state from the blob store. Anything unreadable falls back to
// the default state so a corrupt file never blocks startup.
func (s *Store) load() {
	data, ok, err := s.blob.Get(StateKey)
	if err != nil {
		s.log.Warn("failed to read saved state, starting fresh", "error", err)
		return
	}
	if !ok {
		s.log.Info("no saved state found")
		return
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Warn("saved state is malformed, starting fresh", "error", err)
		return
	}

	// Only sessions with turns are restored
	kept := st.Sessions[:0]
	for _, sess := range st.Sessions {
		if !sess.IsDraft() {
			kept = append(kept, sess)
		}
	}
	st.Sessions = kept

	if st.ActiveID != "" {
		if _, found := findSession(st.Sessions, st.ActiveID); !found {
			st.ActiveID = ""
		}
	}
	if st.Theme != ThemeDark {
		st.Theme = ThemeLight
	}

	s.state = st
	if i, found := findSession(st.Sessions, st.ActiveID); found {
		sess := st.Sessions[i]
		s.selection = Selection{Mode: sess.Mode, Difficulty: sess.Difficulty, Model: sess.Model}
	}
	s.log.Info("state restored", "sessions", len(st.Sessions), "activeID", st.ActiveID)
}

// persistLocked writes the current state to the blob store, skipping draft
// sessions. Failures are logged and otherwise ignored. Caller must hold mu.
func (s *Store) persistLocked() {
	st := s.state
	persisted := State{
		Sessions: make([]Session, 0, len(st.Sessions)),
		ActiveID: st.ActiveID,
		Theme:    st.Theme,
	}
	for _, sess := range st.Sessions {
		if !sess.IsDraft() {
			persisted.Sessions = append(persisted.Sessions, sess)
		}
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		s.log.Error("failed to encode state", "error", err)
		return
	}
	if err := s.blob.Set(StateKey, data); err != nil {
		s.log.Error("failed to save state", "error", err)
	}
}

func findSession(sessions []Session, id string) (int, bool) {
	for i := range sessions {
		if sessions[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// activeLocked returns a pointer to the active session, or nil.
func (s *Store) activeLocked() *Session {
	if s.state.ActiveID == "" {
		return nil
	}
	if i, found := findSession(s.state.Sessions, s.state.ActiveID); found {
		return &s.state.Sessions[i]
	}
	return nil
}

// reconcileDraftLocked copies the current selection onto the active session if
// it is still a draft. Frozen sessions are never touched.
func (s *Store) reconcileDraftLocked() {
	sess := s.activeLocked()
	if sess == nil || !sess.IsDraft() {
		return
	}
	sess.Mode = s.selection.Mode
	sess.Difficulty = s.selection.Difficulty
	sess.Model = s.selection.Model
}

// StartNewSession creates a draft session with the given settings and makes it
// active. If the active session is already a draft it is reconfigured in place
// instead of creating a second one. Returns the session id.
func (s *Store) StartNewSession(sel Selection) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = sel

	if sess := s.activeLocked(); sess != nil && sess.IsDraft() {
		s.reconcileDraftLocked()
		s.log.Debug("reused active draft", "sessionID", sess.ID)
		return sess.ID
	}

	sess := Session{
		ID:         s.newID(),
		Mode:       sel.Mode,
		Difficulty: sel.Difficulty,
		Model:      sel.Model,
		Turns:      []Turn{},
		CreatedAt:  s.now().UnixMilli(),
	}
	s.state.Sessions = append([]Session{sess}, s.state.Sessions...)
	s.state.ActiveID = sess.ID
	s.persistLocked()
	s.log.Info("session created", "sessionID", sess.ID, "mode", sel.Mode, "model", sel.Model)
	return sess.ID
}

// SelectSession makes the session with the given id active and adopts its
// settings as the current selection. Unknown ids are ignored.
func (s *Store) SelectSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := findSession(s.state.Sessions, id)
	if !found {
		s.log.Warn("select ignored", "error", errors.SessionNotFound(id))
		return
	}
	sess := s.state.Sessions[i]
	s.selection = Selection{Mode: sess.Mode, Difficulty: sess.Difficulty, Model: sess.Model}
	s.state.ActiveID = id
	s.persistLocked()
}

// DeleteSession removes a session. If it was active, the first remaining
// session becomes active, or none if the list is now empty.
func (s *Store) DeleteSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := findSession(s.state.Sessions, id)
	if !found {
		return
	}
	s.state.Sessions = append(s.state.Sessions[:i], s.state.Sessions[i+1:]...)

	if s.state.ActiveID == id {
		if len(s.state.Sessions) > 0 {
			s.state.ActiveID = s.state.Sessions[0].ID
		} else {
			s.state.ActiveID = ""
		}
	}
	s.persistLocked()
	s.log.Info("session deleted", "sessionID", id, "activeID", s.state.ActiveID)
}

// SetMode updates the global mode selection. An active draft follows the
// change immediately.
func (s *Store) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Mode = m
	s.reconcileDraftLocked()
}

// SetDifficulty updates the global difficulty selection.
func (s *Store) SetDifficulty(d Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Difficulty = d
	s.reconcileDraftLocked()
}

// SetModel updates the global model selection.
func (s *Store) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Model = model
	s.reconcileDraftLocked()
}

// ToggleTheme switches between the light and dark themes and persists the
// choice.
func (s *Store) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Theme == ThemeDark {
		s.state.Theme = ThemeLight
	} else {
		s.state.Theme = ThemeDark
	}
	s.persistLocked()
	return s.state.Theme
}

// Theme returns the current UI theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Theme
}

// Selection returns the current global settings.
func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Sessions returns a copy of all sessions, drafts included, newest first.
func (s *Store) Sessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, len(s.state.Sessions))
	for i, sess := range s.state.Sessions {
		out[i] = sess.clone()
	}
	return out
}

// ActiveSession returns a copy of the active session, if any.
func (s *Store) ActiveSession() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.activeLocked()
	if sess == nil {
		return Session{}, false
	}
	return sess.clone(), true
}

// ActiveID returns the id of the active session, or empty.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActiveID
}

// InFlight reports whether a turn exchange is currently running.
func (s *Store) InFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight
}
