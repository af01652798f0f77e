package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSendAppendsBothTurns(t *testing.T) {
	bs := newMemBlob()
	s := newTestStore(t, bs, &stubGen{reply: "Hi!"})

	id := s.StartNewSession(DefaultSelection())
	if !s.Send(context.Background(), id, "Hello", nil) {
		t.Fatal("Send returned false")
	}

	sess, _ := s.ActiveSession()
	if len(sess.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(sess.Turns))
	}
	if sess.Turns[0].Role != RoleUser || sess.Turns[0].Content != "Hello" {
		t.Errorf("user turn wrong: %+v", sess.Turns[0])
	}
	if sess.Turns[1].Role != RoleAssistant || sess.Turns[1].Content != "Hi!" {
		t.Errorf("assistant turn wrong: %+v", sess.Turns[1])
	}
	if s.InFlight() {
		t.Error("InFlight should be false after Send returns")
	}
}

func TestFirstMessagePromotesTitle(t *testing.T) {
	bs := newMemBlob()
	s := newTestStore(t, bs, nil)

	long := strings.Repeat("a", 50)
	id := s.StartNewSession(DefaultSelection())
	s.Send(context.Background(), id, long, nil)

	sess, _ := s.ActiveSession()
	want := strings.Repeat("a", 32) + "..."
	if sess.Title != want {
		t.Errorf("Title = %q, want %q", sess.Title, want)
	}

	// Later messages never rename the session
	s.Send(context.Background(), id, "a different topic entirely", nil)
	sess, _ = s.ActiveSession()
	if sess.Title != want {
		t.Errorf("Title changed on second message: %q", sess.Title)
	}
}

func TestSendErrorProducesErrorReply(t *testing.T) {
	bs := newMemBlob()
	s := newTestStore(t, bs, &stubGen{err: errors.New("quota exceeded")})

	id := s.StartNewSession(DefaultSelection())
	if !s.Send(context.Background(), id, "Hello", nil) {
		t.Fatal("Send returned false")
	}

	sess, _ := s.ActiveSession()
	if len(sess.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(sess.Turns))
	}
	if sess.Turns[1].Content != ErrorReply {
		t.Errorf("assistant turn = %q, want error reply", sess.Turns[1].Content)
	}
	if s.InFlight() {
		t.Error("InFlight should be false after a failed exchange")
	}
}

func TestSendPanicProducesErrorReply(t *testing.T) {
	bs := newMemBlob()
	s := newTestStore(t, bs, &stubGen{panics: true})

	id := s.StartNewSession(DefaultSelection())
	if !s.Send(context.Background(), id, "Hello", nil) {
		t.Fatal("Send returned false")
	}

	sess, _ := s.ActiveSession()
	if sess.Turns[1].Content != ErrorReply {
		t.Errorf("assistant turn = %q, want error reply", sess.Turns[1].Content)
	}
	if s.InFlight() {
		t.Error("InFlight should be false after a panic")
	}
}

func TestSendEmptyInputIsNoop(t *testing.T) {
	bs := newMemBlob()
	s := newTestStore(t, bs, nil)

	id := s.StartNewSession(DefaultSelection())
	if s.Send(context.Background(), id, "", nil) {
		t.Error("Send of empty input should return false")
	}
	sess, _ := s.ActiveSession()
	if len(sess.Turns) != 0 {
		t.Errorf("expected no turns, got %d", len(sess.Turns))
	}
}

func TestSendAttachmentOnly(t *testing.T) {
	bs := newMemBlob()
	s := newTestStore(t, bs, nil)

	id := s.StartNewSession(DefaultSelection())
	att := []Attachment{{Kind: AttachmentImage, Data: "aGk=", MIMEType: "image/png", Name: "hw.png"}}
	if !s.Send(context.Background(), id, "", att) {
		t.Fatal("attachment-only Send should succeed")
	}

	sess, _ := s.ActiveSession()
	if len(sess.Turns[0].Attachments) != 1 {
		t.Errorf("attachment lost: %+v", sess.Turns[0])
	}
	// No content means no title
	if sess.Title != "" {
		t.Errorf("Title = %q, want empty", sess.Title)
	}
}

func TestSendUnknownSession(t *testing.T) {
	bs := newMemBlob()
	s := newTestStore(t, bs, nil)

	if s.Send(context.Background(), "missing", "Hello", nil) {
		t.Error("Send to unknown session should return false")
	}
}

func TestSendRejectedWhileInFlight(t *testing.T) {
	bs := newMemBlob()
	gen := &stubGen{reply: "slow", entered: make(chan struct{}), release: make(chan struct{})}
	s := newTestStore(t, bs, gen)

	id := s.StartNewSession(DefaultSelection())

	done := make(chan bool)
	go func() {
		done <- s.Send(context.Background(), id, "first", nil)
	}()
	<-gen.entered

	if s.Send(context.Background(), id, "second", nil) {
		t.Error("concurrent Send should be rejected")
	}

	close(gen.release)
	if !<-done {
		t.Error("first Send should succeed")
	}

	sess, _ := s.ActiveSession()
	if len(sess.Turns) != 2 {
		t.Errorf("expected 2 turns, got %d", len(sess.Turns))
	}
}

func TestUserTurnPersistedBeforeGeneration(t *testing.T) {
	bs := newMemBlob()
	gen := &stubGen{reply: "late", entered: make(chan struct{}), release: make(chan struct{})}
	s := newTestStore(t, bs, gen)

	id := s.StartNewSession(DefaultSelection())

	done := make(chan bool)
	go func() {
		done <- s.Send(context.Background(), id, "Hello", nil)
	}()
	<-gen.entered

	st := savedState(t, bs)
	if len(st.Sessions) != 1 || len(st.Sessions[0].Turns) != 1 {
		t.Fatalf("user turn not persisted before generation: %+v", st.Sessions)
	}
	if st.Sessions[0].Turns[0].Content != "Hello" {
		t.Errorf("persisted turn = %+v", st.Sessions[0].Turns[0])
	}

	close(gen.release)
	<-done
}

func TestSessionDeletedMidExchange(t *testing.T) {
	bs := newMemBlob()
	gen := &stubGen{reply: "orphan", entered: make(chan struct{}), release: make(chan struct{})}
	s := newTestStore(t, bs, gen)

	id := s.StartNewSession(DefaultSelection())

	done := make(chan bool)
	go func() {
		done <- s.Send(context.Background(), id, "Hello", nil)
	}()
	<-gen.entered

	s.DeleteSession(id)
	close(gen.release)
	<-done

	if len(s.Sessions()) != 0 {
		t.Errorf("deleted session came back: %+v", s.Sessions())
	}
	if s.InFlight() {
		t.Error("InFlight should be false")
	}
}

func TestGeneratorReceivesFrozenSettings(t *testing.T) {
	bs := newMemBlob()
	var gotModel string
	var gotMode Mode
	var gotDifficulty Difficulty
	var gotHistory int
	gen := genFunc(func(ctx context.Context, model string, history []Turn, mode Mode, difficulty Difficulty) (string, error) {
		gotModel, gotMode, gotDifficulty = model, mode, difficulty
		gotHistory = len(history)
		return "ok", nil
	})
	s := newTestStore(t, bs, gen)

	id := s.StartNewSession(Selection{Mode: ModeComposition, Difficulty: DifficultyHard, Model: ModelPro})
	s.Send(context.Background(), id, "Hello", nil)

	if gotModel != ModelPro || gotMode != ModeComposition || gotDifficulty != DifficultyHard {
		t.Errorf("generator got %q/%q/%q", gotModel, gotMode, gotDifficulty)
	}
	if gotHistory != 1 {
		t.Errorf("history length = %d, want 1 (user turn included)", gotHistory)
	}
}

// genFunc adapts a function to the Generator interface.
type genFunc func(ctx context.Context, model string, history []Turn, mode Mode, difficulty Difficulty) (string, error)

func (f genFunc) Generate(ctx context.Context, model string, history []Turn, mode Mode, difficulty Difficulty) (string, error) {
	return f(ctx, model, history, mode, difficulty)
}
