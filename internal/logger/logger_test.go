package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLog(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("hello %s", "world")
	Warn("something %d", 42)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Errorf("log file missing info message: %s", content)
	}
	if !strings.Contains(content, "something 42") {
		t.Errorf("log file missing warn message: %s", content)
	}
}

func TestInitTwiceIsNoop(t *testing.T) {
	Reset()
	defer Reset()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	if err := Init(first); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := Init(second); err != nil {
		t.Fatalf("second Init should be a no-op, got: %v", err)
	}

	Info("message")
	if _, err := os.Stat(second); !os.IsNotExist(err) {
		t.Error("second Init should not have created a file")
	}
}

func TestDebugLevelFiltering(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Default level is Info: debug messages are dropped
	Debug("invisible")
	SetDebug(true)
	Debug("visible")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "invisible") {
		t.Error("debug message logged before debug level enabled")
	}
	if !strings.Contains(content, "visible") {
		t.Error("debug message missing after debug level enabled")
	}
}

func TestComponentLogger(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	log := ComponentLogger("Chat")
	log.Info("session created", "sessionID", "abc123")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "component=Chat") {
		t.Errorf("expected component attribute, got: %s", content)
	}
	if !strings.Contains(content, "sessionID=abc123") {
		t.Errorf("expected session attribute, got: %s", content)
	}
}

func TestWithSession(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	log := WithSession("sess-1")
	log.Info("turn appended")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "sessionID=sess-1") {
		t.Errorf("expected sessionID attribute, got: %s", string(data))
	}
}
