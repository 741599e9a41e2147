package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesLeveledEntries(t *testing.T) {
	t.Setenv("INVOCATION_ID", "") // force file output

	path := filepath.Join(t.TempDir(), "daemon.log")
	l := New(path)
	defer l.Close()

	l.Info("started with interval %d", 10)
	l.Error("capture failed: %s", "probe error")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "INFO: started with interval 10") {
		t.Errorf("log missing info entry:\n%s", content)
	}
	if !strings.Contains(content, "ERROR: capture failed: probe error") {
		t.Errorf("log missing error entry:\n%s", content)
	}
}

func TestLoggerCreatesParentDirectory(t *testing.T) {
	t.Setenv("INVOCATION_ID", "")

	path := filepath.Join(t.TempDir(), "nested", "dir", "daemon.log")
	l := New(path)
	defer l.Close()

	l.Info("hello")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file was not created: %v", err)
	}
}

func TestLoggerWithoutPathDoesNotPanic(t *testing.T) {
	l := New("")
	defer l.Close()
	l.Info("goes nowhere")
	l.Debug("also nowhere")
}
