//go:build !windows
// +build !windows

package process

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "daemon.pid"))
}

// trustIdentity makes every live PID look like the daemon for the duration
// of a test
func trustIdentity(t *testing.T, verdict bool) {
	t.Helper()
	orig := verifyProcessIdentity
	verifyProcessIdentity = func(pid int) bool { return verdict }
	t.Cleanup(func() { verifyProcessIdentity = orig })
}

func TestWriteAndReadPID(t *testing.T) {
	m := newTestManager(t)

	if err := m.WritePID(); err != nil {
		t.Fatalf("WritePID() error: %v", err)
	}

	pid, err := m.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("ReadPID() = %d, want %d", pid, os.Getpid())
	}
}

func TestReadPIDCorruptFile(t *testing.T) {
	m := newTestManager(t)
	if err := os.WriteFile(m.PIDFile(), []byte("not-a-pid\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := m.ReadPID(); err == nil {
		t.Error("ReadPID() accepted a corrupt PID file")
	}
}

func TestIsRunningNoRecord(t *testing.T) {
	m := newTestManager(t)
	if m.IsRunning() {
		t.Error("IsRunning() = true with no PID file")
	}
}

func TestIsRunningLiveProcess(t *testing.T) {
	trustIdentity(t, true)

	m := newTestManager(t)
	if err := m.WritePID(); err != nil {
		t.Fatal(err)
	}

	if !m.IsRunning() {
		t.Error("IsRunning() = false for the live test process")
	}
}

func TestIsRunningCleansUpStalePID(t *testing.T) {
	m := newTestManager(t)
	// A PID far beyond any real pid_max
	if err := os.WriteFile(m.PIDFile(), []byte(fmt.Sprintf("%d\n", 1<<30)), 0644); err != nil {
		t.Fatal(err)
	}

	if m.IsRunning() {
		t.Error("IsRunning() = true for a dead PID")
	}
	if _, err := os.Stat(m.PIDFile()); !os.IsNotExist(err) {
		t.Error("stale PID file was not removed")
	}
}

func TestIsRunningCleansUpCorruptRecord(t *testing.T) {
	m := newTestManager(t)
	if err := os.WriteFile(m.PIDFile(), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	if m.IsRunning() {
		t.Error("IsRunning() = true for a corrupt record")
	}
	if _, err := os.Stat(m.PIDFile()); !os.IsNotExist(err) {
		t.Error("corrupt PID file was not removed")
	}
}

func TestIsRunningCleansUpReusedPID(t *testing.T) {
	trustIdentity(t, false) // live process, but not ours

	m := newTestManager(t)
	if err := m.WritePID(); err != nil {
		t.Fatal(err)
	}

	if m.IsRunning() {
		t.Error("IsRunning() = true for a PID owned by another program")
	}
	if _, err := os.Stat(m.PIDFile()); !os.IsNotExist(err) {
		t.Error("reused PID file was not removed")
	}
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	trustIdentity(t, true)

	m := newTestManager(t)
	if err := m.WritePID(); err != nil {
		t.Fatal(err)
	}

	// Both calls must succeed without touching the existing record or
	// spawning a second daemon
	if err := m.Start(10); err != nil {
		t.Fatalf("Start() with a live daemon returned error: %v", err)
	}
	if err := m.Start(10); err != nil {
		t.Fatalf("second Start() returned error: %v", err)
	}

	pid, err := m.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() after Start: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("Start() replaced the PID record: got %d, want %d", pid, os.Getpid())
	}
}

func TestStopWithoutRecordSucceeds(t *testing.T) {
	m := newTestManager(t)
	if err := m.Stop(); err != nil {
		t.Errorf("Stop() with no record returned error: %v", err)
	}
}

func TestStopRemovesRecord(t *testing.T) {
	m := newTestManager(t)
	if err := os.WriteFile(m.PIDFile(), []byte(fmt.Sprintf("%d\n", 1<<30)), 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.Stop(); err != nil {
		t.Errorf("Stop() error: %v", err)
	}
	if _, err := os.Stat(m.PIDFile()); !os.IsNotExist(err) {
		t.Error("Stop() left the PID file behind")
	}
}
