//go:build !windows
// +build !windows

// Package process manages the detached snapshot daemon: its PID record,
// liveness checks and idempotent start/stop.
package process

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"sysdoctor/internal/logger"
)

// Manager controls the daemon process through its PID file. start, stop and
// liveness checks coordinate only through this record and signal probes,
// never through shared memory, so they are safe to call from any process.
type Manager struct {
	pidFile string
}

// NewManager creates a manager using the given PID file path
func NewManager(pidFile string) *Manager {
	return &Manager{pidFile: pidFile}
}

// PIDFile returns the daemon identity record location
func (m *Manager) PIDFile() string {
	return m.pidFile
}

// ReadPID reads the PID from the PID file
func (m *Manager) ReadPID() (int, error) {
	data, err := os.ReadFile(m.pidFile)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("corrupt PID file: %w", err)
	}
	return pid, nil
}

// WritePID records the current process as the running daemon.
// Called by the daemon process itself, after detaching.
func (m *Manager) WritePID() error {
	if err := os.MkdirAll(filepath.Dir(m.pidFile), 0755); err != nil {
		return fmt.Errorf("create PID directory: %w", err)
	}
	pid := fmt.Sprintf("%d\n", os.Getpid())
	return os.WriteFile(m.pidFile, []byte(pid), 0644)
}

// RemovePID deletes the daemon identity record
func (m *Manager) RemovePID() {
	os.Remove(m.pidFile)
}

// IsRunning checks whether the recorded daemon process is alive.
// A missing record means not running. A corrupt record, a dead PID, or a
// PID reused by an unrelated process is cleaned up on the spot and reported
// as not running, so stale records never linger past the next check.
func (m *Manager) IsRunning() bool {
	pid, err := m.ReadPID()
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("Removing unreadable PID file: %v", err)
			m.RemovePID()
		}
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		m.RemovePID()
		return false
	}

	// Signal 0 probes liveness without affecting the target
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		logger.Info("Cleaning up stale PID file (process %d no longer exists)", pid)
		m.RemovePID()
		return false
	}

	if !verifyProcessIdentity(pid) {
		logger.Info("PID file points at a non-sysdoctor process (%d), cleaning up", pid)
		m.RemovePID()
		return false
	}

	return true
}

// Start launches the daemon detached from the calling terminal and session.
// Already running is success: duplicate starts are no-ops. The parent
// returns once the child has come up and written its PID record.
func (m *Manager) Start(interval int) error {
	if m.IsRunning() {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	cmd := exec.Command(exe, "daemon", "--interval", strconv.Itoa(interval))
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devnull.Close()
	cmd.Stdin = devnull
	cmd.Stdout = devnull
	cmd.Stderr = devnull

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	cmd.Process.Release()

	// The child writes its own PID record; wait briefly for it to come up
	for i := 0; i < 20; i++ {
		time.Sleep(100 * time.Millisecond)
		if m.IsRunning() {
			logger.Info("Daemon started (interval %ds)", interval)
			return nil
		}
	}
	return fmt.Errorf("daemon did not start within 2s")
}

// Stop requests termination of the recorded daemon and removes the record.
// It succeeds in every reachable case (no record, stale record, or a
// delivered signal), leaving the system "not running" from the caller's
// point of view.
func (m *Manager) Stop() error {
	pid, err := m.ReadPID()
	if err != nil {
		m.RemovePID()
		return nil
	}

	if proc, err := os.FindProcess(pid); err == nil {
		if err := proc.Signal(syscall.SIGTERM); err != nil {
			logger.Debug("Termination request to %d undeliverable: %v", pid, err)
		}
	}

	m.RemovePID()
	logger.Info("Daemon stop requested (PID %d)", pid)
	return nil
}

// verifyProcessIdentity guards against PID reuse after a crash.
// Variable (not function) to allow override in tests.
var verifyProcessIdentity = isDaemonProcess

// isDaemonProcess verifies that the given PID belongs to a sysdoctor daemon
func isDaemonProcess(pid int) bool {
	var cmdline string

	if runtime.GOOS == "linux" {
		data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
		if err != nil {
			// Process exists but cmdline is unreadable; trust the record
			return true
		}
		cmdline = strings.ReplaceAll(string(data), "\x00", " ")
	} else {
		output, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "command=").Output()
		if err != nil {
			return true
		}
		cmdline = string(output)
	}

	cmdline = strings.ToLower(cmdline)
	return strings.Contains(cmdline, "sysdoctor") && strings.Contains(cmdline, "daemon")
}
