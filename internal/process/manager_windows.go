//go:build windows
// +build windows

package process

import "fmt"

// Manager controls the daemon process through its PID file.
// The detached daemon is not supported on Windows; use the service
// integration instead.
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

// IsRunning always reports false on Windows
func (m *Manager) IsRunning() bool {
	return false
}

// Start is not supported on Windows
func (m *Manager) Start(interval int) error {
	return fmt.Errorf("detached daemon is not supported on Windows; use 'sysdoctor service install'")
}

// Stop is a no-op on Windows
func (m *Manager) Stop() error {
	return nil
}

// WritePID is not supported on Windows
func (m *Manager) WritePID() error {
	return fmt.Errorf("detached daemon is not supported on Windows")
}

// RemovePID is a no-op on Windows
func (m *Manager) RemovePID() {}
