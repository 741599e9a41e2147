// Package service integrates the sysdoctor daemon with the platform's
// service manager (systemd/launchd).
package service

import (
	"fmt"
	"os"
	"runtime"

	"github.com/okzk/sdnotify"
	"github.com/takama/daemon"

	"sysdoctor/internal/logger"
)

const (
	serviceName        = "sysdoctor"
	serviceDescription = "sysdoctor - host metrics snapshot daemon"
)

// Service wraps takama/daemon for cross-platform service management
type Service struct {
	daemon daemon.Daemon
}

// New creates a new Service instance. Root gets a system-wide service,
// everyone else a user-level one.
func New() (*Service, error) {
	kind := daemon.UserAgent
	if os.Geteuid() == 0 {
		kind = daemon.SystemDaemon
	}

	d, err := daemon.New(serviceName, serviceDescription, kind)
	if err != nil {
		return nil, fmt.Errorf("create daemon: %w", err)
	}

	return &Service{daemon: d}, nil
}

// Install installs the service (creates systemd/launchd config)
func (s *Service) Install() (string, error) {
	status, err := s.daemon.Install("daemon")
	if err != nil {
		return status, err
	}

	logger.Info("Service installed: %s", status)
	return status, nil
}

// Remove removes the service
func (s *Service) Remove() (string, error) {
	status, err := s.daemon.Remove()
	if err != nil {
		return status, err
	}

	logger.Info("Service removed: %s", status)
	return status, nil
}

// Start starts the service
func (s *Service) Start() (string, error) {
	status, err := s.daemon.Start()
	if err != nil {
		return status, err
	}

	logger.Info("Service started: %s", status)
	return status, nil
}

// Stop stops the service
func (s *Service) Stop() (string, error) {
	status, err := s.daemon.Stop()
	if err != nil {
		return status, err
	}

	logger.Info("Service stopped: %s", status)
	return status, nil
}

// Status returns the service status
func (s *Service) Status() (string, error) {
	return s.daemon.Status()
}

// NotifyReady notifies systemd that the daemon is ready (Type=notify)
func NotifyReady() {
	if runtime.GOOS == "linux" {
		sdnotify.Ready()
		logger.Debug("Sent READY notification to systemd")
	}
}

// NotifyStopping notifies systemd that the daemon is stopping
func NotifyStopping() {
	if runtime.GOOS == "linux" {
		sdnotify.Stopping()
		logger.Debug("Sent STOPPING notification to systemd")
	}
}

// NotifyStatus sends a status message to systemd
func NotifyStatus(status string) {
	if runtime.GOOS == "linux" {
		sdnotify.Status(status)
	}
}
