// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// TIMEOUT MONITOR
// =============================================================================

// DefaultSessionTimeout is the inactivity window before a session is
// reset.
const DefaultSessionTimeout = 15 * time.Minute

// Monitor enforces the inactivity timeout. It runs orthogonally to the
// stage machine: the machine consults it before every action, and the
// TUI consults it on each tick.
type Monitor struct {
	timeout time.Duration
}

// NewMonitor creates a Monitor with the given timeout. Non-positive
// values fall back to the default.
func NewMonitor(timeout time.Duration) *Monitor {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &Monitor{timeout: timeout}
}

// Timeout returns the configured inactivity window.
func (m *Monitor) Timeout() time.Duration {
	return m.timeout
}

// Remaining returns the time until the session times out at now.
func (m *Monitor) Remaining(s *Session, now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := m.timeout - now.Sub(s.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckTimeout reports whether the session exceeded the inactivity
// window at now. On timeout it performs a full reset, history included,
// and the caller must abort the current action and notify the user.
// Within the window it only refreshes the activity timestamp, so
// repeated checks never disturb stage, name, or order id.
func (m *Monitor) CheckTimeout(s *Session, now time.Time) bool {
	s.mu.Lock()
	idle := now.Sub(s.lastActivity)
	s.mu.Unlock()

	if idle > m.timeout {
		s.reset(true)
		s.touch(now)
		return true
	}
	s.touch(now)
	return false
}

// Expired reports timeout without the reset side effect. Used by the
// tick handler to decide whether to fire the timeout path.
func (m *Monitor) Expired(s *Session, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActivity) > m.timeout
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent once per second to drive timeout checks.
type TickMsg struct {
	Time time.Time
}

// TimeoutMsg indicates the session has timed out and was reset.
type TimeoutMsg struct{}

// TickCmd returns a command that ticks once per second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
