// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/orderline-tui/internal/session"
)

// =============================================================================
// MESSAGES
// =============================================================================

// actionResultMsg carries the Event returned by an asynchronous machine
// action (currently only Verify runs asynchronously).
type actionResultMsg struct {
	Event session.Event
}

// =============================================================================
// COMMANDS
// =============================================================================

// verifyCmd runs the verification after the search pause. The pause is
// the configured UI delay plus any rate-limit delay from the lookup
// guard, so bulk probing slows down visibly instead of erroring.
func (m *Model) verifyCmd(accountID string, pause time.Duration) tea.Cmd {
	return func() tea.Msg {
		if pause > 0 {
			time.Sleep(pause)
		}
		ev := m.machine.Verify(m.sess, accountID, time.Now())
		return actionResultMsg{Event: ev}
	}
}
