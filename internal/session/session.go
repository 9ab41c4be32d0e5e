// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/orderline-tui/internal/model"
)

// =============================================================================
// STAGE
// =============================================================================

// Stage is the current step of the three-step verification workflow.
type Stage int

const (
	// AwaitingName is the initial stage: the user has not confirmed
	// their name yet.
	AwaitingName Stage = iota

	// AwaitingOrderId means a name is on file and the user must submit
	// an order id.
	AwaitingOrderId

	// AwaitingVerification means an order id is pending and the user
	// must supply the matching invoice account.
	AwaitingVerification
)

// String returns the stage name for logs and status displays.
func (s Stage) String() string {
	switch s {
	case AwaitingName:
		return "awaiting-name"
	case AwaitingOrderId:
		return "awaiting-order-id"
	case AwaitingVerification:
		return "awaiting-verification"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the mutable state of one interactive user. It is created in
// AwaitingName and mutated exclusively by the Machine. A full reset
// returns it to the initial state without changing its id.
type Session struct {
	mu sync.Mutex

	id        string
	startTime time.Time

	stage          Stage
	customerName   string
	pendingOrderID string

	// Attempt tracking. lockedUntil is zero when not locked.
	failedAttempts int
	lockedUntil    time.Time

	lastActivity time.Time

	// history holds resolved orders, most recent first, deduplicated by
	// order id and bounded by the machine's history cap.
	history []model.HistoryEntry
}

// New creates a session in the AwaitingName stage.
func New() *Session {
	now := time.Now()
	return &Session{
		id:           uuid.NewString(),
		startTime:    now,
		stage:        AwaitingName,
		lastActivity: now,
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// StartTime returns when the session was created.
func (s *Session) StartTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// Stage returns the current workflow stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// CustomerName returns the confirmed name, empty before AwaitingOrderId.
func (s *Session) CustomerName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerName
}

// PendingOrderID returns the order id awaiting verification.
func (s *Session) PendingOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingOrderID
}

// FailedAttempts returns the current failed-attempt count.
func (s *Session) FailedAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failedAttempts
}

// LastActivity returns the timestamp of the last action.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// History returns a copy of the resolved-order history, most recent
// first.
func (s *Session) History() []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// touch records activity. Called as the final step of every action,
// including rejections.
func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = now
}

// recordResolved inserts a history entry at the front, removing any
// existing entry for the same order id and evicting the oldest entries
// beyond cap.
func (s *Session) recordResolved(entry model.HistoryEntry, cap int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.history[:0]
	for _, e := range s.history {
		if e.OrderID != entry.OrderID {
			kept = append(kept, e)
		}
	}
	s.history = append([]model.HistoryEntry{entry}, kept...)
	if cap > 0 && len(s.history) > cap {
		s.history = s.history[:cap]
	}
}

// reset clears all workflow state. clearHistory is set for the timeout
// path, which wipes the resolved-order history as well.
func (s *Session) reset(clearHistory bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stage = AwaitingName
	s.customerName = ""
	s.pendingOrderID = ""
	s.failedAttempts = 0
	s.lockedUntil = time.Time{}
	if clearHistory {
		s.history = nil
	}
}
