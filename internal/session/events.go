// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"

	"github.com/jeranaias/orderline-tui/internal/model"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event is the result of one action against the Machine. The
// presentation layer switches on the concrete type to render the
// outcome and collect the next input. Pure navigation actions (Back,
// NextOrder, Restart, FullReset) return a nil Event on success; the
// caller renders the prompt for the session's new stage.
type Event interface {
	event()
}

// NameAccepted confirms the customer name; the session advanced to
// AwaitingOrderId.
type NameAccepted struct {
	Name string
}

// NameRejected reports a name that failed validation; stage unchanged.
type NameRejected struct {
	Reason string
}

// OrderIDAccepted confirms the order id; the session advanced to
// AwaitingVerification.
type OrderIDAccepted struct {
	OrderID string
}

// OrderIDRejected reports an order id that failed validation; stage
// unchanged.
type OrderIDRejected struct {
	Reason string
}

// VerificationSucceeded carries the matched order and the history entry
// recorded for it. The session stays in AwaitingVerification until the
// caller invokes NextOrder or FullReset.
type VerificationSucceeded struct {
	Order model.Order
	Entry model.HistoryEntry
}

// AccountMismatch means the order exists but the supplied account does
// not match. Counted as a failed attempt.
type AccountMismatch struct {
	Attempt int
	Max     int
}

// OrderNotFound means no order matched the pending id. Counted as a
// failed attempt, same bucket as AccountMismatch.
type OrderNotFound struct {
	Attempt int
	Max     int
}

// LockedOut means the attempt threshold was exceeded; no lookup was
// performed. Remaining is the time until the lock clears.
type LockedOut struct {
	Remaining time.Duration
}

// SessionTimedOut means the inactivity timeout elapsed and the session
// was fully reset. The user must restart from AwaitingName.
type SessionTimedOut struct{}

// ValidationError reports malformed input rejected before any lookup or
// attempt accounting.
type ValidationError struct {
	Reason string
}

func (NameAccepted) event()          {}
func (NameRejected) event()          {}
func (OrderIDAccepted) event()       {}
func (OrderIDRejected) event()       {}
func (VerificationSucceeded) event() {}
func (AccountMismatch) event()       {}
func (OrderNotFound) event()         {}
func (LockedOut) event()             {}
func (SessionTimedOut) event()       {}
func (ValidationError) event()       {}
