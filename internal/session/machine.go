// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"time"

	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/store"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

const (
	// DefaultHistoryCap bounds the resolved-order history.
	DefaultHistoryCap = 20

	// DefaultMinNameLength is the minimum accepted customer name length
	// in runes.
	DefaultMinNameLength = 2

	// DefaultMinOrderIDLength is the minimum accepted order id length in
	// runes.
	DefaultMinOrderIDLength = 1
)

// Config holds the tunable policy of the verification workflow.
type Config struct {
	// MaxAttempts is the number of failed verifications before lockout.
	MaxAttempts int

	// LockoutDuration is how long a lockout lasts.
	LockoutDuration time.Duration

	// SessionTimeout is the inactivity window before a full reset.
	SessionTimeout time.Duration

	// HistoryCap bounds the resolved-order history.
	HistoryCap int

	// MinNameLength is the minimum customer name length in runes.
	MinNameLength int

	// MinOrderIDLength is the minimum order id length in runes.
	MinOrderIDLength int
}

// DefaultConfig returns the default workflow policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:      DefaultMaxAttempts,
		LockoutDuration:  DefaultLockoutDuration,
		SessionTimeout:   DefaultSessionTimeout,
		HistoryCap:       DefaultHistoryCap,
		MinNameLength:    DefaultMinNameLength,
		MinOrderIDLength: DefaultMinOrderIDLength,
	}
}

// normalized fills non-positive fields with defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = d.LockoutDuration
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = d.SessionTimeout
	}
	if c.HistoryCap <= 0 {
		c.HistoryCap = d.HistoryCap
	}
	if c.MinNameLength <= 0 {
		c.MinNameLength = d.MinNameLength
	}
	if c.MinOrderIDLength <= 0 {
		c.MinOrderIDLength = d.MinOrderIDLength
	}
	return c
}

// =============================================================================
// STAGE MACHINE
// =============================================================================

// LookupEngine resolves an order id + account id pair against the
// current record snapshot.
type LookupEngine interface {
	Lookup(orderID, accountID string) store.Result
}

// Machine orchestrates the three-stage verification flow. It owns no
// session state itself: every action mutates only the Session passed in,
// so one Machine safely serves many sessions.
type Machine struct {
	cfg     Config
	engine  LookupEngine
	limiter *Limiter
	monitor *Monitor
}

// NewMachine creates a Machine over the given lookup engine.
func NewMachine(engine LookupEngine, cfg Config) *Machine {
	cfg = cfg.normalized()
	return &Machine{
		cfg:    cfg,
		engine: engine,
		limiter: NewLimiter(
			WithMaxAttempts(cfg.MaxAttempts),
			WithLockoutDuration(cfg.LockoutDuration),
		),
		monitor: NewMonitor(cfg.SessionTimeout),
	}
}

// Config returns the machine's effective configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

// Monitor returns the timeout monitor, for tick-driven checks by the
// presentation layer.
func (m *Machine) Monitor() *Monitor {
	return m.monitor
}

// Limiter returns the attempt limiter, for status displays.
func (m *Machine) Limiter() *Limiter {
	return m.limiter
}

// =============================================================================
// ACTIONS
// =============================================================================

// ConfirmName handles the AwaitingName stage. A name shorter than the
// minimum is rejected; otherwise the session advances to AwaitingOrderId.
func (m *Machine) ConfirmName(s *Session, name string, now time.Time) Event {
	if m.monitor.CheckTimeout(s, now) {
		return SessionTimedOut{}
	}
	defer s.touch(now)

	if s.Stage() != AwaitingName {
		return ValidationError{Reason: "not awaiting a name"}
	}

	normalized := util.NormalizeName(name)
	if util.RuneLen(normalized) < m.cfg.MinNameLength {
		return NameRejected{
			Reason: fmt.Sprintf("name must be at least %d characters", m.cfg.MinNameLength),
		}
	}

	s.mu.Lock()
	s.customerName = normalized
	s.stage = AwaitingOrderId
	s.mu.Unlock()

	return NameAccepted{Name: normalized}
}

// SubmitOrderID handles the AwaitingOrderId stage. The id is stored in
// normalized form and the session advances to AwaitingVerification.
func (m *Machine) SubmitOrderID(s *Session, orderID string, now time.Time) Event {
	if m.monitor.CheckTimeout(s, now) {
		return SessionTimedOut{}
	}
	defer s.touch(now)

	if s.Stage() != AwaitingOrderId {
		return ValidationError{Reason: "not awaiting an order id"}
	}

	normalized := util.NormalizeKey(orderID)
	if util.RuneLen(normalized) < m.cfg.MinOrderIDLength {
		return OrderIDRejected{Reason: "order id must not be empty"}
	}

	s.mu.Lock()
	s.pendingOrderID = normalized
	s.stage = AwaitingVerification
	s.mu.Unlock()

	return OrderIDAccepted{OrderID: normalized}
}

// Verify handles the AwaitingVerification stage. The lockout check runs
// first and short-circuits the lookup entirely. A successful match
// resets the attempt counter and records a history entry; the session
// stays in AwaitingVerification until NextOrder or FullReset.
func (m *Machine) Verify(s *Session, accountID string, now time.Time) Event {
	if m.monitor.CheckTimeout(s, now) {
		return SessionTimedOut{}
	}
	defer s.touch(now)

	if s.Stage() != AwaitingVerification {
		return ValidationError{Reason: "no order id pending verification"}
	}

	if locked, remaining := m.limiter.IsLocked(s, now); locked {
		return LockedOut{Remaining: remaining}
	}

	account := util.NormalizeKey(accountID)
	if account == "" {
		return ValidationError{Reason: "account id must not be empty"}
	}

	res := m.engine.Lookup(s.PendingOrderID(), account)
	switch res.Kind {
	case store.Found:
		m.limiter.RecordSuccess(s)

		order := model.NewOrder(res.Rows)
		entry := model.HistoryEntry{
			OrderID:     s.PendingOrderID(),
			Timestamp:   now,
			ItemCount:   order.ItemCount(),
			TotalAmount: order.TotalNetAmount(),
		}
		s.recordResolved(entry, m.cfg.HistoryCap)

		return VerificationSucceeded{Order: order, Entry: entry}

	case store.AccountMismatch:
		return m.recordFailure(s, now, func(attempt int) Event {
			return AccountMismatch{Attempt: attempt, Max: m.cfg.MaxAttempts}
		})

	default: // store.NotFound
		return m.recordFailure(s, now, func(attempt int) Event {
			return OrderNotFound{Attempt: attempt, Max: m.cfg.MaxAttempts}
		})
	}
}

// recordFailure counts one failed verification. Crossing the threshold
// arms the lockout and reports LockedOut instead of the per-kind event.
func (m *Machine) recordFailure(s *Session, now time.Time, mk func(attempt int) Event) Event {
	m.limiter.RecordFailure(s, now)
	if locked, remaining := m.limiter.IsLocked(s, now); locked {
		return LockedOut{Remaining: remaining}
	}
	return mk(s.FailedAttempts())
}

// Back returns from AwaitingVerification to AwaitingOrderId, clearing
// the pending order id, the attempt counter, and any lockout.
func (m *Machine) Back(s *Session, now time.Time) Event {
	if m.monitor.CheckTimeout(s, now) {
		return SessionTimedOut{}
	}
	defer s.touch(now)

	if s.Stage() != AwaitingVerification {
		return ValidationError{Reason: "nothing to go back from"}
	}

	m.limiter.RecordSuccess(s)

	s.mu.Lock()
	s.pendingOrderID = ""
	s.stage = AwaitingOrderId
	s.mu.Unlock()

	return nil
}

// NextOrder moves a verified session back to AwaitingOrderId for the
// next lookup, keeping the customer name and history.
func (m *Machine) NextOrder(s *Session, now time.Time) Event {
	if m.monitor.CheckTimeout(s, now) {
		return SessionTimedOut{}
	}
	defer s.touch(now)

	if s.Stage() != AwaitingVerification {
		return ValidationError{Reason: "no verified order to continue from"}
	}

	s.mu.Lock()
	s.pendingOrderID = ""
	s.stage = AwaitingOrderId
	s.mu.Unlock()

	return nil
}

// Restart clears the workflow back to AwaitingName. The resolved-order
// history survives a restart; only a timeout or FullReset wipes it.
func (m *Machine) Restart(s *Session, now time.Time) Event {
	if m.monitor.CheckTimeout(s, now) {
		return SessionTimedOut{}
	}
	defer s.touch(now)

	s.reset(false)
	return nil
}

// FullReset clears everything, history included, and returns the
// session to AwaitingName.
func (m *Machine) FullReset(s *Session, now time.Time) Event {
	defer s.touch(now)

	s.reset(true)
	return nil
}
