// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"
)

// =============================================================================
// ATTEMPT LIMITER
// =============================================================================

const (
	// DefaultMaxAttempts is the number of failed verifications before
	// lockout.
	DefaultMaxAttempts = 3

	// DefaultLockoutDuration is how long a lockout lasts.
	DefaultLockoutDuration = 5 * time.Minute
)

// Limiter tracks failed verification attempts on a Session and enforces
// a temporary lockout. Expiry is evaluated lazily on IsLocked; there is
// no background sweep.
type Limiter struct {
	maxAttempts     int
	lockoutDuration time.Duration
}

// LimiterOption is a functional option for configuring a Limiter.
type LimiterOption func(*Limiter)

// WithMaxAttempts sets the number of failures before lockout.
func WithMaxAttempts(max int) LimiterOption {
	return func(l *Limiter) {
		if max > 0 {
			l.maxAttempts = max
		}
	}
}

// WithLockoutDuration sets how long a lockout lasts.
func WithLockoutDuration(d time.Duration) LimiterOption {
	return func(l *Limiter) {
		if d > 0 {
			l.lockoutDuration = d
		}
	}
}

// NewLimiter creates a Limiter with the given options.
func NewLimiter(opts ...LimiterOption) *Limiter {
	l := &Limiter{
		maxAttempts:     DefaultMaxAttempts,
		lockoutDuration: DefaultLockoutDuration,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// MaxAttempts returns the configured failure threshold.
func (l *Limiter) MaxAttempts() int {
	return l.maxAttempts
}

// RecordFailure increments the session's failed-attempt count. Reaching
// the threshold arms the lockout; the count then stays at the threshold
// until a successful reset.
func (l *Limiter) RecordFailure(s *Session, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failedAttempts >= l.maxAttempts {
		return
	}
	s.failedAttempts++
	if s.failedAttempts >= l.maxAttempts {
		s.lockedUntil = now.Add(l.lockoutDuration)
	}
}

// IsLocked reports whether the session is locked out at now, and how
// long until the lock clears. An expired lock is cleared here as a side
// effect: the expiry timestamp is dropped and the attempt count reset.
func (l *Limiter) IsLocked(s *Session, now time.Time) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lockedUntil.IsZero() {
		return false, 0
	}
	if now.Before(s.lockedUntil) {
		return true, s.lockedUntil.Sub(now)
	}

	// Lock expired: clear lazily.
	s.lockedUntil = time.Time{}
	s.failedAttempts = 0
	return false, 0
}

// RecordSuccess resets the failed-attempt count and clears any lockout.
func (l *Limiter) RecordSuccess(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failedAttempts = 0
	s.lockedUntil = time.Time{}
}
