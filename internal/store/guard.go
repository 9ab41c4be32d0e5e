// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the record store and lookup engine for order data.
package store

import (
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// LOOKUP GUARD
// =============================================================================

// Guard is a process-wide token-bucket limiter in front of the lookup
// engine. The per-session attempt lockout already bounds failures for one
// session; the guard additionally slows down bulk probing of order ids
// across sessions. Presentation layers ask for the current delay before
// running a lookup and fold it into their search pause.
type Guard struct {
	limiter *rate.Limiter
}

// NewGuard creates a guard allowing perSecond lookups sustained with the
// given burst. Non-positive arguments fall back to the defaults
// (5 lookups/s, burst 10).
func NewGuard(perSecond float64, burst int) *Guard {
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &Guard{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Delay reserves one lookup and returns how long the caller must wait
// before performing it. Zero when within budget.
func (g *Guard) Delay() time.Duration {
	r := g.limiter.Reserve()
	if !r.OK() {
		// Unreachable with a finite positive burst, but do not stall
		// the UI if it ever happens.
		return 0
	}
	return r.Delay()
}

// Allow reports whether a lookup is currently within budget without
// reserving one. Used by status displays.
func (g *Guard) Allow() bool {
	return g.limiter.Tokens() >= 1
}
