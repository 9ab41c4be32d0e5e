// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the order verification workflow.
//
// A Session holds the state of one interactive user: the current stage,
// the confirmed customer name, the pending order id, the failed-attempt
// counter with its lockout expiry, the last-activity timestamp, and a
// bounded history of resolved orders.
//
// The Machine drives the three-stage flow:
//
//	AwaitingName → AwaitingOrderId → AwaitingVerification
//
// Every user action goes through the Machine, which validates input,
// consults the lookup engine and the attempt Limiter, mutates the
// Session, and returns an Event for the presentation layer to render.
// The Machine never transitions on its own; the only non-user-driven
// state change is the inactivity timeout, checked at the start of each
// action and by the periodic Bubble Tea tick.
//
// # Usage
//
//	sess := session.New()
//	m := session.NewMachine(engine, session.DefaultConfig())
//
//	ev := m.ConfirmName(sess, "Ada", time.Now())
//	ev = m.SubmitOrderID(sess, "SAP0014689", time.Now())
//	ev = m.Verify(sess, "C28402-B0", time.Now())
//
// Sessions are single-owner: one logical user interaction at a time.
// Internal locking makes each accessor and each action atomic, but the
// design assumes no concurrent actions against the same Session.
package session
