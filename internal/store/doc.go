// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the record store and lookup engine for order data.
//
// A Provider exposes an immutable point-in-time Snapshot of the order line
// items, indexed by normalized sales order id. Providers that refresh
// (CSV file with watcher, SQLite database) swap the whole snapshot
// atomically, so a lookup in progress always sees one consistent view.
//
// The Engine performs the two-factor lookup (order id + invoice account)
// against whatever snapshot is current. It is pure and side-effect free:
// identical inputs against an unchanged snapshot yield identical results.
//
// The Guard is a process-wide token-bucket limiter in front of the engine
// that slows down bulk probing of order ids. It is independent of the
// per-session failed-attempt lockout in the session package.
package store
