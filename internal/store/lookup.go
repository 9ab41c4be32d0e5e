// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the record store and lookup engine for order data.
package store

import (
	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// =============================================================================
// LOOKUP RESULT
// =============================================================================

// ResultKind is the outcome class of a two-factor lookup.
type ResultKind int

const (
	// Found means rows exist for the order id and the invoice account
	// matches.
	Found ResultKind = iota

	// AccountMismatch means the order id exists but under a different
	// invoice account. The caller must not reveal which account the
	// order belongs to.
	AccountMismatch

	// NotFound means no row carries the order id.
	NotFound
)

// String returns the kind name for logs and tests.
func (k ResultKind) String() string {
	switch k {
	case Found:
		return "Found"
	case AccountMismatch:
		return "AccountMismatch"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Result is the outcome of a two-factor lookup. Rows is populated only
// when Kind is Found, in the order the rows appeared in the snapshot.
type Result struct {
	Kind ResultKind
	Rows []model.LineItem
}

// =============================================================================
// LOOKUP ENGINE
// =============================================================================

// Engine performs two-factor lookups against the provider's current
// snapshot. It holds no mutable state of its own and is safe for
// concurrent use.
type Engine struct {
	provider Provider
}

// NewEngine creates a lookup engine over the given provider.
func NewEngine(p Provider) *Engine {
	return &Engine{provider: p}
}

// Lookup matches line items on normalized order id AND normalized invoice
// account. Callers are expected to reject empty input before calling;
// an input that normalizes to empty can never match and yields NotFound.
//
// The result is deterministic for an unchanged snapshot: the same inputs
// always produce the same kind and the same row order.
func (e *Engine) Lookup(orderID, accountID string) Result {
	snap := e.provider.Snapshot()
	return LookupIn(snap, orderID, accountID)
}

// LookupIn runs the two-factor match against one explicit snapshot.
// Split out from Engine.Lookup so a caller that wants several lookups
// against a single consistent view (testing, batch summaries) can pin
// the snapshot first.
func LookupIn(snap *Snapshot, orderID, accountID string) Result {
	order := util.NormalizeKey(orderID)
	account := util.NormalizeKey(accountID)
	if order == "" || account == "" {
		return Result{Kind: NotFound}
	}

	rows := snap.OrderRows(order)
	if len(rows) == 0 {
		return Result{Kind: NotFound}
	}

	matched := make([]model.LineItem, 0, len(rows))
	for _, row := range rows {
		if util.NormalizeKey(row.InvoiceAccount) == account {
			matched = append(matched, row)
		}
	}
	if len(matched) == 0 {
		return Result{Kind: AccountMismatch}
	}
	return Result{Kind: Found, Rows: matched}
}
