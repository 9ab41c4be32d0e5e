// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the record store and lookup engine for order data.
package store

import (
	"sort"
	"time"

	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// =============================================================================
// PROVIDER INTERFACE
// =============================================================================

// Provider supplies the current point-in-time set of order line items.
// Implementations may cache and refresh behind the scenes; every call
// returns a complete, immutable snapshot.
type Provider interface {
	Snapshot() *Snapshot
}

// Static is a fixed-snapshot Provider, used for tests and for data sets
// that never refresh (the embedded fallback rows).
type Static struct {
	snap *Snapshot
}

// NewStatic creates a Provider that always returns a snapshot of rows.
func NewStatic(rows []model.LineItem) *Static {
	return &Static{snap: NewSnapshot(rows)}
}

// Snapshot returns the fixed snapshot.
func (s *Static) Snapshot() *Snapshot {
	return s.snap
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is an immutable indexed view over a set of line-item rows.
// Rows keep the order in which the provider encountered them; the index
// groups row positions by normalized sales order id. A snapshot is never
// mutated after construction, which makes it safe to share across sessions
// without locking.
type Snapshot struct {
	rows     []model.LineItem
	byOrder  map[string][]int
	loadedAt time.Time
}

// NewSnapshot builds an indexed snapshot from rows. Row keys are expected
// to be normalized already (providers normalize during parse); the index
// normalizes again defensively so a hand-built test snapshot behaves the
// same way.
func NewSnapshot(rows []model.LineItem) *Snapshot {
	s := &Snapshot{
		rows:     rows,
		byOrder:  make(map[string][]int, len(rows)),
		loadedAt: time.Now(),
	}
	for i, row := range rows {
		key := util.NormalizeKey(row.SalesOrder)
		if key == "" {
			continue
		}
		s.byOrder[key] = append(s.byOrder[key], i)
	}
	return s
}

// Len returns the number of rows in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.rows)
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// OrderCount returns the number of distinct sales orders.
func (s *Snapshot) OrderCount() int {
	return len(s.byOrder)
}

// OrderIDs returns the distinct normalized sales order ids, sorted.
func (s *Snapshot) OrderIDs() []string {
	ids := make([]string, 0, len(s.byOrder))
	for id := range s.byOrder {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasOrder reports whether any row carries the given order id
// (input normalized before matching).
func (s *Snapshot) HasOrder(orderID string) bool {
	_, ok := s.byOrder[util.NormalizeKey(orderID)]
	return ok
}

// OrderRows returns the rows for the given order id in encounter order.
// The returned slice is freshly allocated; callers may not reach the
// snapshot's backing storage through it.
func (s *Snapshot) OrderRows(orderID string) []model.LineItem {
	idxs, ok := s.byOrder[util.NormalizeKey(orderID)]
	if !ok {
		return nil
	}
	rows := make([]model.LineItem, 0, len(idxs))
	for _, i := range idxs {
		rows = append(rows, s.rows[i])
	}
	return rows
}
