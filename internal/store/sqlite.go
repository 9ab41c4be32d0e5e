// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the record store and lookup engine for order data.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/orderline-tui/internal/decimal"
	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// schema is the salesline table. Monetary and quantity columns are stored
// as canonical decimal strings, never as floating point.
const schema = `
CREATE TABLE IF NOT EXISTS salesline (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sales_order TEXT NOT NULL,
	invoice_account TEXT NOT NULL,
	order_status TEXT NOT NULL DEFAULT '',
	delivery_date TEXT NOT NULL DEFAULT '',
	shipping_date TEXT NOT NULL DEFAULT '',
	delivery_address TEXT NOT NULL DEFAULT '',
	delivery_mode TEXT NOT NULL DEFAULT '',
	delivery_terms TEXT NOT NULL DEFAULT '',
	item_number TEXT NOT NULL DEFAULT '',
	product_name TEXT NOT NULL DEFAULT '',
	quantity_ordered TEXT NOT NULL DEFAULT '0',
	unit TEXT NOT NULL DEFAULT '',
	unit_price TEXT NOT NULL DEFAULT '0',
	net_amount TEXT NOT NULL DEFAULT '0',
	requested_receipt TEXT NOT NULL DEFAULT '',
	requested_ship TEXT NOT NULL DEFAULT '',
	inventory_unit TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_salesline_order ON salesline(sales_order);
`

// =============================================================================
// SQLITE PROVIDER
// =============================================================================

// SQLiteProvider serves snapshots from a local SQLite database. Like the
// CSV provider it is copy-on-refresh: Load reads the whole table into an
// immutable snapshot and swaps it in atomically.
type SQLiteProvider struct {
	db      *sql.DB
	path    string
	current atomic.Pointer[Snapshot]

	refreshMu sync.Mutex
}

// NewSQLiteProvider opens (creating if needed) the database at path,
// initializes the schema, and loads the initial snapshot.
func NewSQLiteProvider(path string) (*SQLiteProvider, error) {
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	p := &SQLiteProvider{db: db, path: path}
	if err := p.Load(); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

// Snapshot returns the current snapshot.
func (p *SQLiteProvider) Snapshot() *Snapshot {
	return p.current.Load()
}

// Load reads the full salesline table, in insertion order, into a fresh
// snapshot and swaps it in.
func (p *SQLiteProvider) Load() error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	rows, err := p.db.Query(`
		SELECT sales_order, invoice_account, order_status, delivery_date,
		       shipping_date, delivery_address, delivery_mode, delivery_terms,
		       item_number, product_name, quantity_ordered, unit, unit_price,
		       net_amount, requested_receipt, requested_ship, inventory_unit
		FROM salesline ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to query salesline: %w", err)
	}
	defer rows.Close()

	var items []model.LineItem
	for rows.Next() {
		var item model.LineItem
		var quantity, unitPrice, netAmount string
		err := rows.Scan(
			&item.SalesOrder, &item.InvoiceAccount, &item.OrderStatus,
			&item.DeliveryDate, &item.ShippingDate, &item.DeliveryAddress,
			&item.DeliveryMode, &item.DeliveryTerms, &item.ItemNumber,
			&item.ProductName, &quantity, &item.Unit, &unitPrice,
			&netAmount, &item.RequestedReceipt, &item.RequestedShip,
			&item.InventoryUnit,
		)
		if err != nil {
			return fmt.Errorf("failed to scan salesline row: %w", err)
		}

		item.SalesOrder = util.NormalizeKey(item.SalesOrder)
		item.InvoiceAccount = util.NormalizeKey(item.InvoiceAccount)
		item.QuantityOrdered = parseStoredDecimal(quantity)
		item.UnitPrice = parseStoredDecimal(unitPrice)
		item.NetAmount = parseStoredDecimal(netAmount)

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read salesline rows: %w", err)
	}

	p.current.Store(NewSnapshot(items))
	return nil
}

// Import replaces the table contents with the given rows in one
// transaction, then reloads the snapshot. Used by the data import command
// to seed the database from a CSV export.
func (p *SQLiteProvider) Import(items []model.LineItem) error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM salesline"); err != nil {
		return fmt.Errorf("failed to clear salesline: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO salesline (
			sales_order, invoice_account, order_status, delivery_date,
			shipping_date, delivery_address, delivery_mode, delivery_terms,
			item_number, product_name, quantity_ordered, unit, unit_price,
			net_amount, requested_receipt, requested_ship, inventory_unit
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.Exec(
			util.NormalizeKey(item.SalesOrder),
			util.NormalizeKey(item.InvoiceAccount),
			item.OrderStatus, item.DeliveryDate, item.ShippingDate,
			item.DeliveryAddress, item.DeliveryMode, item.DeliveryTerms,
			item.ItemNumber, item.ProductName,
			item.QuantityOrdered.StringFixed(4), item.Unit,
			item.UnitPrice.StringFixed(4), item.NetAmount.StringFixed(4),
			item.RequestedReceipt, item.RequestedShip, item.InventoryUnit,
		)
		if err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	return p.Load()
}

// Close closes the database.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}

// parseStoredDecimal parses a decimal column value. Stored values are
// written by Import in canonical form; anything unparsable is zero.
func parseStoredDecimal(s string) decimal.Decimal {
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
