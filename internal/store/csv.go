// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the record store and lookup engine for order data.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeranaias/orderline-tui/internal/decimal"
	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// fallbackCSV is the embedded sample data set, used when no data file is
// configured or the configured file cannot be read. Column headers match
// the export format of the salesline sheet.
const fallbackCSV = `recid,Sales order,Inventory Unit,Order Status,Delivery Date,Invoice account,Delivery address Name,Mode of delivery,Delivery terms,Item number,Net amount,Product name,Quantity Order,Requested receipt date,Requested ship date,Unit price,Quantity,Unit,Shipping Date
5637945894,SAP0014689,fzap,Open Order,11/4/25 0:00,C28402-B0,HONEYWELL FLOUR MILLS PLC,Self -30 T,Ex works,P008966,24407627.3,WHEAT; TYPE CANADIAN RED WINTER; RAW-MATERIAL.,35000,11/4/25 0:00,11/4/25 0:00,697360.78,35,T,11/4/25 0:00
5637945893,SAP0014688,fzap,Open Order,11/4/25 0:00,C28402-B0,HONEYWELL FLOUR MILLS PLC,Self -30 T,Ex works,P008966,24407627.3,WHEAT; TYPE CANADIAN RED WINTER; RAW-MATERIAL.,35000,11/4/25 0:00,11/4/25 0:00,697360.78,35,T,11/4/25 0:00
5637945892,SAP0014687,fzap,Open Order,11/4/25 0:00,C28402-B0,HONEYWELL FLOUR MILLS PLC,Self -30 T,Ex works,P008966,24407627.3,WHEAT; TYPE CANADIAN RED WINTER; RAW-MATERIAL.,35000,11/4/25 0:00,11/4/25 0:00,697360.78,35,T,11/4/25 0:00
`

// =============================================================================
// CSV PROVIDER
// =============================================================================

// CSVProvider loads line items from a CSV file and serves immutable
// snapshots. Refresh replaces the snapshot atomically (copy-on-refresh),
// so concurrent lookups never observe a partially loaded data set.
// An optional file watcher triggers Refresh when the file changes.
type CSVProvider struct {
	path    string
	current atomic.Pointer[Snapshot]

	// refreshMu serializes Refresh calls; readers never take it.
	refreshMu sync.Mutex

	watcher FileWatcher
}

// NewCSVProvider creates a provider for the given CSV path and performs
// the initial load. An empty path, or a path that cannot be read, falls
// back to the embedded sample data set (the caller can distinguish the
// two via the returned error, which is non-nil for a failed read).
func NewCSVProvider(path string) (*CSVProvider, error) {
	p := &CSVProvider{path: path}

	var loadErr error
	if path != "" {
		loadErr = p.Refresh()
	}
	if path == "" || loadErr != nil {
		rows, err := ParseCSV(strings.NewReader(fallbackCSV))
		if err != nil {
			// The embedded data is fixed; a parse failure here is a
			// programming error.
			return nil, fmt.Errorf("embedded fallback data invalid: %w", err)
		}
		p.current.Store(NewSnapshot(rows))
	}
	return p, loadErr
}

// Snapshot returns the current snapshot.
func (p *CSVProvider) Snapshot() *Snapshot {
	return p.current.Load()
}

// Refresh re-reads the CSV file and atomically replaces the snapshot.
// On error the previous snapshot stays in place.
func (p *CSVProvider) Refresh() error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", p.path, err)
	}

	p.current.Store(NewSnapshot(rows))
	return nil
}

// Watch starts a file watcher that refreshes the snapshot when the data
// file changes. No-op when the provider runs on the embedded fallback.
func (p *CSVProvider) Watch(debounce time.Duration) error {
	if p.path == "" || p.watcher != nil {
		return nil
	}
	w, err := startWatcher(p.path, debounce, func() { _ = p.Refresh() })
	if err != nil {
		return err
	}
	p.watcher = w
	return nil
}

// Close stops the file watcher if one is running.
func (p *CSVProvider) Close() error {
	if p.watcher != nil {
		return p.watcher.Close()
	}
	return nil
}

// =============================================================================
// CSV PARSING
// =============================================================================

// ParseCSV reads the salesline CSV export format. The header row is
// required; columns are matched by name (case-insensitive), so extra
// columns such as recid or the modified/created audit fields are ignored.
// Rows without a sales order id are skipped.
func ParseCSV(r io.Reader) ([]model.LineItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Some exports pad short rows; tolerate varying field counts.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["sales order"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "Sales order")
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	amount := func(record []string, name string) decimal.Decimal {
		d, err := decimal.Parse(field(record, name))
		if err != nil {
			// Missing amounts are exported as "N/A"; treat as zero.
			return decimal.Zero
		}
		return d
	}

	var rows []model.LineItem
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		orderID := util.NormalizeKey(field(record, "sales order"))
		if orderID == "" {
			continue
		}

		rows = append(rows, model.LineItem{
			SalesOrder:       orderID,
			InvoiceAccount:   util.NormalizeKey(field(record, "invoice account")),
			OrderStatus:      field(record, "order status"),
			DeliveryDate:     field(record, "delivery date"),
			ShippingDate:     field(record, "shipping date"),
			DeliveryAddress:  field(record, "delivery address name"),
			DeliveryMode:     field(record, "mode of delivery"),
			DeliveryTerms:    field(record, "delivery terms"),
			ItemNumber:       field(record, "item number"),
			ProductName:      field(record, "product name"),
			QuantityOrdered:  amount(record, "quantity order"),
			Unit:             field(record, "unit"),
			UnitPrice:        amount(record, "unit price"),
			NetAmount:        amount(record, "net amount"),
			RequestedReceipt: field(record, "requested receipt date"),
			RequestedShip:    field(record, "requested ship date"),
			InventoryUnit:    field(record, "inventory unit"),
		})
	}

	return rows, nil
}
