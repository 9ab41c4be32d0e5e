// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sales orders and line items.
package model

import (
	"time"

	"github.com/jeranaias/orderline-tui/internal/decimal"
)

// =============================================================================
// LINE ITEM
// =============================================================================

// LineItem is one immutable row of the order data set: a single
// product/quantity/price record belonging to a sales order. SalesOrder and
// InvoiceAccount are stored in normalized form (trimmed, upper-cased); the
// remaining fields hold whatever the source data carried.
type LineItem struct {
	// SalesOrder is the normalized order identifier grouping line items.
	SalesOrder string `json:"sales_order"`

	// InvoiceAccount is the normalized account identifier, the second
	// authentication factor for the order.
	InvoiceAccount string `json:"invoice_account"`

	// Order-level fields, identical across all rows of one order.
	OrderStatus     string `json:"order_status"`
	DeliveryDate    string `json:"delivery_date"`
	ShippingDate    string `json:"shipping_date"`
	DeliveryAddress string `json:"delivery_address"`
	DeliveryMode    string `json:"delivery_mode"`
	DeliveryTerms   string `json:"delivery_terms"`

	// Item-level fields.
	ItemNumber       string          `json:"item_number"`
	ProductName      string          `json:"product_name"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	Unit             string          `json:"unit"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	RequestedReceipt string          `json:"requested_receipt_date"`
	RequestedShip    string          `json:"requested_ship_date"`
	InventoryUnit    string          `json:"inventory_unit"`
}

// =============================================================================
// ORDER VIEW
// =============================================================================

// Order is the order-level view over a group of line items that share one
// sales order id. Order-level fields are read from the first row of the
// group; aggregates are computed exactly over all rows.
type Order struct {
	SalesOrder      string
	InvoiceAccount  string
	OrderStatus     string
	DeliveryDate    string
	ShippingDate    string
	DeliveryAddress string
	DeliveryMode    string
	DeliveryTerms   string

	// Items holds the line items in the order they appeared in the
	// provider snapshot.
	Items []LineItem
}

// NewOrder builds the order-level view from a non-empty row group.
// Returns the zero Order if rows is empty.
func NewOrder(rows []LineItem) Order {
	if len(rows) == 0 {
		return Order{}
	}
	first := rows[0]
	return Order{
		SalesOrder:      first.SalesOrder,
		InvoiceAccount:  first.InvoiceAccount,
		OrderStatus:     first.OrderStatus,
		DeliveryDate:    first.DeliveryDate,
		ShippingDate:    first.ShippingDate,
		DeliveryAddress: first.DeliveryAddress,
		DeliveryMode:    first.DeliveryMode,
		DeliveryTerms:   first.DeliveryTerms,
		Items:           rows,
	}
}

// ItemCount returns the number of line items in the order.
func (o Order) ItemCount() int {
	return len(o.Items)
}

// TotalNetAmount returns the exact sum of net amounts over all line items.
func (o Order) TotalNetAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.NetAmount)
	}
	return total
}

// TotalQuantity returns the exact sum of ordered quantities over all
// line items.
func (o Order) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.QuantityOrdered)
	}
	return total
}

// =============================================================================
// HISTORY ENTRY
// =============================================================================

// HistoryEntry summarizes a successfully verified order for the session's
// resolved-order history.
type HistoryEntry struct {
	OrderID     string          `json:"order_id"`
	Timestamp   time.Time       `json:"timestamp"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
