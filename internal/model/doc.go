// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sales orders and line items.
//
// This package defines the core domain types used throughout the application
// for representing order line items and the order-level view derived from
// them.
//
// # Key Types
//
//   - LineItem: One product/quantity/price row belonging to a sales order
//   - Order: Order-level view over a group of line items sharing one order id
//   - HistoryEntry: Summary of a successfully verified order
//
// # Usage
//
// Group line items into an order-level view:
//
//	order := model.NewOrder(rows)
//	fmt.Printf("%s: %d items, %s total\n",
//	    order.SalesOrder, order.ItemCount(), order.TotalNetAmount())
package model
