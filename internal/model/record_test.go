// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/jeranaias/orderline-tui/internal/decimal"
)

func testItems() []LineItem {
	return []LineItem{
		{
			SalesOrder:      "SAP0014689",
			InvoiceAccount:  "C28402-B0",
			OrderStatus:     "Open Order",
			DeliveryAddress: "HONEYWELL FLOUR MILLS PLC",
			ItemNumber:      "P008966",
			ProductName:     "WHEAT; TYPE CANADIAN RED WINTER; RAW-MATERIAL.",
			QuantityOrdered: decimal.MustParse("35"),
			NetAmount:       decimal.MustParse("100.00"),
		},
		{
			SalesOrder:      "SAP0014689",
			InvoiceAccount:  "C28402-B0",
			OrderStatus:     "Open Order",
			ItemNumber:      "P008967",
			QuantityOrdered: decimal.MustParse("10"),
			NetAmount:       decimal.MustParse("200.50"),
		},
		{
			SalesOrder:      "SAP0014689",
			InvoiceAccount:  "C28402-B0",
			OrderStatus:     "Open Order",
			ItemNumber:      "P008968",
			QuantityOrdered: decimal.MustParse("5.5"),
			NetAmount:       decimal.MustParse("50.25"),
		},
	}
}

func TestNewOrder(t *testing.T) {
	order := NewOrder(testItems())

	if order.SalesOrder != "SAP0014689" {
		t.Errorf("SalesOrder = %q", order.SalesOrder)
	}
	if order.InvoiceAccount != "C28402-B0" {
		t.Errorf("InvoiceAccount = %q", order.InvoiceAccount)
	}
	if order.OrderStatus != "Open Order" {
		t.Errorf("OrderStatus = %q", order.OrderStatus)
	}
	// Order-level fields come from the first row
	if order.DeliveryAddress != "HONEYWELL FLOUR MILLS PLC" {
		t.Errorf("DeliveryAddress = %q", order.DeliveryAddress)
	}
	if order.ItemCount() != 3 {
		t.Errorf("ItemCount = %d, want 3", order.ItemCount())
	}
}

func TestNewOrderEmpty(t *testing.T) {
	order := NewOrder(nil)
	if order.SalesOrder != "" || order.ItemCount() != 0 {
		t.Errorf("empty group should give zero Order, got %+v", order)
	}
	if !order.TotalNetAmount().IsZero() {
		t.Error("empty order total should be zero")
	}
}

func TestOrderAggregates(t *testing.T) {
	order := NewOrder(testItems())

	if got := order.TotalNetAmount().String(); got != "350.75" {
		t.Errorf("TotalNetAmount = %q, want 350.75", got)
	}
	if got := order.TotalQuantity().StringFixed(1); got != "50.5" {
		t.Errorf("TotalQuantity = %q, want 50.5", got)
	}
}
