// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/orderline-tui/internal/decimal"
	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/session"
	"github.com/jeranaias/orderline-tui/internal/ui/styles"
)

func testOrder() model.Order {
	return model.NewOrder([]model.LineItem{
		{
			SalesOrder: "SAP0014689", InvoiceAccount: "C28402-B0",
			OrderStatus: "Open Order", DeliveryAddress: "HONEYWELL FLOUR MILLS PLC",
			DeliveryMode: "Self -30 T", DeliveryTerms: "Ex works",
			ItemNumber: "P008966", ProductName: "WHEAT RAW",
			QuantityOrdered: decimal.MustParse("10"), Unit: "T",
			UnitPrice: decimal.MustParse("10.00"), NetAmount: decimal.MustParse("100.00"),
		},
		{
			SalesOrder: "SAP0014689", InvoiceAccount: "C28402-B0",
			ItemNumber: "P008967", ProductName: "MAIZE RAW",
			QuantityOrdered: decimal.MustParse("20"),
			UnitPrice:       decimal.MustParse("10.025"), NetAmount: decimal.MustParse("200.50"),
		},
	})
}

func TestHeaderRender(t *testing.T) {
	theme := styles.NewTheme()
	h := Header{Title: "orderline", Stage: session.AwaitingVerification, Width: 80}
	out := h.Render(theme)
	if !strings.Contains(out, "orderline") {
		t.Error("header missing title")
	}
	if !strings.Contains(out, "STEP 3/3") {
		t.Error("header missing stage badge")
	}
}

func TestStatusBarRender(t *testing.T) {
	theme := styles.NewTheme()
	b := StatusBar{
		SessionID:      "0123456789abcdef",
		CustomerName:   "Ada",
		FailedAttempts: 2,
		MaxAttempts:    3,
		RecordCount:    10,
		OrderCount:     4,
		TimeoutIn:      90 * time.Second,
		Width:          120,
	}
	out := b.Render(theme)
	for _, want := range []string{"session 01234567", "Ada", "attempts 2/3", "timeout in 90s", "4 orders"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q:\n%s", want, out)
		}
	}
}

func TestStatusBarHidesQuietState(t *testing.T) {
	theme := styles.NewTheme()
	out := StatusBar{Width: 120, TimeoutIn: 10 * time.Minute}.Render(theme)
	if strings.Contains(out, "attempts") {
		t.Error("attempt counter shown with zero failures")
	}
	if strings.Contains(out, "timeout in") {
		t.Error("timeout warning shown far from expiry")
	}
}

func TestOrderDetailRender(t *testing.T) {
	theme := styles.NewTheme()
	out := OrderDetail{Order: testOrder(), Width: 100}.Render(theme)

	for _, want := range []string{"SAP0014689", "Open Order", "HONEYWELL FLOUR MILLS PLC", "300.50", "P008967"} {
		if !strings.Contains(out, want) {
			t.Errorf("order detail missing %q", want)
		}
	}
}

func TestSummaryLine(t *testing.T) {
	theme := styles.NewTheme()
	out := SummaryLine(theme, testOrder())
	if !strings.Contains(out, "SAP0014689") || !strings.Contains(out, "300.50") {
		t.Errorf("summary = %q", out)
	}
}

func TestHistoryList(t *testing.T) {
	theme := styles.NewTheme()

	empty := HistoryList{}.Render(theme)
	if !strings.Contains(empty, "No orders") {
		t.Error("empty history missing placeholder")
	}

	out := HistoryList{Entries: []model.HistoryEntry{
		{OrderID: "SAP0014689", Timestamp: time.Date(2025, 11, 4, 10, 30, 0, 0, time.UTC), ItemCount: 2, TotalAmount: decimal.MustParse("300.50")},
	}}.Render(theme)
	for _, want := range []string{"SAP0014689", "10:30:00", "2 item(s)", "300.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q", want)
		}
	}
}

func TestSearchSpinnerLifecycle(t *testing.T) {
	theme := styles.NewTheme()
	s := NewSearchSpinner()

	if s.Active() {
		t.Error("spinner active before Start")
	}
	if s.View(theme) != "" {
		t.Error("inactive spinner rendered output")
	}

	if cmd := s.Start("Searching"); cmd == nil {
		t.Error("Start returned no tick command")
	}
	if !s.Active() {
		t.Error("spinner not active after Start")
	}
	if !strings.Contains(s.View(theme), "Searching") {
		t.Error("active spinner missing message")
	}

	s.Stop()
	if s.Active() {
		t.Error("spinner active after Stop")
	}
}
