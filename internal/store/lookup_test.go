// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"testing"

	"github.com/jeranaias/orderline-tui/internal/decimal"
	"github.com/jeranaias/orderline-tui/internal/model"
)

func testRows() []model.LineItem {
	return []model.LineItem{
		{SalesOrder: "SAP0014689", InvoiceAccount: "C28402-B0", ItemNumber: "P008966", NetAmount: decimal.MustParse("100.00")},
		{SalesOrder: "SAP0014689", InvoiceAccount: "C28402-B0", ItemNumber: "P008967", NetAmount: decimal.MustParse("200.50")},
		{SalesOrder: "SAP0014689", InvoiceAccount: "C28402-B0", ItemNumber: "P008968", NetAmount: decimal.MustParse("50.25")},
		{SalesOrder: "SAP0014690", InvoiceAccount: "C99999-X1", ItemNumber: "P000001", NetAmount: decimal.MustParse("10.00")},
	}
}

func testEngine() *Engine {
	return NewEngine(NewStatic(testRows()))
}

// =============================================================================
// LOOKUP TESTS
// =============================================================================

func TestLookupFound(t *testing.T) {
	res := testEngine().Lookup("SAP0014689", "C28402-B0")

	if res.Kind != Found {
		t.Fatalf("Kind = %v, want Found", res.Kind)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(res.Rows))
	}
	// Row order preserved as encountered in the snapshot
	for i, want := range []string{"P008966", "P008967", "P008968"} {
		if res.Rows[i].ItemNumber != want {
			t.Errorf("Rows[%d].ItemNumber = %q, want %q", i, res.Rows[i].ItemNumber, want)
		}
	}

	order := model.NewOrder(res.Rows)
	if got := order.TotalNetAmount().String(); got != "350.75" {
		t.Errorf("total amount = %q, want 350.75", got)
	}
	if order.ItemCount() != 3 {
		t.Errorf("item count = %d, want 3", order.ItemCount())
	}
}

func TestLookupCaseAndWhitespaceInsensitive(t *testing.T) {
	res := testEngine().Lookup(" sap0014689 ", "c28402-b0")
	if res.Kind != Found {
		t.Fatalf("Kind = %v, want Found for denormalized input", res.Kind)
	}
	if len(res.Rows) != 3 {
		t.Errorf("len(Rows) = %d, want 3", len(res.Rows))
	}
}

func TestLookupAccountMismatch(t *testing.T) {
	// Order exists under a different account: must never report NotFound.
	res := testEngine().Lookup("SAP0014689", "WRONGACC")
	if res.Kind != AccountMismatch {
		t.Fatalf("Kind = %v, want AccountMismatch", res.Kind)
	}
	if res.Rows != nil {
		t.Error("mismatch result must not carry rows")
	}
}

func TestLookupNotFound(t *testing.T) {
	res := testEngine().Lookup("SAP9999999", "C28402-B0")
	if res.Kind != NotFound {
		t.Fatalf("Kind = %v, want NotFound", res.Kind)
	}
}

func TestLookupEmptyInputs(t *testing.T) {
	e := testEngine()
	if res := e.Lookup("", "C28402-B0"); res.Kind != NotFound {
		t.Errorf("empty order id: Kind = %v, want NotFound", res.Kind)
	}
	if res := e.Lookup("SAP0014689", "   "); res.Kind != NotFound {
		t.Errorf("blank account: Kind = %v, want NotFound", res.Kind)
	}
}

func TestLookupEmptySnapshot(t *testing.T) {
	e := NewEngine(NewStatic(nil))
	if res := e.Lookup("SAP0014689", "C28402-B0"); res.Kind != NotFound {
		t.Errorf("empty snapshot: Kind = %v, want NotFound", res.Kind)
	}
}

// TestLookupDeterministic verifies that identical inputs against an
// unchanged snapshot yield identical results.
func TestLookupDeterministic(t *testing.T) {
	e := testEngine()
	first := e.Lookup("SAP0014689", "C28402-B0")
	for i := 0; i < 10; i++ {
		res := e.Lookup("SAP0014689", "C28402-B0")
		if res.Kind != first.Kind || len(res.Rows) != len(first.Rows) {
			t.Fatalf("iteration %d differed: %v/%d vs %v/%d",
				i, res.Kind, len(res.Rows), first.Kind, len(first.Rows))
		}
		for j := range res.Rows {
			if res.Rows[j].ItemNumber != first.Rows[j].ItemNumber {
				t.Fatalf("iteration %d row order differed", i)
			}
		}
	}
}

// =============================================================================
// SNAPSHOT TESTS
// =============================================================================

func TestSnapshotIndex(t *testing.T) {
	snap := NewSnapshot(testRows())

	if snap.Len() != 4 {
		t.Errorf("Len = %d, want 4", snap.Len())
	}
	if snap.OrderCount() != 2 {
		t.Errorf("OrderCount = %d, want 2", snap.OrderCount())
	}
	if !snap.HasOrder("sap0014690") {
		t.Error("HasOrder should normalize its input")
	}
	if snap.HasOrder("SAP0000000") {
		t.Error("HasOrder reported a missing order")
	}
}

func TestSnapshotOrderRowsIsolated(t *testing.T) {
	snap := NewSnapshot(testRows())

	rows := snap.OrderRows("SAP0014689")
	rows[0].ItemNumber = "MUTATED"

	again := snap.OrderRows("SAP0014689")
	if again[0].ItemNumber != "P008966" {
		t.Error("OrderRows must return a copy, not the backing storage")
	}
}

func TestSnapshotSkipsEmptyOrderIDs(t *testing.T) {
	snap := NewSnapshot([]model.LineItem{
		{SalesOrder: "", InvoiceAccount: "C28402-B0"},
		{SalesOrder: "SAP0014689", InvoiceAccount: "C28402-B0"},
	})
	if snap.OrderCount() != 1 {
		t.Errorf("OrderCount = %d, want 1", snap.OrderCount())
	}
}
