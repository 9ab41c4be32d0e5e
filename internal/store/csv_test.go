// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `recid,Sales order,Invoice account,Order Status,Item number,Product name,Net amount,Quantity Order,Unit price,Unit
1,SAP0014689,C28402-B0,Open Order,P008966,WHEAT RAW,100.00,10,10.00,T
2,SAP0014689,C28402-B0,Open Order,P008967,MAIZE RAW,200.50,20,10.025,T
3,SAP0014689,C28402-B0,Open Order,P008968,SORGHUM RAW,50.25,5,10.05,T
4,SAP0014690,C99999-X1,Invoiced,P000001,SUGAR,10.00,1,10.00,KG
`

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}

	first := rows[0]
	if first.SalesOrder != "SAP0014689" {
		t.Errorf("SalesOrder = %q", first.SalesOrder)
	}
	if first.InvoiceAccount != "C28402-B0" {
		t.Errorf("InvoiceAccount = %q", first.InvoiceAccount)
	}
	if got := first.NetAmount.String(); got != "100.00" {
		t.Errorf("NetAmount = %q, want 100.00", got)
	}
	if first.ProductName != "WHEAT RAW" {
		t.Errorf("ProductName = %q", first.ProductName)
	}
}

func TestParseCSVNormalizesKeys(t *testing.T) {
	in := "Sales order,Invoice account\n sap0014689 , c28402-b0 \n"
	rows, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if rows[0].SalesOrder != "SAP0014689" || rows[0].InvoiceAccount != "C28402-B0" {
		t.Errorf("keys not normalized: %q / %q", rows[0].SalesOrder, rows[0].InvoiceAccount)
	}
}

func TestParseCSVSkipsRowsWithoutOrderID(t *testing.T) {
	in := "Sales order,Invoice account\n,C28402-B0\nSAP0014689,C28402-B0\n"
	rows, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want 1", len(rows))
	}
}

func TestParseCSVBadAmountIsZero(t *testing.T) {
	in := "Sales order,Net amount\nSAP0014689,N/A\n"
	rows, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if !rows[0].NetAmount.IsZero() {
		t.Errorf("NetAmount = %q, want zero", rows[0].NetAmount)
	}
}

func TestParseCSVMissingOrderColumn(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("recid,Invoice account\n1,C28402-B0\n")); err == nil {
		t.Fatal("expected error for missing Sales order column")
	}
}

func TestCSVProviderFallback(t *testing.T) {
	p, err := NewCSVProvider("")
	if err != nil {
		t.Fatalf("NewCSVProvider failed: %v", err)
	}
	defer p.Close()

	snap := p.Snapshot()
	if snap.Len() != 3 {
		t.Errorf("fallback Len = %d, want 3", snap.Len())
	}
	for _, id := range []string{"SAP0014687", "SAP0014688", "SAP0014689"} {
		if !snap.HasOrder(id) {
			t.Errorf("fallback missing order %s", id)
		}
	}
}

func TestCSVProviderUnreadableFileFallsBack(t *testing.T) {
	p, err := NewCSVProvider(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if p == nil || p.Snapshot() == nil {
		t.Fatal("provider must still serve the embedded fallback")
	}
	if p.Snapshot().Len() != 3 {
		t.Errorf("fallback Len = %d, want 3", p.Snapshot().Len())
	}
}

func TestCSVProviderRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salesline.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewCSVProvider(path)
	if err != nil {
		t.Fatalf("NewCSVProvider failed: %v", err)
	}
	defer p.Close()

	before := p.Snapshot()
	if before.Len() != 4 {
		t.Fatalf("initial Len = %d, want 4", before.Len())
	}

	extra := sampleCSV + "5,SAP0014691,C28402-B0,Open Order,P000002,TEST,1.00,1,1.00,KG\n"
	if err := os.WriteFile(path, []byte(extra), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	after := p.Snapshot()
	if after.Len() != 5 {
		t.Errorf("refreshed Len = %d, want 5", after.Len())
	}
	// The previous snapshot is untouched by the refresh.
	if before.Len() != 4 {
		t.Errorf("old snapshot mutated: Len = %d", before.Len())
	}
}

func TestCSVProviderRefreshKeepsSnapshotOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salesline.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewCSVProvider(path)
	if err != nil {
		t.Fatalf("NewCSVProvider failed: %v", err)
	}
	defer p.Close()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := p.Refresh(); err == nil {
		t.Fatal("expected refresh error after file removal")
	}
	if p.Snapshot().Len() != 4 {
		t.Errorf("snapshot lost after failed refresh: Len = %d", p.Snapshot().Len())
	}
}
