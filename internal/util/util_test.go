// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// NORMALIZATION TESTS
// =============================================================================

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "SAP0014689", "SAP0014689"},
		{"lower case", "sap0014689", "SAP0014689"},
		{"surrounding whitespace", "  sap0014689 ", "SAP0014689"},
		{"tabs and newlines", "\tC28402-b0\n", "C28402-B0"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"mixed case account", "c28402-B0", "C28402-B0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKey(tt.input); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Ada "); got != "Ada" {
		t.Errorf("NormalizeName preserved case/trim wrong: got %q", got)
	}
	if got := NormalizeName("ada"); got != "ada" {
		t.Errorf("NormalizeName should not upper-case, got %q", got)
	}
}

// =============================================================================
// TRUNCATION TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"no truncation needed", "wheat", 10, "wheat"},
		{"exact length", "wheat", 5, "wheat"},
		{"truncated with ellipsis", "WHEAT; TYPE CANADIAN RED WINTER", 10, "WHEAT; ..."},
		{"zero max", "wheat", 0, ""},
		{"tiny max", "wheat", 2, "wh"},
		{"multibyte safe", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.maxRunes); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestRuneLen(t *testing.T) {
	if got := RuneLen("héllo"); got != 5 {
		t.Errorf("RuneLen(héllo) = %d, want 5", got)
	}
	if got := RuneLen(""); got != 0 {
		t.Errorf("RuneLen empty = %d, want 0", got)
	}
}

// =============================================================================
// FORMATTING TESTS
// =============================================================================

func TestFormatGrouped(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"24407627.30", "24,407,627.30"},
		{"-1234567.89", "-1,234,567.89"},
		{"350.75", "350.75"},
		{"35000", "35,000"},
	}

	for _, tt := range tests {
		if got := FormatGrouped(tt.input); got != tt.want {
			t.Errorf("FormatGrouped(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	if err := AtomicWriteFile(path, []byte("hello"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want hello", data)
	}

	// Overwrite must replace, not append
	if err := AtomicWriteFile(path, []byte("bye"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "bye" {
		t.Errorf("content after overwrite = %q, want bye", data)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "out.txt" {
			t.Errorf("unexpected leftover file: %s", e.Name())
		}
	}
}
