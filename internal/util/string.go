// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the orderline application.
package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// KEY NORMALIZATION
// =============================================================================

// NormalizeKey canonicalizes an order or account identifier for storage-key
// use and comparison: Unicode NFC, surrounding whitespace trimmed, upper-cased.
// All lookups and index keys go through this function so that
// " sap0014689 " and "SAP0014689" refer to the same order.
func NormalizeKey(s string) string {
	s = norm.NFC.String(s)
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeName canonicalizes a customer name for validation and display:
// Unicode NFC with surrounding whitespace trimmed. Case is preserved since
// the name is echoed back to the user.
func NormalizeName(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// =============================================================================
// UNICODE-SAFE TRUNCATION
// =============================================================================

// UNICODE: Rune-aware truncation preserves multi-byte characters.
// Product names in the order data contain free-form text; truncating on
// byte boundaries would corrupt UTF-8 output in the terminal.

// TruncateRunes truncates a string to a maximum number of runes (characters).
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// RuneLen returns the number of runes (characters) in a string.
// This is safer than len() for UTF-8 strings and is the length used by
// the minimum-length input policies.
func RuneLen(s string) int {
	return len([]rune(s))
}
