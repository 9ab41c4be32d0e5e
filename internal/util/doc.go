// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the orderline application.
//
// It contains small, dependency-light helpers used across packages:
//
//   - Key and name normalization (Unicode NFC, trim, upper-case) used for
//     every order and account identifier comparison
//   - Rune-safe string truncation for terminal rendering
//   - Number-to-string conversion and thousands-separator formatting
//   - Atomic file writes for history and config persistence
package util
