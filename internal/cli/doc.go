// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and command handlers for
// orderline.
//
// Commands:
//
//	orderline            Start the TUI (default)
//	orderline chat       Line-mode assistant for plain terminals
//	orderline status     Show data source and configuration summary
//	orderline config     Show, get, and set configuration values
//	orderline data       Import and inspect the order database
//	orderline version    Print version information
//
// The TUI and chat modes drive the same verification workflow; chat is
// a readline-style fallback for terminals where the full-screen UI is
// unavailable or unwanted.
package cli
