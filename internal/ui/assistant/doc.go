// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant provides the Bubble Tea model for the interactive
// order verification TUI.
//
// The model is a thin presentation layer over the session package: user
// input becomes Machine actions, the returned Events become rendered
// feedback, and a once-per-second tick drives the inactivity timeout.
// Verification lookups run as asynchronous commands so the search
// spinner can animate during the configured search pause.
package assistant
