// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the orderline
// TUI: the header, the status bar, the order detail panels, the
// line-item table, the history list, and the search spinner. Components
// are pure renderers; all workflow state lives in the session package.
package components
