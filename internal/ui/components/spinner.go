// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/orderline-tui/internal/ui/styles"
)

// =============================================================================
// SEARCH SPINNER
// =============================================================================

// SearchSpinner is shown while a verification lookup is "in flight"
// (the search pause plus any rate-limit delay).
type SearchSpinner struct {
	spinner spinner.Model
	message string
	active  bool
}

// NewSearchSpinner creates a spinner with ASCII-compatible frames.
func NewSearchSpinner() SearchSpinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return SearchSpinner{spinner: s, message: "Searching order records"}
}

// Start activates the spinner and returns its tick command.
func (s *SearchSpinner) Start(message string) tea.Cmd {
	if message != "" {
		s.message = message
	}
	s.active = true
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *SearchSpinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is running.
func (s *SearchSpinner) Active() bool {
	return s.active
}

// Update advances the spinner animation.
func (s *SearchSpinner) Update(msg tea.Msg) tea.Cmd {
	if !s.active {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the spinner line.
func (s *SearchSpinner) View(theme *styles.Theme) string {
	if !s.active {
		return ""
	}
	return theme.Spinner.Render(s.spinner.View()) + " " +
		theme.SearchingMsg.Render(s.message+"...")
}
