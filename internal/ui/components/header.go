// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/orderline-tui/internal/session"
	"github.com/jeranaias/orderline-tui/internal/ui/styles"
)

// =============================================================================
// HEADER
// =============================================================================

// Header is the top banner showing the application name and the current
// workflow stage.
type Header struct {
	Title    string
	Subtitle string
	Stage    session.Stage
	Width    int
}

// stageLabel maps a workflow stage to its user-facing badge text.
func stageLabel(s session.Stage) string {
	switch s {
	case session.AwaitingName:
		return "STEP 1/3 · NAME"
	case session.AwaitingOrderId:
		return "STEP 2/3 · ORDER"
	case session.AwaitingVerification:
		return "STEP 3/3 · VERIFY"
	default:
		return "UNKNOWN"
	}
}

// Render renders the header with the given theme.
func (h Header) Render(theme *styles.Theme) string {
	title := theme.HeaderTitle.Render(h.Title)
	badge := theme.StageBadge.Render(stageLabel(h.Stage))

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge)
	if h.Subtitle != "" {
		line = lipgloss.JoinVertical(lipgloss.Center, line,
			theme.HeaderSubtitle.Render(h.Subtitle))
	}

	header := theme.Header
	if h.Width > 4 {
		header = header.Width(h.Width - 2)
	}
	return header.Render(line)
}

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar is the bottom bar showing session info, attempt state, and
// key shortcuts.
type StatusBar struct {
	SessionID      string
	CustomerName   string
	FailedAttempts int
	MaxAttempts    int
	RecordCount    int
	OrderCount     int
	TimeoutIn      time.Duration
	Width          int
}

// shortcuts shown on the right edge of the bar.
var shortcuts = []struct{ key, desc string }{
	{"esc", "back"},
	{"ctrl+r", "restart"},
	{"ctrl+h", "history"},
	{"ctrl+c", "quit"},
}

// Render renders the status bar with the given theme.
func (b StatusBar) Render(theme *styles.Theme) string {
	var left []string

	if b.SessionID != "" {
		short := b.SessionID
		if len(short) > 8 {
			short = short[:8]
		}
		left = append(left, "session "+short)
	}
	if b.CustomerName != "" {
		left = append(left, b.CustomerName)
	}
	left = append(left, fmt.Sprintf("%d orders / %d lines", b.OrderCount, b.RecordCount))

	if b.FailedAttempts > 0 {
		left = append(left, theme.AttemptsLabel.Render(
			fmt.Sprintf("attempts %d/%d", b.FailedAttempts, b.MaxAttempts)))
	}

	// Show the countdown once the session is within two minutes of
	// timing out.
	if b.TimeoutIn > 0 && b.TimeoutIn <= 2*time.Minute {
		left = append(left, theme.TimeoutWarn.Render(
			fmt.Sprintf("timeout in %ds", int(b.TimeoutIn.Seconds()))))
	}

	var right []string
	for _, s := range shortcuts {
		right = append(right,
			theme.ShortcutKey.Render(s.key)+" "+theme.ShortcutDesc.Render(s.desc))
	}

	leftStr := strings.Join(left, " · ")
	rightStr := strings.Join(right, "  ")

	gap := b.Width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 2
	if gap < 1 {
		return theme.StatusBar.Render(leftStr)
	}
	return theme.StatusBar.Render(leftStr + strings.Repeat(" ", gap) + rightStr)
}
