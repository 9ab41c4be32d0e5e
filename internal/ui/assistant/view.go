// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/orderline-tui/internal/session"
	"github.com/jeranaias/orderline-tui/internal/ui/components"
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the full screen.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := components.Header{
		Title:    "orderline",
		Subtitle: "order verification assistant",
		Stage:    m.sess.Stage(),
		Width:    m.width,
	}.Render(m.theme)

	var sections []string
	sections = append(sections, header)
	sections = append(sections, m.viewport.View())

	if m.searching {
		sections = append(sections, m.spinner.View(m.theme))
	} else if m.feedback != "" {
		sections = append(sections, m.renderFeedback())
	}

	sections = append(sections, m.theme.InputContainer.Render(
		m.theme.InputPrompt.Render("> ")+m.input.View()))
	sections = append(sections, m.renderStatusBar())

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// refreshContent rebuilds the scrollable content area.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}

	var parts []string
	parts = append(parts, m.renderPrompt())

	if m.verified != nil {
		parts = append(parts, components.SummaryLine(m.theme, *m.verified))
		parts = append(parts, components.OrderDetail{
			Order: *m.verified,
			Width: m.viewport.Width,
		}.Render(m.theme))
		parts = append(parts, m.theme.GreetingText.Render(
			"Press ctrl+n to check another order, or ctrl+r to start over."))
	}

	if m.showHistory {
		parts = append(parts, components.HistoryList{Entries: m.sess.History()}.Render(m.theme))
	}

	m.viewport.SetContent(strings.Join(parts, "\n\n"))
}

// renderPrompt renders the per-stage instruction text.
func (m *Model) renderPrompt() string {
	switch m.sess.Stage() {
	case session.AwaitingName:
		return m.theme.StagePrompt.Render("Hello! What is your name?")

	case session.AwaitingOrderId:
		greeting := "Enter the sales order id you want to check."
		if name := m.sess.CustomerName(); name != "" {
			greeting = name + ", enter the sales order id you want to check."
		}
		return m.theme.StagePrompt.Render(greeting)

	case session.AwaitingVerification:
		return m.theme.StagePrompt.Render(
			"Enter the invoice account for order " + m.sess.PendingOrderID() + ".")

	default:
		return ""
	}
}

func (m *Model) renderFeedback() string {
	switch m.feedbackTone {
	case toneSuccess:
		return m.theme.SuccessBox.Render(m.feedback)
	case toneError:
		return m.theme.ErrorBox.Render(m.feedback)
	case toneWarning:
		return m.theme.LockoutBox.Render(m.feedback)
	default:
		return m.theme.GreetingText.Render(m.feedback)
	}
}

func (m *Model) renderStatusBar() string {
	snap := m.provider.Snapshot()
	recordCount, orderCount := 0, 0
	if snap != nil {
		recordCount = snap.Len()
		orderCount = snap.OrderCount()
	}

	return components.StatusBar{
		SessionID:      m.sess.ID(),
		CustomerName:   m.sess.CustomerName(),
		FailedAttempts: m.sess.FailedAttempts(),
		MaxAttempts:    m.machine.Config().MaxAttempts,
		RecordCount:    recordCount,
		OrderCount:     orderCount,
		TimeoutIn:      m.machine.Monitor().Remaining(m.sess, time.Now()),
		Width:          m.width,
	}.Render(m.theme)
}
