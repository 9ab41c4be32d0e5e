// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/orderline-tui/internal/session"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case session.TickMsg:
		return m.handleTick(msg)

	case actionResultMsg:
		return m.handleResult(msg.Event)
	}

	// Spinner frames and cursor blink.
	var cmds []tea.Cmd
	if cmd := m.spinner.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	contentHeight := msg.Height - 8
	if contentHeight < 4 {
		contentHeight = 4
	}
	if !m.ready {
		m.viewport = newViewport(msg.Width, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = contentHeight
	}
	m.refreshContent()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The spinner blocks input while a lookup is in flight.
	if m.searching && msg.String() != "ctrl+c" {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		return m.handleSubmit()

	case "esc":
		if m.sess.Stage() == session.AwaitingVerification {
			m.applyEvent(m.machine.Back(m.sess, time.Now()))
		}
		return m, nil

	case "ctrl+r":
		m.applyEvent(m.machine.Restart(m.sess, time.Now()))
		return m, nil

	case "ctrl+n":
		if m.sess.Stage() == session.AwaitingVerification && m.verified != nil {
			m.applyEvent(m.machine.NextOrder(m.sess, time.Now()))
		}
		return m, nil

	case "ctrl+h":
		m.showHistory = !m.showHistory
		m.refreshContent()
		return m, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit dispatches the entered text to the stage's action.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	now := time.Now()

	switch m.sess.Stage() {
	case session.AwaitingName:
		m.applyEvent(m.machine.ConfirmName(m.sess, value, now))
		return m, nil

	case session.AwaitingOrderId:
		m.applyEvent(m.machine.SubmitOrderID(m.sess, value, now))
		return m, nil

	case session.AwaitingVerification:
		// Lockout and empty input resolve immediately, without the
		// search pause.
		m.searching = true
		pause := m.cfg.SearchDelay()
		if m.guard != nil {
			pause += m.guard.Delay()
		}
		cmd := m.verifyCmd(value, pause)
		m.input.SetValue("")
		return m, tea.Batch(m.spinner.Start("Searching order records"), cmd)
	}
	return m, nil
}

func (m *Model) handleTick(msg session.TickMsg) (tea.Model, tea.Cmd) {
	mon := m.machine.Monitor()
	if mon.Expired(m.sess, msg.Time) {
		mon.CheckTimeout(m.sess, msg.Time)
		m.applyEvent(session.SessionTimedOut{})
	}
	m.refreshContent()
	return m, session.TickCmd()
}

func (m *Model) handleResult(ev session.Event) (tea.Model, tea.Cmd) {
	m.searching = false
	m.spinner.Stop()
	m.applyEvent(ev)
	return m, nil
}

// =============================================================================
// EVENT APPLICATION
// =============================================================================

// applyEvent folds a machine Event into the view state.
func (m *Model) applyEvent(ev session.Event) {
	switch ev := ev.(type) {
	case nil:
		// Navigation succeeded; the stage prompt is the feedback.
		m.feedback = ""
		m.feedbackTone = toneNone
		m.verified = nil

	case session.NameAccepted:
		m.feedback = fmt.Sprintf("Welcome, %s. Enter the order id you want to check.", ev.Name)
		m.feedbackTone = toneSuccess

	case session.NameRejected:
		m.feedback = ev.Reason
		m.feedbackTone = toneError

	case session.OrderIDAccepted:
		m.feedback = fmt.Sprintf("Order %s selected. Enter the invoice account to verify.", ev.OrderID)
		m.feedbackTone = toneSuccess

	case session.OrderIDRejected:
		m.feedback = ev.Reason
		m.feedbackTone = toneError

	case session.VerificationSucceeded:
		order := ev.Order
		m.verified = &order
		m.feedback = ""
		m.feedbackTone = toneSuccess

	case session.AccountMismatch:
		m.feedback = fmt.Sprintf(
			"Account does not match this order. Attempt %d of %d.", ev.Attempt, ev.Max)
		m.feedbackTone = toneError
		m.verified = nil

	case session.OrderNotFound:
		m.feedback = fmt.Sprintf(
			"No order found for that id and account. Attempt %d of %d.", ev.Attempt, ev.Max)
		m.feedbackTone = toneError
		m.verified = nil

	case session.LockedOut:
		m.feedback = fmt.Sprintf(
			"Too many failed attempts. Locked for %d seconds.", int(ev.Remaining.Seconds()+0.5))
		m.feedbackTone = toneWarning
		m.verified = nil

	case session.SessionTimedOut:
		m.feedback = "Session expired after inactivity. Please start again."
		m.feedbackTone = toneWarning
		m.verified = nil
		m.showHistory = false

	case session.ValidationError:
		m.feedback = ev.Reason
		m.feedbackTone = toneError
	}

	m.configureInput()
	m.refreshContent()
}
