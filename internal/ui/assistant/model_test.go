// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/orderline-tui/internal/config"
	"github.com/jeranaias/orderline-tui/internal/decimal"
	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/session"
	"github.com/jeranaias/orderline-tui/internal/store"
)

func newTestModel() *Model {
	rows := []model.LineItem{
		{SalesOrder: "SAP0014689", InvoiceAccount: "C28402-B0", ItemNumber: "P008966", NetAmount: decimal.MustParse("100.00")},
	}
	provider := store.NewStatic(rows)
	engine := store.NewEngine(provider)

	cfg := config.Default()
	cfg.UI.SearchDelayMs = 0

	m := New(cfg, session.NewMachine(engine, cfg.Workflow()), provider, store.NewGuard(1000, 1000))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func typeAndEnter(m *Model, text string) {
	m.input.SetValue(text)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModelWalksStages(t *testing.T) {
	m := newTestModel()

	if m.Session().Stage() != session.AwaitingName {
		t.Fatalf("initial stage = %v", m.Session().Stage())
	}

	typeAndEnter(m, "Ada")
	if m.Session().Stage() != session.AwaitingOrderId {
		t.Fatalf("stage after name = %v", m.Session().Stage())
	}

	typeAndEnter(m, "SAP0014689")
	if m.Session().Stage() != session.AwaitingVerification {
		t.Fatalf("stage after order id = %v", m.Session().Stage())
	}
	if !strings.Contains(m.View(), "SAP0014689") {
		t.Error("view missing pending order id")
	}
}

func TestModelVerifyFlow(t *testing.T) {
	m := newTestModel()
	typeAndEnter(m, "Ada")
	typeAndEnter(m, "SAP0014689")

	// Enter starts the async search.
	m.input.SetValue("C28402-B0")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("verify produced no command")
	}
	if !m.searching {
		t.Error("model not in searching state")
	}

	// Run the batched commands until the result message surfaces.
	msg := drain(t, cmd)
	m.Update(msg)

	if m.searching {
		t.Error("still searching after result")
	}
	if m.verified == nil {
		t.Fatal("no verified order after successful lookup")
	}
	view := m.View()
	if !strings.Contains(view, "verified") {
		t.Error("view missing verification summary")
	}
}

func TestModelRejectionFeedback(t *testing.T) {
	m := newTestModel()
	typeAndEnter(m, "A")

	if m.Session().Stage() != session.AwaitingName {
		t.Error("short name advanced the stage")
	}
	if m.feedbackTone != toneError {
		t.Error("rejection did not set error feedback")
	}
}

// drain executes a command tree until it yields an actionResultMsg.
func drain(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			for _, sub := range msg {
				queue = append(queue, sub)
			}
		case actionResultMsg:
			return msg
		}
	}
	t.Fatal("no actionResultMsg produced")
	return nil
}
