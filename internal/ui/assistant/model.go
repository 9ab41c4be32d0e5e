// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/orderline-tui/internal/config"
	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/session"
	"github.com/jeranaias/orderline-tui/internal/store"
	"github.com/jeranaias/orderline-tui/internal/ui/components"
	"github.com/jeranaias/orderline-tui/internal/ui/styles"
)

// =============================================================================
// ASSISTANT MODEL
// =============================================================================

// Model is the Bubble Tea model for the order verification TUI.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Core collaborators
	cfg      *config.Config
	machine  *session.Machine
	sess     *session.Session
	provider store.Provider
	guard    *store.Guard

	// UI components
	input    textinput.Model
	viewport viewport.Model
	spinner  components.SearchSpinner

	// View state
	searching   bool
	showHistory bool
	feedback    string
	feedbackTone tone
	verified    *model.Order
}

// tone selects the style used for the feedback line.
type tone int

const (
	toneNone tone = iota
	toneSuccess
	toneError
	toneWarning
)

// New creates the assistant model.
func New(cfg *config.Config, machine *session.Machine, provider store.Provider, guard *store.Guard) *Model {
	input := textinput.New()
	input.Placeholder = "Your name"
	input.CharLimit = 120
	input.Focus()

	return &Model{
		theme:    styles.NewTheme(),
		cfg:      cfg,
		machine:  machine,
		sess:     session.New(),
		provider: provider,
		guard:    guard,
		input:    input,
		spinner:  components.NewSearchSpinner(),
	}
}

// Session exposes the active session, primarily for tests.
func (m *Model) Session() *session.Session {
	return m.sess
}

// Init starts the input cursor blink and the timeout tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, session.TickCmd())
}

// configureInput adjusts the text input for the current stage. The
// account id is masked like a password while typing.
func (m *Model) configureInput() {
	switch m.sess.Stage() {
	case session.AwaitingName:
		m.input.Placeholder = "Your name"
		m.input.EchoMode = textinput.EchoNormal
	case session.AwaitingOrderId:
		m.input.Placeholder = "Order id (e.g. SAP0014689)"
		m.input.EchoMode = textinput.EchoNormal
	case session.AwaitingVerification:
		m.input.Placeholder = "Invoice account for " + m.sess.PendingOrderID()
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '*'
	}
	m.input.SetValue("")
}
