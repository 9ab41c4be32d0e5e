// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme(t *testing.T) {
	th := NewTheme()
	if th == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Spot-check that styles are initialized, not zero values.
	if !th.Header.GetBold() {
		t.Error("Header should be bold")
	}
	if !th.InputPrompt.GetBold() {
		t.Error("InputPrompt should be bold")
	}
	if !th.LockoutBox.GetBold() {
		t.Error("LockoutBox should be bold")
	}
}

func TestThemeSetSize(t *testing.T) {
	th := NewTheme()
	th.SetSize(120, 40)
	if th.Width != 120 || th.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", th.Width, th.Height)
	}
}

func TestAdaptiveColorsDistinct(t *testing.T) {
	colors := []lipgloss.AdaptiveColor{Cyan, Purple, Emerald, Rose, Amber}
	seen := map[string]bool{}
	for _, c := range colors {
		if seen[c.Dark] {
			t.Errorf("duplicate dark color %s", c.Dark)
		}
		seen[c.Dark] = true
	}
}
