// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/ui/styles"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// =============================================================================
// HISTORY LIST
// =============================================================================

// HistoryList renders the session's resolved-order history, most recent
// first.
type HistoryList struct {
	Entries []model.HistoryEntry
}

// Render renders the history list with the given theme.
func (h HistoryList) Render(theme *styles.Theme) string {
	if len(h.Entries) == 0 {
		return theme.HistoryEmpty.Render("No orders resolved yet this session.")
	}

	lines := []string{theme.PanelTitle.Render("Resolved orders")}
	for _, e := range h.Entries {
		line := runewidth.FillRight(e.OrderID, 14) +
			e.Timestamp.Format("15:04:05") + "  " +
			util.IntToString(e.ItemCount) + " item(s)  " +
			runewidth.FillLeft(util.FormatGrouped(e.TotalAmount.String()), 14)
		lines = append(lines, theme.HistoryItem.Render(line))
	}
	return strings.Join(lines, "\n")
}
