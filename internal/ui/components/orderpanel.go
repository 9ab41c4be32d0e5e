// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/orderline-tui/internal/model"
	"github.com/jeranaias/orderline-tui/internal/ui/styles"
	"github.com/jeranaias/orderline-tui/internal/util"
)

// =============================================================================
// ORDER DETAIL PANELS
// =============================================================================

// OrderDetail renders a verified order as labelled panels plus a
// line-item table.
type OrderDetail struct {
	Order model.Order
	Width int
}

// field is one label/value pair inside a panel.
type field struct {
	label string
	value string
}

// renderPanel renders a titled box of aligned label/value rows.
func renderPanel(theme *styles.Theme, title string, fields []field, width int) string {
	labelWidth := 0
	for _, f := range fields {
		if w := runewidth.StringWidth(f.label); w > labelWidth {
			labelWidth = w
		}
	}

	var rows []string
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = "-"
		}
		label := runewidth.FillRight(f.label, labelWidth)
		rows = append(rows, theme.FieldLabel.Render(label)+"  "+theme.FieldValue.Render(value))
	}

	content := theme.PanelTitle.Render(title) + "\n" + strings.Join(rows, "\n")
	panel := theme.PanelBox
	if width > 4 {
		panel = panel.Width(width - 2)
	}
	return panel.Render(content)
}

// Render renders the full order detail view.
func (d OrderDetail) Render(theme *styles.Theme) string {
	o := d.Order
	first := model.LineItem{}
	if len(o.Items) > 0 {
		first = o.Items[0]
	}

	statusPanel := renderPanel(theme, "Order", []field{
		{"Sales order", o.SalesOrder},
		{"Status", o.OrderStatus},
		{"Product", util.TruncateRunes(first.ProductName, 48)},
		{"Item number", first.ItemNumber},
	}, d.Width)

	financialPanel := renderPanel(theme, "Financials", []field{
		{"Quantity", util.FormatGrouped(o.TotalQuantity().String()) + " " + first.Unit},
		{"Unit price", util.FormatGrouped(first.UnitPrice.String())},
		{"Net amount", util.FormatGrouped(o.TotalNetAmount().String())},
		{"Line items", util.IntToString(o.ItemCount())},
	}, d.Width)

	deliveryPanel := renderPanel(theme, "Delivery", []field{
		{"Address", util.TruncateRunes(o.DeliveryAddress, 48)},
		{"Mode", o.DeliveryMode},
		{"Terms", o.DeliveryTerms},
		{"Delivery date", o.DeliveryDate},
		{"Shipping date", o.ShippingDate},
	}, d.Width)

	sections := []string{statusPanel, financialPanel, deliveryPanel}
	if len(o.Items) > 1 {
		sections = append(sections, d.renderItemTable(theme))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// itemColumns defines the line-item table layout.
var itemColumns = []struct {
	title string
	width int
}{
	{"Item", 10},
	{"Product", 36},
	{"Qty", 10},
	{"Unit price", 14},
	{"Net amount", 14},
}

// renderItemTable renders one row per line item, display-width aligned.
func (d OrderDetail) renderItemTable(theme *styles.Theme) string {
	var header []string
	for _, col := range itemColumns {
		header = append(header, runewidth.FillRight(col.title, col.width))
	}

	lines := []string{theme.TableHeader.Render(strings.Join(header, " "))}
	for i, item := range d.Order.Items {
		cells := []string{
			runewidth.FillRight(util.TruncateRunes(item.ItemNumber, itemColumns[0].width), itemColumns[0].width),
			runewidth.FillRight(runewidth.Truncate(item.ProductName, itemColumns[1].width, "…"), itemColumns[1].width),
			runewidth.FillLeft(util.FormatGrouped(item.QuantityOrdered.String()), itemColumns[2].width),
			runewidth.FillLeft(util.FormatGrouped(item.UnitPrice.String()), itemColumns[3].width),
			runewidth.FillLeft(util.FormatGrouped(item.NetAmount.String()), itemColumns[4].width),
		}

		style := theme.TableRow
		if i%2 == 1 {
			style = theme.TableRowAlt
		}
		lines = append(lines, style.Render(strings.Join(cells, " ")))
	}

	return strings.Join(lines, "\n")
}

// =============================================================================
// SUMMARY LINE
// =============================================================================

// SummaryLine renders the one-line verified summary shown above the
// panels.
func SummaryLine(theme *styles.Theme, o model.Order) string {
	return theme.SuccessBox.Render(
		"Order " + o.SalesOrder + " verified — " +
			util.IntToString(o.ItemCount()) + " item(s), net total " +
			util.FormatGrouped(o.TotalNetAmount().String()))
}
