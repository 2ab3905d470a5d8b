package tui

import (
	"fmt"

	"codeberg.org/tslocum/cview"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v3"
	"github.com/riadafridishibly/dedupscan/scanner"
)

type statRow struct {
	label string
	value func(st scanner.Stats) string
	color func(th *Theme) tcell.Color
}

func bytesOf(n int64) string {
	return humanize.Bytes(uint64(n))
}

var statRows = []statRow{
	{label: "Files seen", value: func(st scanner.Stats) string { return humanize.Comma(st.Files) }},
	{label: "Bytes seen", value: func(st scanner.Stats) string { return bytesOf(st.Bytes) }},
	{label: "Unique files", value: func(st scanner.Stats) string { return humanize.Comma(st.DistinctFiles()) }},
	{label: "Unique bytes", value: func(st scanner.Stats) string { return bytesOf(st.DistinctBytes()) }},
	{label: "  of which never hashed", value: func(st scanner.Stats) string {
		return fmt.Sprintf("%s (%s)", humanize.Comma(st.PendingFiles), bytesOf(st.PendingBytes))
	}},
	{
		label: "Duplicate files",
		value: func(st scanner.Stats) string { return humanize.Comma(st.DuplicateFiles) },
		color: func(th *Theme) tcell.Color { return th.orange },
	},
	{
		label: "Duplicate bytes",
		value: func(st scanner.Stats) string { return bytesOf(st.DuplicateBytes) },
		color: func(th *Theme) tcell.Color { return th.orange },
	},
	{label: "Dedup ratio", value: func(st scanner.Stats) string { return fmt.Sprintf("%.4f", st.Ratio()) }},
	{
		label: "Errors",
		value: func(st scanner.Stats) string { return humanize.Comma(st.Errors) },
		color: func(th *Theme) tcell.Color { return th.red },
	},
}

func (a *App) buildTable() *cview.Table {
	theme := a.currentTheme
	table := a.table
	table.Clear()

	st := a.frame.Stats
	for row, r := range statRows {
		labelCell := cview.NewTableCell(" " + r.label)
		labelCell.SetTextColor(theme.fg)
		labelCell.SetAlign(cview.AlignLeft)
		table.SetCell(row, 0, labelCell)

		valueColor := theme.yellow
		if r.color != nil {
			valueColor = r.color(&theme)
		}
		valueCell := cview.NewTableCell(fmt.Sprintf(" %s ", r.value(st)))
		valueCell.SetTextColor(valueColor)
		valueCell.SetAlign(cview.AlignRight)
		valueCell.SetExpansion(1)
		table.SetCell(row, 1, valueCell)
	}

	table.SetBorder(false)
	table.SetBorders(false)
	table.SetSelectable(false, false)
	table.SetSeparator(' ')

	return table
}
