package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableGap = 2

// RenderTable renders an aligned table with styled headers and a separator
// line. Column widths are the maximum visible width across header and rows,
// measured with lipgloss so ANSI sequences don't skew padding.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		writeCell(&b, StyleHeader.Render(h), lipgloss.Width(h), widths[i], i == len(headers)-1)
	}
	b.WriteString("\n")
	for i, w := range widths {
		writeCell(&b, StyleDim.Render(strings.Repeat("─", w)), w, w, i == len(widths)-1)
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(&b, cell, lipgloss.Width(cell), w, i == len(widths)-1)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeCell(b *strings.Builder, cell string, visible, width int, last bool) {
	b.WriteString(cell)
	if last {
		return
	}
	pad := width - visible
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad+tableGap))
}
