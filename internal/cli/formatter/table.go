package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable aligns rows under headers. Widths are measured on visible
// text so styled cells line up. Cells wider than maxCol are cut with an
// ellipsis; maxCol <= 0 disables the cut.
func RenderTable(headers []string, rows [][]string, maxCol int) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(clip(row[i], maxCol)))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = clip(cells[i], maxCol)
			}
			if style != nil {
				cell = style(cell)
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell))+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	seps := make([]string, cols)
	for i, w := range widths {
		seps[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(seps, nil)

	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}

// clip shortens plain cells only; styled cells carry escape codes that a
// rune cut would corrupt.
func clip(s string, maxCol int) string {
	if maxCol <= 0 || lipgloss.Width(s) <= maxCol || strings.ContainsRune(s, '\x1b') {
		return s
	}
	r := []rune(s)
	if maxCol <= 1 || len(r) <= maxCol {
		return s
	}
	return string(r[:maxCol-1]) + "…"
}
