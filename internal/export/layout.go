package export

import (
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	maxColumnWidth = 60
	columnPadding  = 5
	lineHeightPt   = 15
)

// ColumnWidths returns one width per header in character units:
// min(60, longest of header and cells + 5).
func ColumnWidths(rows []Row) []int {
	widths := make([]int, len(Headers))
	for i, h := range Headers {
		longest := utf8.RuneCountInString(h)
		for _, r := range rows {
			if i < len(r) {
				longest = max(longest, utf8.RuneCountInString(r[i]))
			}
		}
		widths[i] = min(maxColumnWidth, longest+columnPadding)
	}
	return widths
}

// RowHeights returns a height in points per row. Rows whose multiline cells
// span more than one line get 15pt per line; others get 0, meaning the
// sheet default.
func RowHeights(rows []Row) []float64 {
	heights := make([]float64, len(rows))
	for i, r := range rows {
		lines := maxLines(r)
		if lines > 1 {
			heights[i] = float64(lineHeightPt * lines)
		}
	}
	return heights
}

func maxLines(r Row) int {
	most := 1
	for _, col := range multilineColumns {
		idx := slices.Index(Headers, col)
		if idx < 0 || idx >= len(r) {
			continue
		}
		most = max(most, strings.Count(r[idx], "\n")+1)
	}
	return most
}
