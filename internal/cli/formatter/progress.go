package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
	markerBlock = "│"
)

// RenderProgress renders reported progress (0-100) as a bar like
// [████░░░░]  45%. When predicted is within range and ahead of the reported
// value, a marker shows where the plan expects the project to be.
func RenderProgress(progress, predicted, width int) string {
	progress = clampPct(progress)
	if width < 2 {
		width = 2
	}

	filled := progress * width / 100
	cells := make([]string, width)
	for i := range cells {
		if i < filled {
			cells[i] = filledBlock
		} else {
			cells[i] = emptyBlock
		}
	}

	style := StyleGreen
	if predicted-progress > 20 {
		style = StyleRed
	} else if predicted > progress {
		style = StyleYellow
	}
	bar := style.Render(strings.Join(cells[:filled], ""))

	rest := cells[filled:]
	if predicted > progress && predicted <= 100 {
		at := predicted*width/100 - filled
		if at >= 0 && at < len(rest) {
			rest[at] = markerBlock
		}
	}
	bar += StyleDim.Render(strings.Join(rest, ""))

	return fmt.Sprintf("[%s] %3d%%", bar, progress)
}

func clampPct(n int) int {
	return min(max(n, 0), 100)
}
