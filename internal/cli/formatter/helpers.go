package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays describes t relative to now in whole calendar days.
func RelativeDays(t, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// DueStyled renders an estimated completion date with urgency coloring:
// red once past, yellow within three days.
func DueStyled(due *time.Time, now time.Time, loc *time.Location) string {
	if due == nil {
		return Dim("-")
	}
	text := due.In(loc).Format("02/01/06")
	switch {
	case now.After(*due):
		return StyleRed.Render(text)
	case due.Sub(now) <= 72*time.Hour:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// JoinOrDash joins names with ", " or returns a dimmed dash.
func JoinOrDash(names []string) string {
	if len(names) == 0 {
		return Dim("-")
	}
	return strings.Join(names, ", ")
}

// OrDash returns s, or a dimmed dash when blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("-")
	}
	return s
}
