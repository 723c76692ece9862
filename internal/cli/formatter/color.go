package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"github.com/charmbracelet/lipgloss"
)

// Slate palette for chrome. Status badges use the fixed status colors.
var (
	ColorGreen  = lipgloss.Color("#16a34a")
	ColorYellow = lipgloss.Color("#ca8a04")
	ColorRed    = lipgloss.Color("#ef4444")
	ColorBlue   = lipgloss.Color("#3b82f6")
	ColorOrange = lipgloss.Color("#f97316")
	ColorDim    = lipgloss.Color("#94a3b8")
	ColorFg     = lipgloss.Color("#e2e8f0")
	ColorHeader = lipgloss.Color("#f97316")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the badge style of a status label.
func StatusStyle(s domain.Status) lipgloss.Style {
	bg, fg := tracking.StatusColors(s)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1)
}

// StatusBadge renders a status label on its badge colors.
func StatusBadge(s domain.Status) string {
	return StatusStyle(s).Render(string(s))
}

// CriticalMark renders the critical flag, or "" for ordinary projects.
func CriticalMark(critical bool) string {
	if !critical {
		return ""
	}
	return StyleRed.Render("▲")
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
