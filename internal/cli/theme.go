package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// canteiroHuhTheme styles huh forms with the slate chrome palette. Blurred
// fields fade to the dim color.
func canteiroHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	accent, dim, text := fg(formatter.ColorHeader), fg(formatter.ColorDim), fg(formatter.ColorFg)

	focused := &t.Focused
	focused.Title = accent.Bold(true)
	focused.Description = dim
	focused.ErrorMessage = fg(formatter.ColorRed)
	focused.SelectSelector = accent
	focused.SelectedOption = fg(formatter.ColorGreen)
	focused.UnselectedOption = text
	focused.TextInput.Cursor = accent
	focused.TextInput.Prompt = accent
	focused.TextInput.Text = text
	focused.TextInput.Placeholder = dim

	blurred := &t.Blurred
	blurred.Title = dim
	blurred.SelectSelector = dim
	blurred.SelectedOption = dim
	blurred.UnselectedOption = dim
	blurred.TextInput.Prompt = dim
	blurred.TextInput.Text = dim

	return t
}

// validateOptionalDate accepts empty input or a YYYY-MM-DD day.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
