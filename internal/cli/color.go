package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB000"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	textStyle    = lipgloss.NewStyle()

	// money colours follow the dashboard: revenue green, expense red
	revenueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }
func Text(text string) string    { return textStyle.Render(text) }
func Revenue(text string) string { return revenueStyle.Render(text) }
func Expense(text string) string { return expenseStyle.Render(text) }

// Signed picks the money colour by sign: gains green, losses red, zero plain.
func Signed(d decimal.Decimal) func(string) string {
	switch d.Sign() {
	case 1:
		return Revenue
	case -1:
		return Expense
	}
	return Text
}
