// ABOUTME: Defines lipgloss style constants for the TUI panels, status bar, and tooltip overlay.
// ABOUTME: Provides StyleForCategory to map appointment categories to their bar colors.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/redpolitica/trayectoria/timeline"
)

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("170"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Category colors
	FederalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	StateStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	MunicipalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	PartisanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	OtherStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Focused bar highlight
	FocusedBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	// Year axis and gridlines
	AxisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Sidebar list
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("62"))
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// Tooltip overlay
	TooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	// Empty-state hint
	EmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// StyleForCategory returns the bar style for an appointment category.
func StyleForCategory(c timeline.Category) lipgloss.Style {
	switch c {
	case timeline.CategoryFederal:
		return FederalStyle
	case timeline.CategoryState:
		return StateStyle
	case timeline.CategoryMunicipal:
		return MunicipalStyle
	case timeline.CategoryPartisan:
		return PartisanStyle
	default:
		return OtherStyle
	}
}
