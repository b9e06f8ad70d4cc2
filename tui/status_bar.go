// ABOUTME: Implements a single-line status bar for the bottom of the TUI.
// ABOUTME: Displays the selected entity, resolved year range, stacking summary, and zoom level.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/redpolitica/trayectoria/timeline"
)

// StatusBarModel summarizes the current selection in a single line.
type StatusBarModel struct {
	entityName string
	bounds     timeline.Bounds
	barCount   int
	rowCount   int
	zoom       int
	width      int
}

// NewStatusBarModel creates an empty status bar.
func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{zoom: DefaultCellsPerMonth}
}

// SetSelection records the active entity and its stacking result.
func (m *StatusBarModel) SetSelection(name string, b timeline.Bounds, barCount, rowCount int) {
	m.entityName = name
	m.bounds = b
	m.barCount = barCount
	m.rowCount = rowCount
}

// Clear resets the bar to the no-selection state.
func (m *StatusBarModel) Clear() {
	m.entityName = ""
	m.bounds = timeline.Bounds{}
	m.barCount = 0
	m.rowCount = 0
}

// SetZoom records the lane panel's cells-per-month density.
func (m *StatusBarModel) SetZoom(cellsPerMonth int) {
	m.zoom = cellsPerMonth
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	var content string
	if m.entityName == "" {
		content = "No selection | enter to select, s/c to switch kind, q to quit"
	} else {
		content = fmt.Sprintf("%s | %d–%d | %d tenures in %d rows | zoom x%d | t today, +/- zoom, q quit",
			m.entityName, m.bounds.StartYear, m.bounds.EndYear, m.barCount, m.rowCount, m.zoom)
	}

	style := StatusBarStyle.Width(m.width)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
