// ABOUTME: Bubble Tea sub-model rendering stacked tenure bars over a scrollable year axis.
// ABOUTME: Owns the horizontal viewport (month offset and cells-per-month zoom) and bar focus.
package tui

import (
	"fmt"
	"strings"

	"github.com/redpolitica/trayectoria/layout"
	"github.com/redpolitica/trayectoria/timeline"
)

const (
	// Zoom limits in cells per month.
	MinCellsPerMonth     = 1
	MaxCellsPerMonth     = 6
	DefaultCellsPerMonth = 2
)

// LanePanelModel displays the stacked timeline for the selected entity.
type LanePanelModel struct {
	bounds   timeline.Bounds
	placed   []timeline.Placed
	rowCount int

	cellsPerMonth int
	xOffset       int // leftmost visible month index
	cursor        int // focused bar index into placed, -1 when none

	emptyReason string
	width       int
	height      int
	focused     bool
}

// NewLanePanelModel creates an empty lane panel at the default zoom.
func NewLanePanelModel() LanePanelModel {
	return LanePanelModel{
		cellsPerMonth: DefaultCellsPerMonth,
		cursor:        -1,
		emptyReason:   "select a subject or institution",
	}
}

// SetTimeline replaces the panel's content with a fresh stacking result.
// Scroll position and bar focus reset; zoom is preserved.
func (m *LanePanelModel) SetTimeline(placed []timeline.Placed, rowCount int, b timeline.Bounds) {
	m.placed = placed
	m.rowCount = rowCount
	m.bounds = b
	m.xOffset = 0
	m.cursor = -1
	m.emptyReason = ""
}

// SetEmpty clears the panel content and records the reason to display.
func (m *LanePanelModel) SetEmpty(reason string) {
	m.placed = nil
	m.rowCount = 0
	m.cursor = -1
	m.emptyReason = reason
}

// SetSize sets the outer panel dimensions, border included.
func (m *LanePanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampOffset()
}

// SetFocused toggles the focus highlight on the border.
func (m *LanePanelModel) SetFocused(focused bool) {
	m.focused = focused
}

// Bounds returns the resolved year range currently displayed.
func (m LanePanelModel) Bounds() timeline.Bounds {
	return m.bounds
}

// BarCount returns the number of placed bars.
func (m LanePanelModel) BarCount() int {
	return len(m.placed)
}

// RowCount returns the number of stacked rows.
func (m LanePanelModel) RowCount() int {
	return m.rowCount
}

// CellsPerMonth returns the current zoom level.
func (m LanePanelModel) CellsPerMonth() int {
	return m.cellsPerMonth
}

// innerWidth is the drawable width inside the border.
func (m LanePanelModel) innerWidth() int {
	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

// visibleMonths is how many whole months fit in the viewport.
func (m LanePanelModel) visibleMonths() int {
	n := m.innerWidth() / m.cellsPerMonth
	if n < 1 {
		n = 1
	}
	return n
}

// ScrollBy moves the viewport by delta months, clamped to the bounds.
func (m *LanePanelModel) ScrollBy(delta int) {
	m.xOffset += delta
	m.clampOffset()
}

// ScrollTo places the given month index at the left edge, clamped.
func (m *LanePanelModel) ScrollTo(monthIndex int) {
	m.xOffset = monthIndex
	m.clampOffset()
}

// CenterOn scrolls so the given month index sits mid-viewport.
func (m *LanePanelModel) CenterOn(monthIndex int) {
	m.ScrollTo(monthIndex - m.visibleMonths()/2)
}

func (m *LanePanelModel) clampOffset() {
	max := m.bounds.Months() - m.visibleMonths()
	if max < 0 {
		max = 0
	}
	if m.xOffset > max {
		m.xOffset = max
	}
	if m.xOffset < 0 {
		m.xOffset = 0
	}
}

// Zoom adjusts cells per month by delta within the zoom limits. Zoom never
// re-runs stacking; only the viewport density changes.
func (m *LanePanelModel) Zoom(delta int) {
	m.cellsPerMonth += delta
	if m.cellsPerMonth < MinCellsPerMonth {
		m.cellsPerMonth = MinCellsPerMonth
	}
	if m.cellsPerMonth > MaxCellsPerMonth {
		m.cellsPerMonth = MaxCellsPerMonth
	}
	m.clampOffset()
}

// MoveCursor shifts bar focus by delta and returns the newly focused bar.
// Bars are visited in stacking order (start month, then row).
func (m *LanePanelModel) MoveCursor(delta int) (timeline.Placed, bool) {
	if len(m.placed) == 0 {
		return timeline.Placed{}, false
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.placed) {
		m.cursor = len(m.placed) - 1
	}
	return m.placed[m.cursor], true
}

// FocusedBar returns the bar under the cursor, if any.
func (m LanePanelModel) FocusedBar() (timeline.Placed, bool) {
	if m.cursor < 0 || m.cursor >= len(m.placed) {
		return timeline.Placed{}, false
	}
	return m.placed[m.cursor], true
}

// PanelBox returns the panel interior as a cell-space rectangle with the
// origin at the top-left drawable cell.
func (m LanePanelModel) PanelBox() layout.Rect {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return layout.Rect{X: 0, Y: 0, W: m.innerWidth(), H: h}
}

// BarBox returns the bar's current viewport rectangle in the same cell
// space as PanelBox. The box moves with scroll and zoom, so callers must
// resolve it at reposition time rather than caching it.
func (m LanePanelModel) BarBox(p timeline.Placed) layout.Rect {
	left := (p.StartMonth - m.xOffset) * m.cellsPerMonth
	right := (p.EndMonth - m.xOffset + 1) * m.cellsPerMonth
	if right <= left {
		right = left + 1
	}
	// row zero sits just under the year axis line
	return layout.Rect{X: left, Y: 1 + p.Row, W: right - left, H: 1}
}

// View renders the bordered lane panel: year axis, one line per row.
func (m LanePanelModel) View() string {
	style := BorderStyle
	if m.focused {
		style = FocusedBorderStyle
	}
	if m.width > 0 {
		style = style.Width(m.innerWidth())
	}
	if m.height > 0 {
		style = style.Height(m.height - 2)
	}

	if len(m.placed) == 0 {
		return style.Render(EmptyStyle.Render(m.emptyReason))
	}

	var b strings.Builder
	b.WriteString(m.renderAxis())
	for row := 0; row < m.rowCount; row++ {
		b.WriteString("\n")
		b.WriteString(m.renderRow(row))
	}
	return style.Render(b.String())
}

// renderAxis draws year numbers at each visible January boundary.
func (m LanePanelModel) renderAxis() string {
	width := m.innerWidth()
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}
	for month := m.xOffset; month < m.bounds.Months(); month++ {
		if month%12 != 0 {
			continue
		}
		x := (month - m.xOffset) * m.cellsPerMonth
		if x >= width {
			break
		}
		label := fmt.Sprintf("%d", m.bounds.StartYear+month/12)
		for i, r := range label {
			if x+i < width {
				cells[x+i] = r
			}
		}
	}
	return AxisStyle.Render(string(cells))
}

// renderRow draws every bar assigned to the given row, clipped to the
// viewport. Bars are solid block runs colored by category; the focused bar
// renders in the highlight style.
func (m LanePanelModel) renderRow(row int) string {
	width := m.innerWidth()
	type cell struct {
		set     bool
		focused bool
		cat     timeline.Category
	}
	cells := make([]cell, width)

	for i, p := range m.placed {
		if p.Row != row {
			continue
		}
		box := m.BarBox(p)
		for x := box.X; x < box.X+box.W; x++ {
			if x < 0 || x >= width {
				continue
			}
			cells[x] = cell{set: true, focused: i == m.cursor, cat: p.Category}
		}
	}

	// coalesce equal-styled runs so lipgloss styling stays cheap
	var b strings.Builder
	run := func(start, end int, c cell) {
		if start >= end {
			return
		}
		if !c.set {
			b.WriteString(strings.Repeat(" ", end-start))
			return
		}
		text := strings.Repeat("█", end-start)
		if c.focused {
			b.WriteString(FocusedBarStyle.Render(text))
			return
		}
		b.WriteString(StyleForCategory(c.cat).Render(text))
	}
	start := 0
	for x := 1; x <= width; x++ {
		if x == width || cells[x] != cells[start] {
			run(start, x, cells[start])
			start = x
		}
	}
	return b.String()
}
