// ABOUTME: Top-level Bubble Tea AppModel orchestrating sidebar, lane panel, tooltip, and status bar.
// ABOUTME: Implements tea.Model (Init, Update, View) and runs the selection-to-stacking pipeline.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/redpolitica/trayectoria/feed"
	"github.com/redpolitica/trayectoria/layout"
	"github.com/redpolitica/trayectoria/timeline"
)

// FocusTarget indicates which panel currently has keyboard focus.
type FocusTarget int

const (
	FocusSidebar FocusTarget = iota
	FocusLane
)

// Tooltip placement margins in cells.
const (
	tooltipGapCells = 1
	tooltipPadCells = 1
)

// Auto-scroll after selection: bias toward recent content by jumping about
// ten years into the range, minus a small left margin.
const (
	autoScrollMonths       = 10 * 12
	autoScrollMarginMonths = 6
)

// AppModel is the top-level Bubble Tea model that composes all sub-panels
// and routes messages between them.
type AppModel struct {
	sidebar SidebarModel
	lane    LanePanelModel
	tooltip TooltipModel
	status  StatusBarModel

	now func() time.Time // injectable clock for tests

	focus  FocusTarget
	width  int
	height int
}

// NewAppModel creates an AppModel over an already-decoded payload.
func NewAppModel(p feed.Payload) AppModel {
	m := AppModel{
		sidebar: NewSidebarModel(p),
		lane:    NewLanePanelModel(),
		tooltip: NewTooltipModel(),
		status:  NewStatusBarModel(),
		now:     time.Now,
		focus:   FocusSidebar,
	}
	m.sidebar.SetFocused(true)
	return m
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Routes incoming messages to the appropriate
// sub-panel and returns the updated model with any follow-up commands.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case RepositionMsg:
		return m.handleReposition()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleWindowSize updates dimensions on all panels. A resize moves every
// anchor box, so a reposition is scheduled when a tooltip is open.
func (m AppModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.applySizes()
	return m, m.tooltip.ScheduleReposition()
}

// applySizes distributes the window between the panels.
func (m *AppModel) applySizes() {
	statusBarHeight := 1
	panelHeight := m.height - statusBarHeight
	if panelHeight < 3 {
		panelHeight = 3
	}
	sidebarWidth := m.width * 30 / 100
	if sidebarWidth < 16 {
		sidebarWidth = 16
	}
	laneWidth := m.width - sidebarWidth
	if laneWidth < 20 {
		laneWidth = 20
	}
	m.sidebar.SetSize(sidebarWidth, panelHeight)
	m.lane.SetSize(laneWidth, panelHeight)
	m.status.SetWidth(m.width)
}

// handleReposition recomputes the tooltip position against the anchor's
// current viewport box. The anchor is re-resolved here because scrolls and
// zooms since the schedule may have moved or hidden it.
func (m AppModel) handleReposition() (tea.Model, tea.Cmd) {
	if !m.tooltip.Visible() {
		m.tooltip.Reposition(layout.Rect{}, layout.Rect{}, tooltipGapCells, tooltipPadCells)
		return m, nil
	}
	anchorBox := m.lane.BarBox(m.tooltip.Anchor())
	m.tooltip.Reposition(anchorBox, m.lane.PanelBox(), tooltipGapCells, tooltipPadCells)
	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the filter is active all keys go to the textinput.
	if m.sidebar.Filtering() {
		switch msg.Type {
		case tea.KeyEnter:
			m.sidebar.StopFilter(false)
		case tea.KeyEsc:
			m.sidebar.StopFilter(true)
		default:
			m.sidebar.UpdateFilter(msg)
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == FocusSidebar {
			m.focus = FocusLane
		} else {
			m.focus = FocusSidebar
		}
		m.sidebar.SetFocused(m.focus == FocusSidebar)
		m.lane.SetFocused(m.focus == FocusLane)
		return m, nil
	case "esc":
		m.tooltip.Dismiss()
		return m, nil
	case "s":
		return m.switchKind(feed.KindSubject)
	case "c":
		return m.switchKind(feed.KindContainer)
	case "t":
		m.lane.CenterOn(timeline.MonthIndex(m.now(), m.lane.Bounds().StartYear))
		return m, m.tooltip.ScheduleReposition()
	case "h", "pgup":
		m.lane.ScrollBy(-12)
		return m, m.tooltip.ScheduleReposition()
	case "l", "pgdown":
		m.lane.ScrollBy(12)
		return m, m.tooltip.ScheduleReposition()
	case "+", "=":
		m.lane.Zoom(1)
		m.status.SetZoom(m.lane.CellsPerMonth())
		return m, m.tooltip.ScheduleReposition()
	case "-":
		m.lane.Zoom(-1)
		m.status.SetZoom(m.lane.CellsPerMonth())
		return m, m.tooltip.ScheduleReposition()
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleLaneKey(msg)
}

func (m AppModel) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.sidebar.MoveCursor(-1)
	case "down", "j":
		m.sidebar.MoveCursor(1)
	case "/":
		m.sidebar.StartFilter()
	case "enter":
		if e, ok := m.sidebar.Select(); ok {
			m.selectEntity(e)
		}
	}
	return m, nil
}

func (m AppModel) handleLaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left":
		if bar, ok := m.lane.MoveCursor(-1); ok {
			m.tooltip.Request(bar, false)
			return m, m.tooltip.ScheduleReposition()
		}
	case "right":
		if bar, ok := m.lane.MoveCursor(1); ok {
			m.tooltip.Request(bar, false)
			return m, m.tooltip.ScheduleReposition()
		}
	case "enter":
		if bar, ok := m.lane.FocusedBar(); ok {
			m.tooltip.Request(bar, true)
			return m, m.tooltip.ScheduleReposition()
		}
	}
	return m, nil
}

// switchKind repopulates the sidebar and clears every per-selection state:
// lane content, tooltip anchor, status line.
func (m AppModel) switchKind(kind feed.Kind) (tea.Model, tea.Cmd) {
	if kind == m.sidebar.Kind() {
		return m, nil
	}
	m.sidebar.SetKind(kind)
	m.lane.SetEmpty("select a subject or institution")
	m.tooltip.Dismiss()
	m.status.Clear()
	m.focus = FocusSidebar
	m.sidebar.SetFocused(true)
	m.lane.SetFocused(false)
	return m, nil
}

// selectEntity runs the full pipeline for a fresh selection: interval
// extraction, bounds resolution, stacking, then viewport reset. The old
// tooltip anchor belongs to the discarded render and is always dismissed.
func (m *AppModel) selectEntity(e feed.Entity) {
	mode := timeline.ModeSubject
	if m.sidebar.Kind() == feed.KindContainer {
		mode = timeline.ModeContainer
	}

	intervals := timeline.FromEntity(e, mode)
	bounds := timeline.ResolveBounds(intervals, m.now())
	placed, rowCount := timeline.Stack(intervals, bounds.StartYear)

	m.tooltip.Dismiss()

	if len(placed) == 0 {
		m.lane.SetEmpty(fmt.Sprintf("no dated appointments for %s", e.DisplayName))
		m.status.Clear()
		return
	}

	m.lane.SetTimeline(placed, rowCount, bounds)
	m.lane.ScrollTo(autoScrollMonths - autoScrollMarginMonths)
	m.status.SetSelection(e.DisplayName, bounds, len(placed), rowCount)
	m.status.SetZoom(m.lane.CellsPerMonth())
}

// View implements tea.Model. Renders sidebar and lane side by side with the
// status bar underneath, then splices the tooltip overlay on top.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 8 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 40x8.", m.width, m.height)
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.lane.View())

	var b strings.Builder
	b.WriteString(panels)
	b.WriteString("\n")
	b.WriteString(m.status.View())

	view := b.String()
	if m.tooltip.Visible() {
		view = m.spliceTooltip(view)
	}
	return view
}

// spliceTooltip merges the tooltip box over the composed view at the
// clamped position, converting the lane-local point to screen lines.
func (m AppModel) spliceTooltip(view string) string {
	overlay := m.tooltip.View()
	if overlay == "" {
		return view
	}

	sidebarWidth := m.width * 30 / 100
	if sidebarWidth < 16 {
		sidebarWidth = 16
	}
	pos := m.tooltip.Pos()
	// +1 for the lane border on each axis
	screenX := sidebarWidth + 1 + pos.X
	screenY := 1 + pos.Y

	mainLines := strings.Split(view, "\n")
	for i, overlayLine := range strings.Split(overlay, "\n") {
		target := screenY + i
		if target < 0 || target >= len(mainLines) {
			continue
		}
		mainLines[target] = strings.Repeat(" ", screenX) + overlayLine
	}
	return strings.Join(mainLines, "\n")
}
