// ABOUTME: Tooltip overlay state machine: hidden or shown with exactly one anchored bar.
// ABOUTME: Reposition requests are coalesced into a single pending RepositionMsg per frame.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/redpolitica/trayectoria/layout"
	"github.com/redpolitica/trayectoria/timeline"
)

// anchorKey identifies a placed bar within one render pass. Row and start
// month uniquely name a bar because no two bars on a row share a start.
type anchorKey struct {
	Row        int
	StartMonth int
}

func keyFor(p timeline.Placed) anchorKey {
	return anchorKey{Row: p.Row, StartMonth: p.StartMonth}
}

// TooltipModel owns the one tooltip of the whole UI. The anchor is a
// non-owning copy of the placed bar; a full re-render must call Dismiss
// before the old anchor can go stale.
type TooltipModel struct {
	anchor  timeline.Placed
	key     anchorKey
	visible bool
	pending bool // one reposition command in flight
	pos     layout.Point
}

// NewTooltipModel creates a hidden TooltipModel.
func NewTooltipModel() TooltipModel {
	return TooltipModel{}
}

// Visible reports whether the tooltip is shown.
func (m TooltipModel) Visible() bool {
	return m.visible
}

// Anchor returns the currently anchored bar. Only meaningful while visible.
func (m TooltipModel) Anchor() timeline.Placed {
	return m.anchor
}

// Pos returns the last computed placement.
func (m TooltipModel) Pos() layout.Point {
	return m.pos
}

// Request is the single entry point for hover, focus, and click activation.
// Requesting a new bar shows or re-anchors the tooltip. Requesting the bar
// that is already anchored closes it only on the click path; focus moves
// back onto an open anchor leave it open.
func (m *TooltipModel) Request(bar timeline.Placed, viaClick bool) {
	k := keyFor(bar)
	if m.visible && m.key == k {
		if viaClick {
			m.hide()
		}
		return
	}
	m.anchor = bar
	m.key = k
	m.visible = true
}

// Dismiss hides the tooltip from any state. Covers Escape, outside clicks,
// and full re-renders that invalidate the anchor.
func (m *TooltipModel) Dismiss() {
	m.hide()
}

func (m *TooltipModel) hide() {
	m.visible = false
	m.pending = false
	m.anchor = timeline.Placed{}
	m.key = anchorKey{}
}

// ScheduleReposition returns a command emitting one RepositionMsg, or nil
// when the tooltip is hidden or a reposition is already pending.
func (m *TooltipModel) ScheduleReposition() tea.Cmd {
	if !m.visible || m.pending {
		return nil
	}
	m.pending = true
	return func() tea.Msg { return RepositionMsg{} }
}

// Reposition handles a delivered RepositionMsg. The caller resolves the
// anchor's current box; the anchor copy here is only the cancellation
// token. An anchor that no longer intersects the panel force-hides instead
// of rendering off-panel.
func (m *TooltipModel) Reposition(anchorBox, panel layout.Rect, gap, pad int) {
	m.pending = false
	if !m.visible {
		return
	}
	if !anchorBox.Intersects(panel) {
		m.hide()
		return
	}
	w, h := m.size()
	m.pos = layout.PlaceTooltip(anchorBox, w, h, panel, gap, pad)
}

// lines builds the unstyled tooltip content.
func (m TooltipModel) lines() []string {
	a := m.anchor
	lines := []string{a.PrimaryLabel}
	if a.SecondaryLabel != "" {
		lines = append(lines, a.SecondaryLabel)
	}
	lines = append(lines, fmt.Sprintf("%s  %s – %s",
		a.Category.String(), a.Start.Format("2006-01"), a.End.Format("2006-01")))
	if len(a.Tags) > 0 {
		lines = append(lines, "#"+strings.Join(a.Tags, " #"))
	}
	return lines
}

// size returns the rendered overlay dimensions in cells, border included.
func (m TooltipModel) size() (w, h int) {
	widest := 0
	lines := m.lines()
	for _, l := range lines {
		if n := len([]rune(l)); n > widest {
			widest = n
		}
	}
	// double border plus one cell horizontal padding each side
	return widest + 4, len(lines) + 2
}

// View renders the tooltip box. Returns an empty string while hidden.
func (m TooltipModel) View() string {
	if !m.visible {
		return ""
	}
	return TooltipStyle.Render(strings.Join(m.lines(), "\n"))
}
