// ABOUTME: Bubble Tea sub-model for the entity selection sidebar with a textinput filter.
// ABOUTME: Switching kinds repopulates the sorted list and resets the selection placeholder.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/redpolitica/trayectoria/feed"
)

// SidebarModel presents the selectable entities of one kind.
type SidebarModel struct {
	payload feed.Payload
	kind    feed.Kind
	entries []feed.Entity // sorted by display name, filter applied

	filter    textinput.Model
	filtering bool

	cursor   int
	selected string // entity id, empty for the placeholder state
	width    int
	height   int
	focused  bool
}

// NewSidebarModel creates a sidebar over the given payload, starting on
// subjects with no selection.
func NewSidebarModel(p feed.Payload) SidebarModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"

	m := SidebarModel{
		payload: p,
		filter:  ti,
	}
	m.SetKind(feed.KindSubject)
	return m
}

// SetKind switches the entity kind, repopulates the sorted list, and
// resets both selection and filter.
func (m *SidebarModel) SetKind(kind feed.Kind) {
	m.kind = kind
	m.selected = ""
	m.cursor = 0
	m.filtering = false
	m.filter.SetValue("")
	m.filter.Blur()
	m.repopulate()
}

// Kind returns the active entity kind.
func (m SidebarModel) Kind() feed.Kind {
	return m.kind
}

// repopulate rebuilds entries from the payload, sorted by display name
// with the current filter applied.
func (m *SidebarModel) repopulate() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.entries = m.entries[:0]
	for _, e := range m.payload.Entities(m.kind) {
		if needle != "" && !strings.Contains(strings.ToLower(e.DisplayName), needle) {
			continue
		}
		m.entries = append(m.entries, e)
	}
	sort.SliceStable(m.entries, func(i, j int) bool {
		return strings.ToLower(m.entries[i].DisplayName) < strings.ToLower(m.entries[j].DisplayName)
	})
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Entries returns the current visible list.
func (m SidebarModel) Entries() []feed.Entity {
	return m.entries
}

// Filtering reports whether keystrokes should currently go to the filter.
func (m SidebarModel) Filtering() bool {
	return m.filtering
}

// StartFilter activates the filter input.
func (m *SidebarModel) StartFilter() {
	m.filtering = true
	m.filter.Focus()
}

// StopFilter deactivates the filter input. When clear is set the filter
// text is discarded and the full list restored.
func (m *SidebarModel) StopFilter(clear bool) {
	m.filtering = false
	m.filter.Blur()
	if clear {
		m.filter.SetValue("")
	}
	m.repopulate()
}

// UpdateFilter forwards a key to the textinput and refreshes the list.
func (m *SidebarModel) UpdateFilter(msg tea.KeyMsg) {
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	_ = cmd // cursor blink commands are ignored in sub-model updates
	m.repopulate()
}

// MoveCursor shifts the list cursor by delta, clamped.
func (m *SidebarModel) MoveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
}

// Select marks the entity under the cursor as selected and returns it.
func (m *SidebarModel) Select() (feed.Entity, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return feed.Entity{}, false
	}
	e := m.entries[m.cursor]
	m.selected = e.ID
	return e, true
}

// Selected returns the selected entity, if any.
func (m SidebarModel) Selected() (feed.Entity, bool) {
	if m.selected == "" {
		return feed.Entity{}, false
	}
	return m.payload.FindEntity(m.kind, m.selected)
}

// SetSize sets the outer sidebar dimensions, border included.
func (m *SidebarModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused toggles the focus highlight on the border.
func (m *SidebarModel) SetFocused(focused bool) {
	m.focused = focused
}

// kindTitle maps the kind to its list heading.
func kindTitle(kind feed.Kind) string {
	if kind == feed.KindContainer {
		return "INSTITUTIONS"
	}
	return "SUBJECTS"
}

// View renders the bordered sidebar: heading, filter line, entity list.
func (m SidebarModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%d)", kindTitle(m.kind), len(m.entries))))
	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	visible := m.height - 4 // border, heading, filter
	if visible < 1 {
		visible = 1
	}
	top := 0
	if m.cursor >= visible {
		top = m.cursor - visible + 1
	}
	for i := top; i < len(m.entries) && i < top+visible; i++ {
		e := m.entries[i]
		line := e.DisplayName
		switch {
		case i == m.cursor && m.focused:
			line = CursorStyle.Render(line)
		case e.ID == m.selected:
			line = SelectedStyle.Render(line)
		default:
			line = DimStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.entries) == 0 {
		b.WriteString(EmptyStyle.Render("no entities loaded"))
	}

	style := BorderStyle
	if m.focused {
		style = FocusedBorderStyle
	}
	if m.width > 0 {
		style = style.Width(m.width - 2)
	}
	if m.height > 0 {
		style = style.Height(m.height - 2)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}
