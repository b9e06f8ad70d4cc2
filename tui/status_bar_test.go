// ABOUTME: Tests for the StatusBarModel single-line summary rendering.
// ABOUTME: Covers the no-selection hint and the populated selection summary.
package tui

import (
	"strings"
	"testing"

	"github.com/redpolitica/trayectoria/timeline"
)

func TestStatusBarNoSelection(t *testing.T) {
	m := NewStatusBarModel()
	m.SetWidth(80)

	if !strings.Contains(m.View(), "No selection") {
		t.Errorf("view = %q", m.View())
	}
}

func TestStatusBarSelectionSummary(t *testing.T) {
	m := NewStatusBarModel()
	m.SetWidth(120)
	m.SetSelection("Ana Torres", timeline.Bounds{StartYear: 1997, EndYear: 2026}, 12, 3)
	m.SetZoom(4)

	view := m.View()
	for _, want := range []string{"Ana Torres", "1997", "2026", "12 tenures in 3 rows", "zoom x4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q: %q", want, view)
		}
	}
}

func TestStatusBarClear(t *testing.T) {
	m := NewStatusBarModel()
	m.SetWidth(80)
	m.SetSelection("Ana Torres", timeline.Bounds{StartYear: 1997, EndYear: 2026}, 2, 1)
	m.Clear()

	if !strings.Contains(m.View(), "No selection") {
		t.Errorf("view after clear = %q", m.View())
	}
}
