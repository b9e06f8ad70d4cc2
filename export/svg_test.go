// ABOUTME: Tests for the SVG renderer.
// ABOUTME: Covers document dimensions, gridlines, bar geometry, label escaping, and category colors.
package export

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/redpolitica/trayectoria/layout"
	"github.com/redpolitica/trayectoria/timeline"
)

var exportNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func sampleIntervals() []timeline.Interval {
	mk := func(sy int, ey int, cat timeline.Category, label string) timeline.Interval {
		return timeline.Interval{
			Start:        time.Date(sy, 1, 1, 0, 0, 0, 0, time.UTC),
			End:          time.Date(ey, 12, 1, 0, 0, 0, 0, time.UTC),
			Category:     cat,
			PrimaryLabel: label,
		}
	}
	return []timeline.Interval{
		mk(2001, 2004, timeline.CategoryFederal, "Secretaria de Salud"),
		mk(2003, 2006, timeline.CategoryMunicipal, "Regidora"),
	}
}

func TestSVGDocumentShape(t *testing.T) {
	cfg := layout.DefaultConfig()
	lay := layout.Build(sampleIntervals(), cfg, exportNow)
	out := SVG(lay, cfg)

	if !strings.HasPrefix(out, `<?xml version="1.0"`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(out, fmt.Sprintf(`<svg width="%d"`, lay.Grid.TotalWidth)) {
		t.Errorf("svg width should match grid total width %d", lay.Grid.TotalWidth)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("unterminated svg document")
	}
}

func TestSVGRendersBarsAndGrid(t *testing.T) {
	cfg := layout.DefaultConfig()
	lay := layout.Build(sampleIntervals(), cfg, exportNow)
	out := SVG(lay, cfg)

	if got := strings.Count(out, "<line "); got != len(lay.Grid.Gridlines) {
		t.Errorf("gridline count = %d, want %d", got, len(lay.Grid.Gridlines))
	}
	// One background rect plus one per bar.
	if got := strings.Count(out, "<rect "); got != 1+len(lay.Bars) {
		t.Errorf("rect count = %d, want %d", got, 1+len(lay.Bars))
	}
	for _, year := range []string{">1997<", ">2026<"} {
		if !strings.Contains(out, year) {
			t.Errorf("missing year label %s", year)
		}
	}
	if !strings.Contains(out, cfg.Colors["federal"]) {
		t.Error("federal bar should use its configured color")
	}
	if !strings.Contains(out, cfg.Colors["municipal"]) {
		t.Error("municipal bar should use its configured color")
	}
}

func TestSVGEscapesLabels(t *testing.T) {
	cfg := layout.DefaultConfig()
	ivs := []timeline.Interval{{
		Start:        time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		PrimaryLabel: `Juez <de> "Distrito" & Magistrado`,
	}}
	out := SVG(layout.Build(ivs, cfg, exportNow), cfg)

	if strings.Contains(out, "<de>") {
		t.Error("label markup leaked unescaped into the document")
	}
	if !strings.Contains(out, "&lt;de&gt;") {
		t.Error("expected escaped label text")
	}
}

func TestSVGEmptyLayout(t *testing.T) {
	cfg := layout.DefaultConfig()
	lay := layout.Build(nil, cfg, exportNow)
	out := SVG(lay, cfg)

	// Grid still renders for the default window; no bar rects beyond the background.
	if got := strings.Count(out, "<rect "); got != 1 {
		t.Errorf("rect count = %d, want background only", got)
	}
}

func TestWriteSVG(t *testing.T) {
	cfg := layout.DefaultConfig()
	lay := layout.Build(sampleIntervals(), cfg, exportNow)

	var b strings.Builder
	if err := WriteSVG(&b, lay, cfg); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if b.String() != SVG(lay, cfg) {
		t.Error("WriteSVG output differs from SVG()")
	}
}
