// ABOUTME: Tests for bar geometry and the full Build pipeline.
// ABOUTME: Pins the left/top/width formulas, the minimum bar width, and zoom independence of stacking.
package layout

import (
	"testing"
	"time"

	"github.com/redpolitica/trayectoria/timeline"
)

var layoutNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func placedAt(startMonth, endMonth, row int) timeline.Placed {
	return timeline.Placed{StartMonth: startMonth, EndMonth: endMonth, Row: row}
}

func TestBuildBarsGeometry(t *testing.T) {
	cfg := DefaultConfig() // month width 18, bar height 20, row gap 6

	tests := []struct {
		name      string
		placed    timeline.Placed
		wantLeft  int
		wantTop   int
		wantWidth int
	}{
		{
			name:      "first month first row",
			placed:    placedAt(0, 0, 0),
			wantLeft:  10,
			wantTop:   6,
			wantWidth: 18, // raw 1*18-10-2=6 clamps up to one month width
		},
		{
			name:      "year-long bar on second row",
			placed:    placedAt(12, 23, 1),
			wantLeft:  10 + 12*18,
			wantTop:   6 + 1*(20+6),
			wantWidth: 24*18 - (10 + 12*18) - 2,
		},
		{
			name:      "deep row",
			placed:    placedAt(3, 40, 4),
			wantLeft:  10 + 3*18,
			wantTop:   6 + 4*(20+6),
			wantWidth: 41*18 - (10 + 3*18) - 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := BuildBars([]timeline.Placed{tt.placed}, cfg)
			if len(bars) != 1 {
				t.Fatalf("bars = %d, want 1", len(bars))
			}
			b := bars[0]
			if b.Left != tt.wantLeft {
				t.Errorf("Left = %d, want %d", b.Left, tt.wantLeft)
			}
			if b.Top != tt.wantTop {
				t.Errorf("Top = %d, want %d", b.Top, tt.wantTop)
			}
			if b.Width != tt.wantWidth {
				t.Errorf("Width = %d, want %d", b.Width, tt.wantWidth)
			}
			if b.Height != cfg.BarHeight {
				t.Errorf("Height = %d, want %d", b.Height, cfg.BarHeight)
			}
		})
	}
}

func TestBuildBarsMinimumWidth(t *testing.T) {
	cfg := DefaultConfig()
	bars := BuildBars([]timeline.Placed{placedAt(0, 0, 0)}, cfg)
	if bars[0].Width < cfg.MonthWidth {
		t.Errorf("bar narrower than one month: %d < %d", bars[0].Width, cfg.MonthWidth)
	}
}

func TestLaneHeight(t *testing.T) {
	cfg := DefaultConfig()
	if got := LaneHeight(0, cfg); got != LaneTop {
		t.Errorf("LaneHeight(0) = %d, want %d", got, LaneTop)
	}
	if got := LaneHeight(3, cfg); got != LaneTop+3*(cfg.BarHeight+cfg.RowGap) {
		t.Errorf("LaneHeight(3) = %d", got)
	}
}

func buildIntervals() []timeline.Interval {
	mk := func(sy int, sm time.Month, ey int, em time.Month) timeline.Interval {
		return timeline.Interval{
			Start: time.Date(sy, sm, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(ey, em, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return []timeline.Interval{
		mk(2001, 1, 2004, 6),
		mk(2003, 1, 2006, 6),
		mk(2007, 1, 2009, 6),
	}
}

func TestBuildFullPipeline(t *testing.T) {
	lay := Build(buildIntervals(), DefaultConfig(), layoutNow)

	if lay.Bounds.StartYear != 1997 || lay.Bounds.EndYear != 2026 {
		t.Errorf("bounds = %+v, want defaults [1997, 2026]", lay.Bounds)
	}
	if len(lay.Bars) != 3 {
		t.Fatalf("bars = %d, want 3", len(lay.Bars))
	}
	if lay.RowCount != 2 {
		t.Errorf("rows = %d, want 2 (two overlapping, one clear)", lay.RowCount)
	}
	if lay.Height != LaneHeight(2, DefaultConfig()) {
		t.Errorf("height = %d", lay.Height)
	}
	if lay.Grid.TotalWidth != PadLeft+30*12*18+PadRight {
		t.Errorf("grid width = %d", lay.Grid.TotalWidth)
	}
	if lay.Empty() {
		t.Error("layout should not be empty")
	}
}

func TestBuildEmptyInput(t *testing.T) {
	lay := Build(nil, DefaultConfig(), layoutNow)

	if !lay.Empty() {
		t.Error("expected empty layout")
	}
	if lay.Bounds.StartYear != 1997 || lay.Bounds.EndYear != 2026 {
		t.Errorf("empty input should keep default bounds, got %+v", lay.Bounds)
	}
	if lay.RowCount != 0 {
		t.Errorf("rows = %d, want 0", lay.RowCount)
	}
}

func TestZoomDoesNotChangeStacking(t *testing.T) {
	ivs := buildIntervals()
	narrow := DefaultConfig()
	narrow.MonthWidth = 4
	wide := DefaultConfig()
	wide.MonthWidth = 40

	a := Build(ivs, narrow, layoutNow)
	b := Build(ivs, wide, layoutNow)

	if a.RowCount != b.RowCount {
		t.Fatalf("row count depends on zoom: %d vs %d", a.RowCount, b.RowCount)
	}
	for i := range a.Bars {
		if a.Bars[i].Row != b.Bars[i].Row {
			t.Errorf("bar %d row differs across zoom: %d vs %d", i, a.Bars[i].Row, b.Bars[i].Row)
		}
	}
}
