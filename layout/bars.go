// ABOUTME: Lane renderer geometry: converts stacked intervals into positioned visual bars.
// ABOUTME: Build runs the full pure pipeline (bounds, stacking, grid, bars) for one entity's records.
package layout

import (
	"time"

	"github.com/redpolitica/trayectoria/timeline"
)

// Bar is one visual bar with pixel geometry derived from its row and date
// range. The embedded Placed carries labels, category, and coordinates.
type Bar struct {
	timeline.Placed
	Left   int
	Top    int
	Width  int
	Height int
}

// BuildBars computes pixel geometry for every placed interval. The width
// never shrinks below one month so short tenures remain visible.
func BuildBars(placed []timeline.Placed, cfg Config) []Bar {
	bars := make([]Bar, 0, len(placed))
	for _, p := range placed {
		left := PadLeft + p.StartMonth*cfg.MonthWidth
		width := (p.EndMonth+1)*cfg.MonthWidth - left - BarInset
		if width < cfg.MonthWidth {
			width = cfg.MonthWidth
		}
		bars = append(bars, Bar{
			Placed: p,
			Left:   left,
			Top:    LaneTop + p.Row*(cfg.BarHeight+cfg.RowGap),
			Width:  width,
			Height: cfg.BarHeight,
		})
	}
	return bars
}

// LaneHeight is the vertical extent of a lane holding rowCount rows.
func LaneHeight(rowCount int, cfg Config) int {
	return LaneTop + rowCount*(cfg.BarHeight+cfg.RowGap)
}

// Layout is the declarative result of one rendering pass: everything an
// adapter needs to draw the timeline, with no platform types involved.
type Layout struct {
	Bounds   timeline.Bounds
	Grid     Grid
	Bars     []Bar
	RowCount int
	Height   int
}

// Build runs the full pipeline for one interval set: resolve bounds, stack
// into rows, lay out the grid, and position the bars. Pure function of its
// input; called once per entity selection.
func Build(intervals []timeline.Interval, cfg Config, now time.Time) Layout {
	bounds := timeline.ResolveBounds(intervals, now)
	placed, rows := timeline.Stack(intervals, bounds.StartYear)
	return Layout{
		Bounds:   bounds,
		Grid:     BuildGrid(bounds, cfg.MonthWidth),
		Bars:     BuildBars(placed, cfg),
		RowCount: rows,
		Height:   LaneHeight(rows, cfg),
	}
}

// Empty reports whether the layout has no bars to draw, which callers
// surface as an empty-state render.
func (l Layout) Empty() bool {
	return len(l.Bars) == 0
}
