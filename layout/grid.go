// ABOUTME: Maps a resolved year range and month granularity onto the horizontal pixel axis.
// ABOUTME: Emits one gridline per month, year boundaries every 12th line, and offset year labels.
package layout

import "github.com/redpolitica/trayectoria/timeline"

// yearLabelOffset shifts year labels right of their boundary gridline.
const yearLabelOffset = 4

// Gridline is one vertical line of the grid. Every 12th line is a year
// boundary.
type Gridline struct {
	X            int
	YearBoundary bool
}

// YearLabel is a year caption anchored near its boundary gridline.
type YearLabel struct {
	X    int
	Year int
}

// Grid is the horizontal coordinate system for one rendering pass.
type Grid struct {
	TotalWidth int
	Months     int
	MonthWidth int
	Gridlines  []Gridline
	YearLabels []YearLabel
}

// BuildGrid lays out the horizontal axis for the given bounds at the given
// month width. Total width is PadLeft + months*monthWidth + PadRight.
func BuildGrid(b timeline.Bounds, monthWidth int) Grid {
	months := b.Months()
	g := Grid{
		TotalWidth: PadLeft + months*monthWidth + PadRight,
		Months:     months,
		MonthWidth: monthWidth,
	}

	for m := 0; m < months; m++ {
		x := PadLeft + m*monthWidth
		boundary := m%12 == 0
		g.Gridlines = append(g.Gridlines, Gridline{X: x, YearBoundary: boundary})
		if boundary {
			g.YearLabels = append(g.YearLabels, YearLabel{
				X:    x + yearLabelOffset,
				Year: b.StartYear + m/12,
			})
		}
	}

	return g
}

// MonthX returns the x coordinate of a month index on this grid.
func (g Grid) MonthX(monthIndex int) int {
	return PadLeft + monthIndex*g.MonthWidth
}
