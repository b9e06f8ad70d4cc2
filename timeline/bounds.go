// ABOUTME: Resolves the visible year range for an interval set.
// ABOUTME: Pure widening-only computation from fixed defaults; recomputed on every render pass.
package timeline

import "time"

// DefaultStartYear anchors the left edge of the default visible window.
const DefaultStartYear = 1997

// Bounds is the resolved [StartYear, EndYear] window driving grid width.
// Bounds are never persisted across entity switches.
type Bounds struct {
	StartYear int
	EndYear   int
}

// ResolveBounds computes bounds for the given intervals, starting from the
// defaults [DefaultStartYear, now.Year()] and widening monotonically: an
// interval can push StartYear down or EndYear up, never narrow the window.
func ResolveBounds(intervals []Interval, now time.Time) Bounds {
	b := Bounds{StartYear: DefaultStartYear, EndYear: now.Year()}
	for _, iv := range intervals {
		if y := iv.Start.Year(); y < b.StartYear {
			b.StartYear = y
		}
		if y := iv.End.Year(); y > b.EndYear {
			b.EndYear = y
		}
	}
	return b
}

// Years returns the number of calendar years spanned, inclusive.
func (b Bounds) Years() int {
	return b.EndYear - b.StartYear + 1
}

// Months returns the total month count of the window.
func (b Bounds) Months() int {
	return b.Years() * 12
}
