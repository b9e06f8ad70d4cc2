// ABOUTME: Pure placement geometry for the floating tooltip: above-centered, flip on clip, clamp to panel.
// ABOUTME: Unit-agnostic integer math shared by the pixel adapters and the cell-based TUI adapter.
package layout

// Rect is an axis-aligned box in whatever unit the adapter uses.
type Rect struct {
	X, Y, W, H int
}

// Intersects reports whether two rectangles share any area. Used as the
// positional guard: an anchor that no longer intersects the panel box must
// force-hide its tooltip rather than render off-panel.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Point is a placement result.
type Point struct {
	X, Y int
}

// PlaceTooltip positions a tooltip of size tipW x tipH relative to the
// anchor inside the panel. Preferred placement is above the anchor,
// horizontally centered on it; if that would clip past the panel's top edge
// the tooltip flips below the anchor. Both axes are then clamped into the
// panel interior with the pad margin, independent of the flip decision.
func PlaceTooltip(anchor Rect, tipW, tipH int, panel Rect, gap, pad int) Point {
	x := anchor.X + anchor.W/2 - tipW/2
	y := anchor.Y - gap - tipH
	if y < panel.Y+pad {
		y = anchor.Y + anchor.H + gap
	}

	x = clamp(x, panel.X+pad, panel.X+panel.W-tipW-pad)
	y = clamp(y, panel.Y+pad, panel.Y+panel.H-tipH-pad)

	return Point{X: x, Y: y}
}

// clamp bounds v to [lo, hi]. When the range is inverted (content larger
// than the panel) the low edge wins.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
