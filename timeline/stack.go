// ABOUTME: Greedy first-fit interval stacking that resolves visual overlaps into rows.
// ABOUTME: Equivalent to minimum coloring of an interval graph; row count equals the maximum overlap depth.
package timeline

import (
	"sort"
	"time"
)

// Placed is an interval with resolved month coordinates and its assigned row.
// Row is mutable only during stacking and must be treated as immutable after.
type Placed struct {
	Interval
	StartMonth int // zero-based month index relative to the bounds start year
	EndMonth   int
	Row        int
}

// MonthIndex converts a date to its zero-based month index relative to the
// given start year: (year - startYear)*12 + month, with January as 0.
func MonthIndex(t time.Time, startYear int) int {
	return (t.Year()-startYear)*12 + int(t.Month()) - 1
}

// Stack assigns every interval to the lowest-indexed row whose last occupied
// month ends strictly before the interval starts. Months are the finest
// granularity, so intervals meeting in the same boundary month conflict and
// land on different rows. Returns the placed intervals in stacking order and
// the number of rows opened.
//
// The sort by (start asc, end asc) is stable, so ties keep input order and
// the layout is deterministic for identical input.
func Stack(intervals []Interval, startYear int) ([]Placed, int) {
	placed := make([]Placed, 0, len(intervals))
	for _, iv := range intervals {
		placed = append(placed, Placed{
			Interval:   iv,
			StartMonth: MonthIndex(iv.Start, startYear),
			EndMonth:   MonthIndex(iv.End, startYear),
		})
	}

	sort.SliceStable(placed, func(i, j int) bool {
		if placed[i].StartMonth != placed[j].StartMonth {
			return placed[i].StartMonth < placed[j].StartMonth
		}
		return placed[i].EndMonth < placed[j].EndMonth
	})

	// rowEnds[r] holds the last occupied month index of row r.
	var rowEnds []int
	for i := range placed {
		assigned := -1
		for r, rowEnd := range rowEnds {
			if rowEnd < placed[i].StartMonth {
				assigned = r
				break
			}
		}
		if assigned == -1 {
			assigned = len(rowEnds)
			rowEnds = append(rowEnds, placed[i].EndMonth)
		} else {
			rowEnds[assigned] = placed[i].EndMonth
		}
		placed[i].Row = assigned
	}

	return placed, len(rowEnds)
}
