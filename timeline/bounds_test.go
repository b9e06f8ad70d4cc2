// ABOUTME: Tests for the bounds resolver.
// ABOUTME: Covers defaults, monotonic widening, and idempotence.
package timeline

import (
	"testing"
	"time"
)

var boundsNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func interval(startYear, endYear int) Interval {
	return Interval{
		Start: time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(endYear, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestResolveBoundsEmptyUsesDefaults(t *testing.T) {
	b := ResolveBounds(nil, boundsNow)
	if b.StartYear != 1997 {
		t.Errorf("StartYear = %d, want 1997", b.StartYear)
	}
	if b.EndYear != 2026 {
		t.Errorf("EndYear = %d, want current year 2026", b.EndYear)
	}
}

func TestResolveBoundsNeverNarrows(t *testing.T) {
	// All intervals strictly inside the default window.
	ivs := []Interval{interval(2005, 2010), interval(2012, 2015)}
	b := ResolveBounds(ivs, boundsNow)
	if b.StartYear != 1997 || b.EndYear != 2026 {
		t.Errorf("bounds narrowed to [%d, %d], want [1997, 2026]", b.StartYear, b.EndYear)
	}
}

func TestResolveBoundsWidens(t *testing.T) {
	tests := []struct {
		name      string
		intervals []Interval
		wantStart int
		wantEnd   int
	}{
		{"widen start only", []Interval{interval(1988, 2000)}, 1988, 2026},
		{"widen end only", []Interval{interval(2020, 2031)}, 1997, 2031},
		{"widen both", []Interval{interval(1970, 1975), interval(2028, 2030)}, 1970, 2030},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ResolveBounds(tt.intervals, boundsNow)
			if b.StartYear != tt.wantStart || b.EndYear != tt.wantEnd {
				t.Errorf("bounds = [%d, %d], want [%d, %d]", b.StartYear, b.EndYear, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolveBoundsMonotonic(t *testing.T) {
	base := []Interval{interval(2001, 2005)}
	b1 := ResolveBounds(base, boundsNow)
	b2 := ResolveBounds(append(base, interval(1980, 2030)), boundsNow)

	if b2.StartYear > b1.StartYear {
		t.Errorf("adding an interval narrowed StartYear: %d -> %d", b1.StartYear, b2.StartYear)
	}
	if b2.EndYear < b1.EndYear {
		t.Errorf("adding an interval narrowed EndYear: %d -> %d", b1.EndYear, b2.EndYear)
	}
}

func TestResolveBoundsIdempotent(t *testing.T) {
	ivs := []Interval{interval(1990, 2002), interval(2010, 2029)}
	b1 := ResolveBounds(ivs, boundsNow)
	b2 := ResolveBounds(ivs, boundsNow)
	if b1 != b2 {
		t.Errorf("ResolveBounds not idempotent: %+v vs %+v", b1, b2)
	}
}

func TestBoundsSpans(t *testing.T) {
	b := Bounds{StartYear: 2000, EndYear: 2001}
	if b.Years() != 2 {
		t.Errorf("Years() = %d, want 2", b.Years())
	}
	if b.Months() != 24 {
		t.Errorf("Months() = %d, want 24", b.Months())
	}
}
