// ABOUTME: Temporal model converting raw appointment records into month-granularity intervals.
// ABOUTME: Owns date parsing, category normalization, and the subject/container label-mode split.
package timeline

import (
	"strings"
	"time"

	"github.com/redpolitica/trayectoria/feed"
)

// Category is the normalized institutional level of an appointment.
type Category int

const (
	CategoryFederal Category = iota
	CategoryState
	CategoryMunicipal
	CategoryPartisan
	CategoryOther
)

// String returns the canonical lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryFederal:
		return "federal"
	case CategoryState:
		return "state"
	case CategoryMunicipal:
		return "municipal"
	case CategoryPartisan:
		return "partisan"
	default:
		return "other"
	}
}

// ParseCategory normalizes a category field into the closed enum. Canonical
// names match exactly; otherwise raw scope text is matched by substring the
// way the upstream classifier derives levels (a record tagged
// "Ámbito estatal" still lands on state). Unknown text maps to other.
func ParseCategory(s string) Category {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "federal":
		return CategoryFederal
	case "state", "estatal":
		return CategoryState
	case "municipal":
		return CategoryMunicipal
	case "partisan", "partidista", "partido":
		return CategoryPartisan
	}
	switch {
	case strings.Contains(v, "federal"):
		return CategoryFederal
	case strings.Contains(v, "estatal") || strings.Contains(v, "state"):
		return CategoryState
	case strings.Contains(v, "municipal"):
		return CategoryMunicipal
	case strings.Contains(v, "partid"):
		return CategoryPartisan
	}
	return CategoryOther
}

// Mode records which payload shape an interval came from, which decides
// whether the appointment title or the counterpart name is the primary label.
type Mode int

const (
	ModeSubject Mode = iota
	ModeContainer
)

// Interval is one appointment normalized for layout. Start and End are
// truncated to month granularity; Start never exceeds End.
type Interval struct {
	Start          time.Time
	End            time.Time
	Category       Category
	PrimaryLabel   string
	SecondaryLabel string
	Tags           []string
	Notes          string
	Mode           Mode
}

// dateLayouts accepted for appointment dates. A date without a day
// component defaults to day 1 of the month.
var dateLayouts = []string{"2006-01-02", "2006-01"}

// ParseDate parses an appointment date string. The boolean result is false
// for anything unparseable, including the empty string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromEntity converts an entity's raw appointments into intervals. Records
// with an unparseable start or end date, or with start after end, are
// silently excluded; malformed records never reach the stacking engine.
// An empty result signals the caller to render an empty state.
func FromEntity(e feed.Entity, mode Mode) []Interval {
	var out []Interval
	for _, a := range e.Appointments {
		start, ok := ParseDate(a.StartDate)
		if !ok {
			continue
		}
		end, ok := ParseDate(a.EndDate)
		if !ok {
			continue
		}
		if start.After(end) {
			continue
		}

		iv := Interval{
			Start:    start,
			End:      end,
			Category: ParseCategory(a.Category),
			Tags:     a.Tags,
			Notes:    a.Notes,
			Mode:     mode,
		}
		if mode == ModeContainer {
			iv.PrimaryLabel = a.CounterpartLabel
			iv.SecondaryLabel = a.AppointmentLabel
		} else {
			iv.PrimaryLabel = a.AppointmentLabel
			iv.SecondaryLabel = a.CounterpartLabel
		}
		out = append(out, iv)
	}
	return out
}
