// Package timekey derives calendar identifiers from wall-clock time in the
// checklist's fixed time zone. Every identifier is computed against ZoneName,
// never the process-local zone.
package timekey

import (
	"fmt"
	"time"
)

// ZoneName is the fixed time zone anchoring all calendar arithmetic.
const ZoneName = "America/Los_Angeles"

// NoColumn is the column value on Saturday and Sunday.
const NoColumn = -1

var zone = mustZone()

func mustZone() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		panic(fmt.Sprintf("timekey: load zone %s: %v", ZoneName, err))
	}
	return loc
}

// Keys is a consistent snapshot of the calendar identifiers derived from a
// single instant. An operation that needs more than one identifier must take
// them all from the same Keys value; deriving them from separate instants can
// straddle a day boundary and produce mismatched keys.
type Keys struct {
	// DayKey is the current date as YYYY-MM-DD.
	DayKey string
	// Weekday is the short weekday name, Mon..Sun.
	Weekday string
	// WeekKey is the YYYY-MM-DD of the Monday on or before DayKey. It is
	// the sole lookup key for a week's completion record.
	WeekKey string
	// Column is the checklist column for the day: 0..4 for Mon..Fri,
	// NoColumn on weekends.
	Column int
	// YearMonth is DayKey's YYYY-MM prefix.
	YearMonth string
	// MonthDay is the day of the month, 1-based.
	MonthDay int
}

// Now captures the current instant and derives all identifiers from it.
func Now() Keys { return At(time.Now()) }

// At derives the identifiers for an arbitrary instant.
func At(t time.Time) Keys {
	lt := t.In(zone)
	y, m, d := lt.Date()

	// Zone-local calendar arithmetic. AddDate walks calendar days in the
	// zone, so the Monday subtraction cannot drift across a DST change.
	day := time.Date(y, m, d, 0, 0, 0, 0, zone)
	wd := lt.Weekday() // Sunday=0
	offset := int(wd) - 1
	if wd == time.Sunday {
		offset = 6
	}
	monday := day.AddDate(0, 0, -offset)

	col := NoColumn
	if wd >= time.Monday && wd <= time.Friday {
		col = int(wd) - 1
	}

	return Keys{
		DayKey:    day.Format("2006-01-02"),
		Weekday:   lt.Format("Mon"),
		WeekKey:   monday.Format("2006-01-02"),
		Column:    col,
		YearMonth: day.Format("2006-01"),
		MonthDay:  d,
	}
}

// RangeLabel renders the Monday–Friday span of the week for display, e.g.
// "Jun 3 – Jun 7 (PDT)". Presentation only; never used for keying.
func (k Keys) RangeLabel() string {
	monday, err := time.ParseInLocation("2006-01-02", k.WeekKey, zone)
	if err != nil {
		return k.WeekKey
	}
	friday := monday.AddDate(0, 0, 4)
	return fmt.Sprintf("%s – %s (%s)",
		monday.Format("Jan 2"), friday.Format("Jan 2"), monday.Format("MST"))
}

// CurrentDayKey returns today's date key. Prefer Now() when a single
// operation needs several identifiers.
func CurrentDayKey() string { return Now().DayKey }

// CurrentWeekday returns the short weekday name for the current instant.
func CurrentWeekday() string { return Now().Weekday }

// MondayOfCurrentWeek returns the current week's key.
func MondayOfCurrentWeek() string { return Now().WeekKey }

// TodayColumn returns today's checklist column, or NoColumn on weekends.
// Recomputed on every call; callers must not cache it across a day boundary.
func TodayColumn() int { return Now().Column }

// WeekRangeLabel returns the display label for the current week.
func WeekRangeLabel() string { return Now().RangeLabel() }
