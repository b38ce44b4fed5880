/*
Package calendar provides day-granular date arithmetic for the notifier.

PURPOSE:
  Every decision the engine makes (which cadence fires, which range a cadence
  inspects, how many workdays a month contains) is pure calendar math. This
  package owns all of it so the rest of the system never touches time.Time
  directly.

KEY CONCEPTS:
  - Date: a calendar day, normalized to UTC midnight
  - Range: an inclusive [From, To] span of days
  - Workday: any Monday-Friday day, holidays are not observed

SEE ALSO:
  - cadence/cadence.go: builds Ranges for each notification cadence
  - shortfall/threshold.go: uses WorkdayCount for monthly proration
*/
package calendar

import "time"

// =============================================================================
// DATE - Day-granular point in time
// =============================================================================

type Date struct {
	t time.Time
}

// NewDate constructs a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time.Time to its calendar day.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return FromTime(time.Now().UTC())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) IsWorkday() bool { return !d.IsWeekend() }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// Time exposes the underlying time.Time for formatting at I/O boundaries.
func (d Date) Time() time.Time { return d.t }

// isoWeekday maps Sunday-first time.Weekday to Monday=1 .. Sunday=7.
func (d Date) isoWeekday() int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// =============================================================================
// WEEK / MONTH BOUNDARIES
// =============================================================================

// StartOfWeek returns the Monday of d's week.
func (d Date) StartOfWeek() Date {
	return d.AddDays(1 - d.isoWeekday())
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	return NewDate(d.Year(), d.Month()+1, 1).AddDays(-1)
}

// IsLastDayOfMonth reports whether d is the final calendar day of its month.
func (d Date) IsLastDayOfMonth() bool {
	return d.Equal(d.EndOfMonth())
}

// DaysBetween returns the signed count of days from `from` to `to`.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// RANGE - Inclusive day span
// =============================================================================

// Range is an inclusive [From, To] span. Callers must keep From <= To.
type Range struct {
	From Date
	To   Date
}

func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains returns true if the date falls within [From, To].
func (r Range) Contains(d Date) bool {
	return d.AfterOrEqual(r.From) && d.BeforeOrEqual(r.To)
}

func (r Range) String() string {
	return "[" + r.From.String() + ", " + r.To.String() + "]"
}

// =============================================================================
// WORKDAY COUNT
// =============================================================================

// WorkdayCount returns the number of Mon-Fri days within [start, end].
//
// The range is split into a partial first week (start through its Sunday),
// whole weeks in between (5 workdays each), and a partial last week (the
// Monday of end's week through end). Weekend endpoints contribute nothing:
// a range starting on Sunday has an empty first partial and a range ending
// on Saturday caps its last partial at Friday.
//
// Behavior is undefined for start > end; callers own that invariant.
func WorkdayCount(start, end Date) int {
	sw := start.isoWeekday()
	ew := end.isoWeekday()

	firstSunday := start.AddDays(7 - sw)
	lastMonday := end.AddDays(1 - ew)

	// Single-week range: count weekday positions [sw, ew] clipped to Mon-Fri.
	if !lastMonday.After(firstSunday.AddDays(-6)) {
		n := min(ew, 5) - sw + 1
		if n < 0 {
			return 0
		}
		return n
	}

	firstPartial := 6 - sw // zero when start is Saturday or Sunday
	if firstPartial < 0 {
		firstPartial = 0
	}
	lastPartial := min(ew, 5)

	middleDays := DaysBetween(firstSunday, lastMonday) - 1
	fullWeeks := middleDays / 7

	return firstPartial + fullWeeks*5 + lastPartial
}
