/*
Package cadence decides when each notification frequency fires and which
date range it inspects.

PURPOSE:
  The notifier runs once per scheduled trigger. Given only "today", this
  package answers two questions: which cadences are due, and what inclusive
  range of days each one should evaluate.

CADENCE RULES:
  daily    every weekday, looking at the previous workday
  weekly   Fridays, looking at Monday through today
  monthly  the last calendar day of the month, looking at the whole month

  All three can be active at once (a Friday that closes the month).

SEE ALSO:
  - calendar/date.go: week/month boundary math
  - shortfall/analyze.go: consumes the (cadence, range) pair
*/
package cadence

import (
	"errors"
	"fmt"
	"time"

	"github.com/warp/hours-sentinel/calendar"
)

// =============================================================================
// CADENCE - Closed set of notification frequencies
// =============================================================================

type Cadence int

const (
	Daily Cadence = iota
	Weekly
	Monthly
)

func (c Cadence) String() string {
	switch c {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return fmt.Sprintf("cadence(%d)", int(c))
	}
}

// Parse converts a cadence name to its tag. Used at I/O boundaries (CLI
// flags, HTTP parameters); internal code passes tags directly.
func Parse(s string) (Cadence, error) {
	switch s {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCadence, s)
	}
}

// ErrUnknownCadence indicates a cadence tag outside the closed set. This is
// a programming error in the caller, never a data condition.
var ErrUnknownCadence = errors.New("unknown cadence")

// =============================================================================
// SCHEDULING
// =============================================================================

// ActiveOn returns the cadences due on the given day, in evaluation order.
//
//   - daily fires on any weekday
//   - weekly fires on Fridays
//   - monthly fires on the last calendar day of the month
func ActiveOn(today calendar.Date) []Cadence {
	var active []Cadence
	if today.IsWorkday() {
		active = append(active, Daily)
	}
	if today.Weekday() == time.Friday {
		active = append(active, Weekly)
	}
	if today.IsLastDayOfMonth() {
		active = append(active, Monthly)
	}
	return active
}

// RangeFor computes the inclusive date range a cadence inspects when it
// fires on the given day.
//
// Daily looks at the previous workday: yesterday on Tue-Fri, the prior
// Friday on Monday (weekends are never checked, so Monday reaches back
// three days). Weekly covers Monday of the current week through today.
// Monthly covers the whole current month.
func RangeFor(c Cadence, today calendar.Date) (calendar.Range, error) {
	switch c {
	case Daily:
		lookback := 1
		if today.Weekday() == time.Monday {
			lookback = 3
		}
		day := today.AddDays(-lookback)
		return calendar.NewRange(day, day), nil

	case Weekly:
		return calendar.NewRange(today.StartOfWeek(), today), nil

	case Monthly:
		return calendar.NewRange(today.StartOfMonth(), today.EndOfMonth()), nil

	default:
		return calendar.Range{}, fmt.Errorf("%w: %d", ErrUnknownCadence, int(c))
	}
}
