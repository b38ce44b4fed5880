package shortfall

import (
	"github.com/shopspring/decimal"

	"github.com/warp/hours-sentinel/cadence"
	"github.com/warp/hours-sentinel/calendar"
)

// =============================================================================
// THRESHOLD ENGINE
// =============================================================================

var five = decimal.NewFromInt(5)

// Threshold computes the personalized expected hours for one user over one
// cadence range.
//
//	daily    base            (a single-day check; personalization happens in
//	                          the eligibility filter, not the threshold)
//	weekly   base x expected working days per week
//	monthly  base x calendar workdays in range, prorated by the user's
//	         fractional work week (expectedDays / 5)
//
// A 40h/week user with base 7.5 expects 7.5 daily, 37.5 weekly, and
// 7.5 x workdays monthly; a 3-day part-timer gets three fifths of that for
// weekly and monthly.
//
// The cadence enum is closed, so the default branch is unreachable from
// well-typed callers; it retains the base-rate fallback as a safety net for
// arithmetic, never as a signal.
func Threshold(u User, c cadence.Cadence, r calendar.Range, base decimal.Decimal) decimal.Decimal {
	switch c {
	case cadence.Daily:
		return base

	case cadence.Weekly:
		days := ExpectedDaysPerWeek(u.WeeklyCapacity, DefaultHoursPerDay)
		return base.Mul(days)

	case cadence.Monthly:
		workdays := decimal.NewFromInt(int64(calendar.WorkdayCount(r.From, r.To)))
		days := ExpectedDaysPerWeek(u.WeeklyCapacity, DefaultHoursPerDay)
		return base.Mul(workdays).Mul(days).Div(five)

	default:
		return base
	}
}
