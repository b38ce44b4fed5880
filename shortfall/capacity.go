package shortfall

import "github.com/shopspring/decimal"

// =============================================================================
// CAPACITY NORMALIZER
// =============================================================================

// DefaultHoursPerDay is the assumed length of one working day when
// normalizing weekly capacity into working days.
var DefaultHoursPerDay = decimal.NewFromInt(8)

// ExpectedDaysPerWeek converts a weekly capacity in seconds into the number
// of working days it represents, given an assumed hours-per-day. The result
// is rounded to two decimal places, so a 40h week at 8h days is exactly 5
// and a 20h week is exactly 2.5.
func ExpectedDaysPerWeek(weeklyCapacitySeconds int, hoursPerDay decimal.Decimal) decimal.Decimal {
	if hoursPerDay.IsZero() {
		hoursPerDay = DefaultHoursPerDay
	}
	return decimal.NewFromInt(int64(weeklyCapacitySeconds)).
		Div(secondsPerHour).
		Div(hoursPerDay).
		Round(2)
}
