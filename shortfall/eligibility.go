package shortfall

import "github.com/shopspring/decimal"

// =============================================================================
// ELIGIBILITY FILTER
// =============================================================================

// Participates reports whether a user is a notification candidate at all.
// Users without a positive weekly capacity are excluded from every cadence
// before any cadence-specific logic runs.
func Participates(u User) bool {
	return u.WeeklyCapacity > 0
}

// ParticipatesDaily reports whether a user receives daily checks. The floor
// is inclusive: a user whose weekly capacity in hours equals the floor is
// included. Weekly and monthly cadences ignore this filter.
//
// Raising the floor lets a deployment silence daily pings for low-capacity
// staff while still covering them weekly and monthly.
func ParticipatesDaily(u User, floorHours decimal.Decimal) bool {
	return u.CapacityHours().GreaterThanOrEqual(floorHours)
}
