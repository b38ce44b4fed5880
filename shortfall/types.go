/*
Package shortfall implements the threshold and eligibility engine.

PURPOSE:
  Given a roster, the time entries logged over a range, and a cadence, decide
  which users fell short of their personalized expected hours. This is the
  whole reason the system exists; everything around it is I/O glue.

KEY CONCEPTS IN THIS FILE (types.go):
  - User: roster entry, read-only input. WeeklyCapacity (seconds/week) is
    the single personalization input.
  - TimeEntry: one logged bucket of hours for a user. Summed, never averaged.
  - Record: a flagged user with logged vs expected hours. Transient output,
    never persisted.
  - Config: the two tunables the engine reads, parsed once at startup.

DESIGN PRINCIPLES:
  1. Purity: no I/O, no clocks, no logging inside the engine
  2. Precision: decimal.Decimal for all hour arithmetic, float64 only at
     the JSON boundary
  3. Immutability: inputs are never mutated, output is freshly derived

SEE ALSO:
  - threshold.go: personalized expected-hours computation
  - eligibility.go: who participates in which cadence
  - analyze.go: the per-run orchestration entry point
*/
package shortfall

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT TYPES
// =============================================================================

// User is a roster entry from the time-tracking service.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	IsActive  bool

	// WeeklyCapacity is the contracted work-seconds per week. Zero or
	// negative excludes the user from every cadence.
	WeeklyCapacity int
}

func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CapacityHours converts the weekly capacity to hours.
func (u User) CapacityHours() decimal.Decimal {
	return decimal.NewFromInt(int64(u.WeeklyCapacity)).Div(secondsPerHour)
}

// TimeEntry is one logged reporting bucket for a user. A user may have any
// number of entries within a range.
type TimeEntry struct {
	UserID string
	Hours  decimal.Decimal
}

// =============================================================================
// OUTPUT TYPE
// =============================================================================

// Record marks one user who logged fewer hours than expected. Only emitted
// when TotalHours < ExpectedHours and the user passed eligibility.
type Record struct {
	User          User
	TotalHours    decimal.Decimal
	ExpectedHours decimal.Decimal
}

// Deficit returns how many hours the user is short.
func (r Record) Deficit() decimal.Decimal {
	return r.ExpectedHours.Sub(r.TotalHours)
}

// =============================================================================
// ENGINE CONFIGURATION
// =============================================================================

// Config carries the engine tunables. Constructed once at startup from the
// environment and passed by value; the engine never reads ambient state.
type Config struct {
	// BaseHoursPerDay is the expected hours for one working day.
	BaseHoursPerDay decimal.Decimal

	// DailyCapacityFloor is the minimum weekly capacity, in hours, for a
	// user to receive daily checks. Zero means everyone eligible gets them.
	DailyCapacityFloor decimal.Decimal
}

var secondsPerHour = decimal.NewFromInt(3600)
