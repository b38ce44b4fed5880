package shortfall

import (
	"github.com/shopspring/decimal"

	"github.com/warp/hours-sentinel/cadence"
	"github.com/warp/hours-sentinel/calendar"
)

// =============================================================================
// SHORTFALL ANALYZER
// =============================================================================

// Analyze flags every user whose logged hours over the range fall below
// their personalized threshold for the cadence.
//
// For each user: eligibility first (zero-capacity users are skipped outright,
// low-capacity users are skipped for daily only), then all matching time
// entries are summed. Zero matching entries is a valid sum, and usually the
// flag-worthy case. Output preserves roster order and the inputs are never
// mutated, so identical inputs always produce identical output.
//
// A nil or empty roster yields an empty result: upstream data absence means
// nothing to notify, not a failure.
func Analyze(users []User, entries []TimeEntry, c cadence.Cadence, r calendar.Range, cfg Config) []Record {
	if len(users) == 0 {
		return nil
	}

	// One pass over entries; rosters and reports are both small.
	logged := make(map[string]decimal.Decimal, len(users))
	for _, e := range entries {
		logged[e.UserID] = logged[e.UserID].Add(e.Hours)
	}

	var flagged []Record
	for _, u := range users {
		if !Participates(u) {
			continue
		}
		if c == cadence.Daily && !ParticipatesDaily(u, cfg.DailyCapacityFloor) {
			continue
		}

		total := logged[u.ID]
		expected := Threshold(u, c, r, cfg.BaseHoursPerDay)
		if total.LessThan(expected) {
			flagged = append(flagged, Record{
				User:          u,
				TotalHours:    total,
				ExpectedHours: expected,
			})
		}
	}
	return flagged
}
