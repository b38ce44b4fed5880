package shortfall_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hours-sentinel/cadence"
	"github.com/warp/hours-sentinel/calendar"
	"github.com/warp/hours-sentinel/shortfall"
)

func hours(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dailyRange() calendar.Range {
	d := calendar.NewDate(2025, time.June, 3)
	return calendar.NewRange(d, d)
}

func TestAnalyze_DailyScenario(t *testing.T) {
	// GIVEN: a full timer, a part timer, and a zero-capacity user
	// WHEN: the daily check runs with base 8 and no capacity floor
	// THEN: both eligible users are short of 8h; the zero-capacity user is
	//       skipped no matter what they logged
	users := []shortfall.User{
		{ID: "a", FirstName: "Ada", WeeklyCapacity: 144000},
		{ID: "b", FirstName: "Blaise", WeeklyCapacity: 86400},
		{ID: "c", FirstName: "Carl", WeeklyCapacity: 0},
	}
	entries := []shortfall.TimeEntry{
		{UserID: "a", Hours: hours("5.5")},
		{UserID: "b", Hours: hours("2")},
	}
	cfg := shortfall.Config{BaseHoursPerDay: decimal.NewFromInt(8), DailyCapacityFloor: decimal.Zero}

	got := shortfall.Analyze(users, entries, cadence.Daily, dailyRange(), cfg)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].User.ID)
	assert.True(t, got[0].TotalHours.Equal(hours("5.5")))
	assert.True(t, got[0].ExpectedHours.Equal(hours("8")))
	assert.Equal(t, "b", got[1].User.ID)
	assert.True(t, got[1].ExpectedHours.Equal(hours("8")))
}

func TestAnalyze_SumsEntriesRegardlessOfOrder(t *testing.T) {
	users := []shortfall.User{{ID: "a", WeeklyCapacity: 144000}}
	entries := []shortfall.TimeEntry{
		{UserID: "a", Hours: hours("3.5")},
		{UserID: "x", Hours: hours("9")}, // no matching user, ignored
		{UserID: "a", Hours: hours("1")},
		{UserID: "a", Hours: hours("2")},
	}
	cfg := shortfall.Config{BaseHoursPerDay: decimal.NewFromInt(8)}

	got := shortfall.Analyze(users, entries, cadence.Daily, dailyRange(), cfg)

	require.Len(t, got, 1)
	assert.True(t, got[0].TotalHours.Equal(hours("6.5")), "got %s", got[0].TotalHours)
}

func TestAnalyze_ZeroLoggedHoursIsFlagged(t *testing.T) {
	// No entries at all is the most flag-worthy case, not an error.
	users := []shortfall.User{{ID: "a", WeeklyCapacity: 144000}}
	cfg := shortfall.Config{BaseHoursPerDay: decimal.NewFromInt(8)}

	got := shortfall.Analyze(users, nil, cadence.Daily, dailyRange(), cfg)

	require.Len(t, got, 1)
	assert.True(t, got[0].TotalHours.IsZero())
}

func TestAnalyze_MetThresholdNotFlagged(t *testing.T) {
	users := []shortfall.User{{ID: "a", WeeklyCapacity: 144000}}
	entries := []shortfall.TimeEntry{{UserID: "a", Hours: hours("8")}}
	cfg := shortfall.Config{BaseHoursPerDay: decimal.NewFromInt(8)}

	got := shortfall.Analyze(users, entries, cadence.Daily, dailyRange(), cfg)
	assert.Empty(t, got)
}

func TestAnalyze_DailyCapacityFloor(t *testing.T) {
	// A 20h/week user under a 24h floor is spared the daily ping but still
	// evaluated weekly.
	users := []shortfall.User{{ID: "a", WeeklyCapacity: 72000}}
	cfg := shortfall.Config{
		BaseHoursPerDay:    hours("7.5"),
		DailyCapacityFloor: decimal.NewFromInt(24),
	}

	assert.Empty(t, shortfall.Analyze(users, nil, cadence.Daily, dailyRange(), cfg))

	weekly := calendar.NewRange(calendar.NewDate(2025, time.June, 2), calendar.NewDate(2025, time.June, 6))
	got := shortfall.Analyze(users, nil, cadence.Weekly, weekly, cfg)
	require.Len(t, got, 1)
	// 2.5 expected days x 7.5h
	assert.True(t, got[0].ExpectedHours.Equal(hours("18.75")), "got %s", got[0].ExpectedHours)
}

func TestAnalyze_EmptyRoster(t *testing.T) {
	cfg := shortfall.Config{BaseHoursPerDay: hours("7.5")}
	assert.Empty(t, shortfall.Analyze(nil, nil, cadence.Daily, dailyRange(), cfg))
	assert.Empty(t, shortfall.Analyze([]shortfall.User{}, nil, cadence.Daily, dailyRange(), cfg))
}

func TestAnalyze_PreservesRosterOrder(t *testing.T) {
	users := []shortfall.User{
		{ID: "z", WeeklyCapacity: 144000},
		{ID: "m", WeeklyCapacity: 144000},
		{ID: "a", WeeklyCapacity: 144000},
	}
	cfg := shortfall.Config{BaseHoursPerDay: decimal.NewFromInt(8)}

	got := shortfall.Analyze(users, nil, cadence.Daily, dailyRange(), cfg)

	require.Len(t, got, 3)
	assert.Equal(t, "z", got[0].User.ID)
	assert.Equal(t, "m", got[1].User.ID)
	assert.Equal(t, "a", got[2].User.ID)
}

func TestAnalyze_Idempotent(t *testing.T) {
	// Identical inputs produce identical outputs; nothing is mutated.
	users := []shortfall.User{
		{ID: "a", WeeklyCapacity: 144000},
		{ID: "b", WeeklyCapacity: 86400},
	}
	entries := []shortfall.TimeEntry{
		{UserID: "a", Hours: hours("1")},
		{UserID: "b", Hours: hours("2")},
	}
	cfg := shortfall.Config{BaseHoursPerDay: hours("7.5")}

	first := shortfall.Analyze(users, entries, cadence.Weekly, dailyRange(), cfg)
	second := shortfall.Analyze(users, entries, cadence.Weekly, dailyRange(), cfg)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].User, second[i].User)
		assert.True(t, first[i].TotalHours.Equal(second[i].TotalHours))
		assert.True(t, first[i].ExpectedHours.Equal(second[i].ExpectedHours))
	}
}

func TestRecordDeficit(t *testing.T) {
	r := shortfall.Record{TotalHours: hours("5.5"), ExpectedHours: hours("8")}
	assert.True(t, r.Deficit().Equal(hours("2.5")))
}
