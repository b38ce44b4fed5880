/*
Package runner orchestrates one notification run.

PURPOSE:
  Glues the pure engine to the two external services. Given "today", it
  determines the active cadences, fetches the roster once, fetches time
  entries per cadence range, analyzes, and hands flagged users to the
  notifier.

FAILURE MODEL:
  A fetch failure aborts that cadence entirely (no partial notification from
  half-fetched data) but later cadences still run; one bad report beats zero.
  The run as a whole reports an error if any cadence failed.
*/
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/hours-sentinel/cadence"
	"github.com/warp/hours-sentinel/calendar"
	"github.com/warp/hours-sentinel/shortfall"
)

// TimeTracker fetches roster and time-report data. Implemented by
// harvest.Client.
type TimeTracker interface {
	ListUsers(ctx context.Context, excluded []string) ([]shortfall.User, error)
	ListTimeReport(ctx context.Context, r calendar.Range) ([]shortfall.TimeEntry, error)
}

// Notifier delivers a finished report. Implemented by slack.Notifier.
type Notifier interface {
	Notify(ctx context.Context, c cadence.Cadence, r calendar.Range, records []shortfall.Record) error
}

// Summary describes one completed cadence run.
type Summary struct {
	ID        string
	Cadence   cadence.Cadence
	Range     calendar.Range
	Evaluated int
	Flagged   int
}

// Runner executes notification runs.
type Runner struct {
	tracker  TimeTracker
	notifier Notifier
	engine   shortfall.Config
	excluded []string
	log      *zap.Logger
}

func New(tracker TimeTracker, notifier Notifier, engine shortfall.Config, excluded []string, log *zap.Logger) *Runner {
	return &Runner{
		tracker:  tracker,
		notifier: notifier,
		engine:   engine,
		excluded: excluded,
		log:      log,
	}
}

// RunToday executes every cadence active on the given day. Weekend days
// have no active cadences (except a weekend month-end, which still gets the
// monthly check) and the run is a no-op.
func (r *Runner) RunToday(ctx context.Context, today calendar.Date) error {
	active := cadence.ActiveOn(today)
	if len(active) == 0 {
		r.log.Info("no cadences active today", zap.String("date", today.String()))
		return nil
	}

	var errs []error
	for _, c := range active {
		if _, err := r.RunCadence(ctx, c, today); err != nil {
			r.log.Error("cadence run failed",
				zap.Stringer("cadence", c), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		}
	}
	return errors.Join(errs...)
}

// RunCadence analyzes one cadence and posts its report.
func (r *Runner) RunCadence(ctx context.Context, c cadence.Cadence, today calendar.Date) (Summary, error) {
	records, rng, evaluated, err := r.analyze(ctx, c, today)
	if err != nil {
		return Summary{}, err
	}

	if err := r.notifier.Notify(ctx, c, rng, records); err != nil {
		return Summary{}, fmt.Errorf("notify: %w", err)
	}

	sum := Summary{
		ID:        uuid.NewString(),
		Cadence:   c,
		Range:     rng,
		Evaluated: evaluated,
		Flagged:   len(records),
	}
	r.log.Info("cadence run completed",
		zap.String("run_id", sum.ID),
		zap.Stringer("cadence", c),
		zap.String("range", rng.String()),
		zap.Int("evaluated", evaluated),
		zap.Int("flagged", sum.Flagged))
	return sum, nil
}

// Preview runs the analysis for one cadence without notifying anyone.
func (r *Runner) Preview(ctx context.Context, c cadence.Cadence, today calendar.Date) ([]shortfall.Record, calendar.Range, error) {
	records, rng, _, err := r.analyze(ctx, c, today)
	return records, rng, err
}

func (r *Runner) analyze(ctx context.Context, c cadence.Cadence, today calendar.Date) ([]shortfall.Record, calendar.Range, int, error) {
	rng, err := cadence.RangeFor(c, today)
	if err != nil {
		return nil, calendar.Range{}, 0, err
	}

	users, err := r.tracker.ListUsers(ctx, r.excluded)
	if err != nil {
		return nil, calendar.Range{}, 0, fmt.Errorf("fetch users: %w", err)
	}
	entries, err := r.tracker.ListTimeReport(ctx, rng)
	if err != nil {
		return nil, calendar.Range{}, 0, fmt.Errorf("fetch time report: %w", err)
	}

	records := shortfall.Analyze(users, entries, c, rng, r.engine)
	return records, rng, len(users), nil
}
