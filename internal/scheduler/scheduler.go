package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tundex/airtime-bot/internal/metrics"
	"github.com/tundex/airtime-bot/internal/types"
	"github.com/tundex/airtime-bot/internal/vending"
)

type Config struct {
	Interval time.Duration
}

// ScheduleSource provides the recurring purchase list; a snapshot is taken
// once per run.
type ScheduleSource interface {
	GetWeeklySchedules(ctx context.Context) ([]types.Schedule, error)
}

// Notifier delivers a plain-text message to the fixed operator channel.
type Notifier interface {
	Notify(text string) error
}

// Runner replays the recurring schedule list. Items run strictly one after
// another — the vendors are rate limited and the per-item notifications must
// not interleave — and one item's failure never aborts the rest of the batch.
type Runner struct {
	config       *Config
	source       ScheduleSource
	orchestrator *vending.Orchestrator
	notifier     Notifier
	log          *slog.Logger
}

func New(config *Config, source ScheduleSource,
	orchestrator *vending.Orchestrator, notifier Notifier) *Runner {

	return &Runner{
		config:       config,
		source:       source,
		orchestrator: orchestrator,
		notifier:     notifier,
		log:          slog.With("component", "scheduler"),
	}
}

func (r *Runner) Start(ctx context.Context) error {
	r.log.Info("Starting scheduled runner", "interval", r.config.Interval)

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Stopping scheduled runner.")
			return ctx.Err()

		case <-time.After(r.config.Interval):
			if err := r.RunOnce(ctx); err != nil {
				r.log.Error("scheduled run failed", "error", err)
			}
		}
	}
}

// RunOnce processes the current schedule list in the order the record store
// returns it, notifying the operator channel once per item.
func (r *Runner) RunOnce(ctx context.Context) error {
	schedules, err := r.source.GetWeeklySchedules(ctx)
	if err != nil {
		return fmt.Errorf("couldn't fetch weekly schedules: %w", err)
	}

	r.log.Info("Processing weekly schedules", "count", len(schedules))

	for _, schedule := range schedules {
		r.runOne(ctx, schedule)
	}

	metrics.ScheduledRuns.Inc()

	return nil
}

func (r *Runner) runOne(ctx context.Context, schedule types.Schedule) {
	req := &types.VendRequest{
		Amount:      schedule.Amount,
		PhoneNumber: schedule.PhoneNumber,
	}

	report, err := r.orchestrator.Vend(ctx, req, nil)
	if err != nil {
		r.log.Error("scheduled vend failed",
			"phone", schedule.PhoneNumber,
			"amount", schedule.Amount,
			"error", err,
		)

		r.notify(fmt.Sprintf(
			"Hey there %s, your weekly recharge of ₦ %d failed ❌. %s",
			schedule.PhoneNumber, schedule.Amount, err.Error()))

		return
	}

	r.notify(fmt.Sprintf(
		"Hey there %s, your weekly recharge of ₦ %d completed with a status of %s.\n\n"+
			"Transaction ID: %s\n"+
			"You were charged ₦ %.2f and you saved ₦ %.2f 🎉.\n"+
			"Have a great week champ ❤️.",
		report.PhoneNumber, schedule.Amount, report.Status,
		report.Reference, report.Charged, report.Saved))
}

func (r *Runner) notify(text string) {
	if err := r.notifier.Notify(text); err != nil {
		r.log.Error("couldn't send notification", "error", err)
	}
}
