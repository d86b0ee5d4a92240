package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcelmybox/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOverdueSchedule runs the overdue sweep every ten minutes.
const DefaultOverdueSchedule = "*/10 * * * *"

// OverdueMarker is the use case the sweep drives.
type OverdueMarker interface {
	Handle(ctx context.Context, cmd commands.MarkOverdueBillingCommand) (commands.OverdueResult, error)
}

// OverdueBillingJob periodically moves pending bills and invoices whose due
// date has passed to OVERDUE.
type OverdueBillingJob struct {
	handler  OverdueMarker
	schedule string
	cron     *cron.Cron
	now      func() time.Time
	logger   *slog.Logger
}

// NewOverdueBillingJob creates the sweep. schedule is a standard five-field
// cron expression or a descriptor such as "@every 10m"; empty selects
// DefaultOverdueSchedule.
func NewOverdueBillingJob(handler OverdueMarker, schedule string, logger *slog.Logger) *OverdueBillingJob {
	if schedule == "" {
		schedule = DefaultOverdueSchedule
	}
	return &OverdueBillingJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		now:      time.Now,
		logger:   logger.With("component", "overdue_billing_job"),
	}
}

// Start registers the sweep with the scheduler and starts it.
func (j *OverdueBillingJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _, _ = j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue billing job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep. Failures are logged and returned.
func (j *OverdueBillingJob) Run(ctx context.Context) (commands.OverdueResult, error) {
	cmd, err := commands.NewMarkOverdueBillingCommand(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue billing job failed", "error", err)
		return commands.OverdueResult{}, err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue billing job failed", "error", err)
		return commands.OverdueResult{}, err
	}
	if result.Bills > 0 || result.Invoices > 0 {
		j.logger.InfoContext(ctx, "Marked billing documents overdue", "bills", result.Bills, "invoices", result.Invoices)
	}
	return result, nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *OverdueBillingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue billing job stopped")
}
