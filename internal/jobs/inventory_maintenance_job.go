package jobs

import (
	"context"
	"log/slog"
	"time"

	"dinner/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// InventoryMaintenanceJob runs the nightly inventory sweep at midnight:
// stale reservations are purged, purchase orders are sized from the day's
// demand and, on supplier delivery days, ordered stock is folded into
// capacity.
type InventoryMaintenanceJob struct {
	handler commands.RunMaintenanceCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewInventoryMaintenanceJob creates the nightly maintenance job.
func NewInventoryMaintenanceJob(handler commands.RunMaintenanceCommandHandler, logger *slog.Logger) *InventoryMaintenanceJob {
	return &InventoryMaintenanceJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "inventory_maintenance_job"),
	}
}

// Start schedules the sweep for midnight every day.
func (j *InventoryMaintenanceJob) Start() error {
	_, err := j.cron.AddFunc("0 0 0 * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewRunMaintenanceCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Inventory maintenance command rejected", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Inventory maintenance job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Inventory maintenance job started (running at midnight)")
	return nil
}

// Stop stops the maintenance job.
func (j *InventoryMaintenanceJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Inventory maintenance job stopped")
}
