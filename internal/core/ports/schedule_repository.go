package ports

import (
	"context"

	"dinner/internal/core/domain/model/kernel"
	"dinner/internal/core/domain/model/schedule"
)

// ScheduleRepository defines the persistence contract for delivery runs.
type ScheduleRepository interface {
	// Add persists a new run and assigns its identifier.
	Add(ctx context.Context, run *schedule.DeliverySchedule) error

	// Update persists changes to an existing run.
	Update(ctx context.Context, run *schedule.DeliverySchedule) error

	// Get retrieves a run by its identifier.
	Get(ctx context.Context, id int64) (*schedule.DeliverySchedule, error)

	// GetActiveByOrder retrieves the order's live run, if any. Cancelled
	// and completed runs are not returned.
	GetActiveByOrder(ctx context.Context, orderID int64) (*schedule.DeliverySchedule, error)

	// GetLatestByOrder retrieves the order's most recent run regardless of
	// status, used by the assignment upsert.
	GetLatestByOrder(ctx context.Context, orderID int64) (*schedule.DeliverySchedule, error)

	// GetActiveByEmployeeInWindow retrieves a courier's live runs for the
	// delivery day, used for overlap checks.
	GetActiveByEmployeeInWindow(ctx context.Context, employeeID int64, window kernel.Window) ([]*schedule.DeliverySchedule, error)

	// CountActiveByEmployeeInWindow counts a courier's live runs for the
	// delivery day, used to rank couriers by load.
	CountActiveByEmployeeInWindow(ctx context.Context, employeeID int64, window kernel.Window) (int, error)

	// GetAllInWindow retrieves every run of the delivery day regardless of
	// status, for the staff schedule board.
	GetAllInWindow(ctx context.Context, window kernel.Window) ([]*schedule.DeliverySchedule, error)
}
