package schedulerepo

import (
	"context"
	"errors"

	"dinner/internal/core/domain/model/kernel"
	"dinner/internal/core/domain/model/schedule"
	"dinner/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// GormScheduleRepository implements ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormScheduleRepository creates a new GORM delivery run repository.
func NewGormScheduleRepository(db *gorm.DB, tracker aggregateTracker) *GormScheduleRepository {
	return &GormScheduleRepository{
		db:      db,
		tracker: tracker,
	}
}

// activeStatuses returns the string forms of the run statuses that occupy a
// courier.
func activeStatuses() []string {
	return []string{
		schedule.StatusScheduled.String(),
		schedule.StatusInProgress.String(),
	}
}

// Add saves a new run and writes the store-assigned identifier back into
// the entity.
func (r *GormScheduleRepository) Add(ctx context.Context, run *schedule.DeliverySchedule) error {
	if err := run.Validate(); err != nil {
		return err
	}

	dto := fromDomain(run)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := run.SetID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(run.ID(), run)
	return nil
}

// Update saves an existing run to the database.
func (r *GormScheduleRepository) Update(ctx context.Context, run *schedule.DeliverySchedule) error {
	if err := run.Validate(); err != nil {
		return err
	}

	dto := fromDomain(run)
	result := r.db.WithContext(ctx).
		Model(&DeliveryScheduleDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery schedule", dto.ID)
	}

	r.tracker.TrackAggregate(run.ID(), run)
	return nil
}

// Get retrieves a run by ID.
func (r *GormScheduleRepository) Get(ctx context.Context, id int64) (*schedule.DeliverySchedule, error) {
	var dto DeliveryScheduleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery schedule", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrder retrieves the order's live run, if any.
func (r *GormScheduleRepository) GetActiveByOrder(ctx context.Context, orderID int64) (*schedule.DeliverySchedule, error) {
	var dto DeliveryScheduleDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID, activeStatuses()).
		Order("id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery schedule for order", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatestByOrder retrieves the order's most recent run regardless of
// status.
func (r *GormScheduleRepository) GetLatestByOrder(ctx context.Context, orderID int64) (*schedule.DeliverySchedule, error) {
	var dto DeliveryScheduleDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery schedule for order", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByEmployeeInWindow retrieves a courier's live runs for the
// delivery day.
func (r *GormScheduleRepository) GetActiveByEmployeeInWindow(
	ctx context.Context,
	employeeID int64,
	window kernel.Window,
) ([]*schedule.DeliverySchedule, error) {
	var dtos []DeliveryScheduleDTO
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status IN ?", employeeID, activeStatuses()).
		Where("departure_time >= ? AND departure_time <= ?", window.Start(), window.End()).
		Order("departure_time ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CountActiveByEmployeeInWindow counts a courier's live runs for the
// delivery day.
func (r *GormScheduleRepository) CountActiveByEmployeeInWindow(
	ctx context.Context,
	employeeID int64,
	window kernel.Window,
) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DeliveryScheduleDTO{}).
		Where("employee_id = ? AND status IN ?", employeeID, activeStatuses()).
		Where("departure_time >= ? AND departure_time <= ?", window.Start(), window.End()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetAllInWindow retrieves every run of the delivery day regardless of
// status.
func (r *GormScheduleRepository) GetAllInWindow(ctx context.Context, window kernel.Window) ([]*schedule.DeliverySchedule, error) {
	var dtos []DeliveryScheduleDTO
	err := r.db.WithContext(ctx).
		Where("departure_time >= ? AND departure_time <= ?", window.Start(), window.End()).
		Order("departure_time ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []DeliveryScheduleDTO) ([]*schedule.DeliverySchedule, error) {
	runs := make([]*schedule.DeliverySchedule, 0, len(dtos))
	for _, dto := range dtos {
		run, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
