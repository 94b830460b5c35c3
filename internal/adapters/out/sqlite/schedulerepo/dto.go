// Package schedulerepo provides data transfer objects and mapping functions
// for delivery run persistence.
package schedulerepo

import (
	"time"

	"dinner/internal/core/domain/model/schedule"
)

// DeliveryScheduleDTO represents the database row for one delivery run.
type DeliveryScheduleDTO struct {
	ID                  int64 `gorm:"primaryKey;autoIncrement"`
	OrderID             int64 `gorm:"index"`
	EmployeeID          int64 `gorm:"index"`
	DepartureTime       time.Time `gorm:"index"`
	ArrivalTime         time.Time
	EstimatedReturnTime time.Time
	OneWayMinutes       int
	Status              string
}

// TableName overrides GORM's default naming convention.
func (DeliveryScheduleDTO) TableName() string {
	return "delivery_schedules"
}

// fromDomain converts a delivery run to its database row.
func fromDomain(run *schedule.DeliverySchedule) DeliveryScheduleDTO {
	return DeliveryScheduleDTO{
		ID:                  run.ID(),
		OrderID:             run.OrderID(),
		EmployeeID:          run.EmployeeID(),
		DepartureTime:       run.DepartureTime(),
		ArrivalTime:         run.ArrivalTime(),
		EstimatedReturnTime: run.EstimatedReturnTime(),
		OneWayMinutes:       run.OneWayMinutes(),
		Status:              run.Status().String(),
	}
}

// toDomain reconstructs a delivery run from its database row.
func toDomain(dto DeliveryScheduleDTO) (*schedule.DeliverySchedule, error) {
	status, err := schedule.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return schedule.RestoreDeliverySchedule(
		dto.ID,
		dto.OrderID,
		dto.EmployeeID,
		dto.DepartureTime,
		dto.ArrivalTime,
		dto.EstimatedReturnTime,
		dto.OneWayMinutes,
		status,
	)
}
