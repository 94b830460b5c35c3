package queries

import (
	"context"

	"dinner/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetScheduleBoardQueryHandler reads the daily delivery board from the
// database. Uses direct SQL for optimal read performance in the CQRS pattern.
type GetScheduleBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetScheduleBoardQueryHandler creates a handler for schedule board queries.
func NewGetScheduleBoardQueryHandler(db *gorm.DB) GetScheduleBoardQueryHandler {
	return GetScheduleBoardQueryHandler{db: db}
}

// Handle executes the query. Returns every run departing within the
// requested day, earliest departure first, with courier names and drop-off
// addresses resolved.
func (h GetScheduleBoardQueryHandler) Handle(
	ctx context.Context,
	query GetScheduleBoardQuery,
) ([]GetScheduleBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	window, err := kernel.NewWindowForTime(query.Day())
	if err != nil {
		return nil, err
	}

	runs := make([]GetScheduleBoardQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.order_id,
			s.employee_id,
			e.name,
			o.delivery_address,
			s.departure_time,
			s.estimated_return_time,
			s.status
		FROM delivery_schedules s
		JOIN employees e ON e.id = s.employee_id
		JOIN orders o ON o.id = s.order_id
		WHERE s.departure_time >= ? AND s.departure_time <= ?
		ORDER BY s.departure_time ASC, s.id ASC
	`, window.Start(), window.End()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetScheduleBoardQueryResponse
		err = rows.Scan(
			&resp.ScheduleID,
			&resp.OrderID,
			&resp.EmployeeID,
			&resp.EmployeeName,
			&resp.DeliveryAddress,
			&resp.DepartureTime,
			&resp.EstimatedReturnTime,
			&resp.Status,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
