package queries

import (
	"context"
	"database/sql"
	"time"

	"dinner/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetInventorySnapshotQueryHandler reads per-item stock levels together with
// the reservation pressure on them. Uses direct SQL for optimal read
// performance in the CQRS pattern.
type GetInventorySnapshotQueryHandler struct {
	db *gorm.DB
}

// NewGetInventorySnapshotQueryHandler creates a handler for inventory
// snapshot queries.
func NewGetInventorySnapshotQueryHandler(db *gorm.DB) GetInventorySnapshotQueryHandler {
	return GetInventorySnapshotQueryHandler{db: db}
}

// Handle executes the query. Returns one row per tracked menu item sorted by
// name, each with the unconsumed reservation totals for the snapshot day and
// for its Sunday-start week.
func (h GetInventorySnapshotQueryHandler) Handle(
	ctx context.Context,
	query GetInventorySnapshotQuery,
) ([]GetInventorySnapshotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	window, err := kernel.NewWindowForTime(query.At())
	if err != nil {
		return nil, err
	}
	weekStart := window.Start().AddDate(0, 0, -int(window.Start().Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	items := make([]GetInventorySnapshotQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.menu_item_id,
			m.name,
			s.capacity_per_window,
			s.ordered_quantity,
			s.safety_stock,
			s.notes,
			s.last_restocked_at,
			COALESCE((
				SELECT SUM(r.quantity) FROM reservations r
				WHERE r.menu_item_id = s.menu_item_id
				  AND r.consumed = 0
				  AND r.window_start >= ? AND r.window_start <= ?
			), 0) AS reserved_today,
			COALESCE((
				SELECT SUM(r.quantity) FROM reservations r
				WHERE r.menu_item_id = s.menu_item_id
				  AND r.consumed = 0
				  AND r.window_start >= ? AND r.window_start < ?
			), 0) AS reserved_this_week
		FROM item_stocks s
		JOIN menu_items m ON m.id = s.menu_item_id
		ORDER BY m.name ASC, s.menu_item_id ASC
	`, window.Start(), window.End(), weekStart, weekEnd).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetInventorySnapshotQueryResponse
		var lastRestockedAt sql.NullTime
		err = rows.Scan(
			&resp.MenuItemID,
			&resp.MenuItemName,
			&resp.CapacityPerWindow,
			&resp.OrderedQuantity,
			&resp.SafetyStock,
			&resp.Notes,
			&lastRestockedAt,
			&resp.ReservedToday,
			&resp.ReservedThisWeek,
		)
		if err != nil {
			return nil, err
		}

		if lastRestockedAt.Valid {
			restockedAt := lastRestockedAt.Time.In(time.Local)
			resp.LastRestockedAt = &restockedAt
		}

		resp.RemainingToday = resp.CapacityPerWindow - resp.ReservedToday
		if resp.RemainingToday < 0 {
			resp.RemainingToday = 0
		}

		items = append(items, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
