package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler reads a customer's reservations straight from
// the database. Uses direct SQL for optimal read performance in the CQRS
// pattern.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for order history queries.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns the customer's reservations newest
// first, each with its dinner name resolved.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]GetUserOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUserOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.dinner_type_id,
			d.name,
			o.serving_style,
			o.delivery_time,
			o.delivery_address,
			o.total_price,
			o.status,
			o.approval_status,
			o.created_at
		FROM orders o
		JOIN dinner_types d ON d.id = o.dinner_type_id
		WHERE o.user_id = ?
		ORDER BY o.created_at DESC, o.id DESC
	`, query.UserID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUserOrdersQueryResponse
		err = rows.Scan(
			&resp.OrderID,
			&resp.DinnerTypeID,
			&resp.DinnerTypeName,
			&resp.ServingStyle,
			&resp.DeliveryTime,
			&resp.DeliveryAddress,
			&resp.TotalPrice,
			&resp.Status,
			&resp.ApprovalStatus,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
