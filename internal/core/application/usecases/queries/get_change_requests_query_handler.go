package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetChangeRequestsQueryHandler lists change requests from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetChangeRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetChangeRequestsQueryHandler creates a handler for change request
// listing queries.
func NewGetChangeRequestsQueryHandler(db *gorm.DB) GetChangeRequestsQueryHandler {
	return GetChangeRequestsQueryHandler{db: db}
}

// Handle executes the query. Returns matching change requests newest first,
// each with the settlement amounts derived from its stored quote.
func (h GetChangeRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetChangeRequestsQuery,
) ([]GetChangeRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetChangeRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			user_id,
			new_dinner_type_id,
			new_serving_style,
			new_delivery_time,
			new_delivery_address,
			already_paid,
			recalculated_total,
			change_fee,
			status,
			admin_comment,
			created_at
		FROM change_requests
		WHERE (? = 0 OR user_id = ?)
		  AND (? = '' OR status = ?)
		ORDER BY created_at DESC, id DESC
	`, query.UserID(), query.UserID(), query.Status(), query.Status()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetChangeRequestsQueryResponse
		var recalculatedTotal int
		err = rows.Scan(
			&resp.RequestID,
			&resp.OrderID,
			&resp.UserID,
			&resp.NewDinnerTypeID,
			&resp.NewServingStyle,
			&resp.NewDeliveryTime,
			&resp.NewDeliveryAddress,
			&resp.AlreadyPaid,
			&recalculatedTotal,
			&resp.ChangeFee,
			&resp.Status,
			&resp.AdminComment,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.NewTotal = recalculatedTotal + resp.ChangeFee
		resp.ExtraCharge = resp.NewTotal - resp.AlreadyPaid
		resp.RequiresAdditionalPayment = resp.ExtraCharge > 0
		resp.RequiresRefund = resp.ExtraCharge < 0
		if resp.RequiresRefund {
			resp.ExpectedRefundAmount = -resp.ExtraCharge
		}

		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
