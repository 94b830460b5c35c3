package ports

import (
	"context"

	"dinner/internal/core/domain/model/changereq"
)

// ChangeRequestRepository defines the persistence contract for reservation
// change requests.
type ChangeRequestRepository interface {
	// Add persists a new change request and assigns its identifier.
	Add(ctx context.Context, request *changereq.ChangeRequest) error

	// Update persists changes to an existing change request.
	Update(ctx context.Context, request *changereq.ChangeRequest) error

	// Get retrieves a change request by its identifier.
	Get(ctx context.Context, id int64) (*changereq.ChangeRequest, error)

	// GetActiveByOrder retrieves the order's active request, if any:
	// requested, or parked on a failed payment or refund.
	GetActiveByOrder(ctx context.Context, orderID int64) (*changereq.ChangeRequest, error)

	// GetAllByUser retrieves a customer's change requests, newest first.
	GetAllByUser(ctx context.Context, userID int64) ([]*changereq.ChangeRequest, error)

	// GetAllByStatus retrieves all requests in the given status, for admin
	// review of parked settlements.
	GetAllByStatus(ctx context.Context, status changereq.Status) ([]*changereq.ChangeRequest, error)
}
