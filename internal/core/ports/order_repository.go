package ports

import (
	"context"
	"time"

	"dinner/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate and assigns its identifier.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAllByUser retrieves a customer's orders, newest first.
	GetAllByUser(ctx context.Context, userID int64) ([]*order.Order, error)

	// GetAllByStatus retrieves all orders in the given status.
	GetAllByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// CountDeliveredByUser counts a customer's delivered orders, used for
	// the loyalty discount threshold.
	CountDeliveredByUser(ctx context.Context, userID int64) (int, error)

	// ExistsRecentDuplicate reports whether the customer already placed an
	// order with the same delivery time and address at or after the given
	// moment. Used to drop accidental double submissions.
	ExistsRecentDuplicate(
		ctx context.Context,
		userID int64,
		deliveryTime time.Time,
		deliveryAddress string,
		since time.Time,
	) (bool, error)
}

// OrderItemRepository defines the persistence contract for order lines.
type OrderItemRepository interface {
	// AddAll persists the lines of an order.
	AddAll(ctx context.Context, orderID int64, items []order.Item) error

	// GetByOrder retrieves the lines of an order.
	GetByOrder(ctx context.Context, orderID int64) ([]order.Item, error)

	// ReplaceAll swaps the lines of an order for a new set, used when a
	// change request completes.
	ReplaceAll(ctx context.Context, orderID int64, items []order.Item) error
}
