package ports

import (
	"context"
	"time"

	"dinner/internal/core/domain/model/inventory"
	"dinner/internal/core/domain/model/kernel"
)

// StockRepository defines the persistence contract for item stock rows.
type StockRepository interface {
	// Add persists a new stock row and assigns its identifier.
	Add(ctx context.Context, stock *inventory.ItemStock) error

	// Update persists changes to an existing stock row.
	Update(ctx context.Context, stock *inventory.ItemStock) error

	// GetByMenuItem retrieves the stock row for an item. Returns an
	// object-not-found error when no row exists yet.
	GetByMenuItem(ctx context.Context, menuItemID int64) (*inventory.ItemStock, error)

	// GetAll retrieves every stock row.
	GetAll(ctx context.Context) ([]*inventory.ItemStock, error)
}

// ReservationRepository defines the persistence contract for capacity
// reservations.
type ReservationRepository interface {
	// Add persists a new reservation and assigns its identifier.
	Add(ctx context.Context, reservation *inventory.Reservation) error

	// Update persists changes to an existing reservation.
	Update(ctx context.Context, reservation *inventory.Reservation) error

	// GetByOrder retrieves all reservations held by an order.
	GetByOrder(ctx context.Context, orderID int64) ([]*inventory.Reservation, error)

	// GetUnconsumedByOrder retrieves the order's reservations the kitchen
	// has not used yet.
	GetUnconsumedByOrder(ctx context.Context, orderID int64) ([]*inventory.Reservation, error)

	// SumActiveQuantityInWindow sums the unconsumed, unexpired quantity
	// held for an item inside the window.
	SumActiveQuantityInWindow(ctx context.Context, menuItemID int64, window kernel.Window, now time.Time) (int, error)

	// DeleteByOrder removes an order's reservations, releasing its holds.
	DeleteByOrder(ctx context.Context, orderID int64) error

	// DeleteExpired removes unconsumed reservations past their expiry.
	// Returns the number of purged rows.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// DeletePastWindows removes reservations whose window ended before now.
	// Returns the number of purged rows.
	DeletePastWindows(ctx context.Context, now time.Time) (int64, error)

	// SumTodayDemandByItem sums reserved quantity per item for the given
	// window, feeding the nightly restock.
	SumTodayDemandByItem(ctx context.Context, window kernel.Window) (map[int64]int, error)
}
