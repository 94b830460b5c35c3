package queries

import (
	"errors"
	"time"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

// ErrGetInventorySnapshotQueryIsNotConstructed indicates improper query creation.
var ErrGetInventorySnapshotQueryIsNotConstructed = errors.New(
	"GetInventorySnapshotQuery must be created via NewGetInventorySnapshotQuery constructor",
)

// GetInventorySnapshotQuery reports stock levels and reservation pressure
// per menu item for the day containing the given time.
type GetInventorySnapshotQuery struct {
	at time.Time

	guard guard.ConstructorGuard
}

// NewGetInventorySnapshotQuery creates a validated inventory snapshot query.
func NewGetInventorySnapshotQuery(at time.Time) (GetInventorySnapshotQuery, error) {
	if at.IsZero() {
		return GetInventorySnapshotQuery{}, errs.NewValueIsRequiredError("at")
	}

	return GetInventorySnapshotQuery{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the query was properly constructed.
func (q GetInventorySnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetInventorySnapshotQueryIsNotConstructed)
}

// At returns the time whose day the snapshot describes.
func (q GetInventorySnapshotQuery) At() time.Time { return q.at }

// GetInventorySnapshotQueryResponse is the read model for one tracked menu
// item. ReservedThisWeek covers the week containing the snapshot day,
// starting on Sunday.
type GetInventorySnapshotQueryResponse struct {
	MenuItemID        int64
	MenuItemName      string
	CapacityPerWindow int
	OrderedQuantity   int
	SafetyStock       int
	ReservedToday     int
	RemainingToday    int
	ReservedThisWeek  int
	Notes             string
	LastRestockedAt   *time.Time
}
