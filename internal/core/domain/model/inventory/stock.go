package inventory

import (
	"errors"
	"fmt"
	"time"

	"dinner/internal/pkg/errs"
)

// DefaultCapacityPerWindow is the daily capacity an item starts with when a
// stock row is created on first demand.
const DefaultCapacityPerWindow = 20

var (
	// ErrItemStockIsNotConstructed is returned when an ItemStock instance was
	// not created through NewItemStock or RestoreItemStock.
	ErrItemStockIsNotConstructed = errors.New("ItemStock must be created via NewItemStock constructor")
)

// ItemStock tracks the reservable capacity of a single menu item. Capacity
// is per delivery-day window: reservations count against capacityPerWindow
// within their window. orderedQuantity is inventory ordered from the
// supplier but not yet received; on delivery days it is folded into the
// window capacity.
type ItemStock struct {
	id         int64
	menuItemID int64

	capacityPerWindow int
	orderedQuantity   int
	safetyStock       int

	notes           string
	lastRestockedAt *time.Time

	isConstructed bool
}

// NewItemStock creates a stock row for an item with the default capacity.
// Stock rows are created lazily on the first reservation against an item.
func NewItemStock(menuItemID int64) (*ItemStock, error) {
	if menuItemID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("menu item id",
			fmt.Errorf("%d is not a valid menu item id", menuItemID))
	}

	return &ItemStock{
		menuItemID:        menuItemID,
		capacityPerWindow: DefaultCapacityPerWindow,
		isConstructed:     true,
	}, nil
}

// RestoreItemStock reconstructs a stock row from persistence.
func RestoreItemStock(
	id int64,
	menuItemID int64,
	capacityPerWindow int,
	orderedQuantity int,
	safetyStock int,
	notes string,
	lastRestockedAt *time.Time,
) (*ItemStock, error) {
	if menuItemID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("menu item id",
			fmt.Errorf("%d is not a valid menu item id", menuItemID))
	}
	if capacityPerWindow < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%d is negative", capacityPerWindow))
	}
	if orderedQuantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("ordered quantity",
			fmt.Errorf("%d is negative", orderedQuantity))
	}

	return &ItemStock{
		id:                id,
		menuItemID:        menuItemID,
		capacityPerWindow: capacityPerWindow,
		orderedQuantity:   orderedQuantity,
		safetyStock:       safetyStock,
		notes:             notes,
		lastRestockedAt:   lastRestockedAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the ItemStock was properly constructed.
func (s *ItemStock) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrItemStockIsNotConstructed
	}
	return nil
}

// ID returns the stock row identifier (zero until persisted).
func (s *ItemStock) ID() int64 { return s.id }

// SetID records the identifier assigned by the store.
func (s *ItemStock) SetID(id int64) error {
	if s.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("stock id is already set to %d", s.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not a valid stock id", id))
	}
	s.id = id
	return nil
}

// MenuItemID returns the item this stock row tracks.
func (s *ItemStock) MenuItemID() int64 { return s.menuItemID }

// CapacityPerWindow returns how many units can be reserved per delivery day.
func (s *ItemStock) CapacityPerWindow() int { return s.capacityPerWindow }

// OrderedQuantity returns the supplier order not yet received.
func (s *ItemStock) OrderedQuantity() int { return s.orderedQuantity }

// SafetyStock returns the buffer the restock keeps on top of demand.
func (s *ItemStock) SafetyStock() int { return s.safetyStock }

// Notes returns the free-form operator notes on the stock row.
func (s *ItemStock) Notes() string { return s.notes }

// LastRestockedAt returns when the row was last restocked, nil if never.
func (s *ItemStock) LastRestockedAt() *time.Time { return s.lastRestockedAt }

// SetOrderedQuantity records how much was ordered from the supplier for
// this item, pending receipt.
func (s *ItemStock) SetOrderedQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("ordered quantity",
			fmt.Errorf("%d is negative", quantity))
	}
	s.orderedQuantity = quantity
	return nil
}

// ConsumeCapacity deducts consumed quantity from the window capacity,
// flooring at zero.
func (s *ItemStock) ConsumeCapacity(quantity int) {
	s.capacityPerWindow -= quantity
	if s.capacityPerWindow < 0 {
		s.capacityPerWindow = 0
	}
}

// Restock replaces the window capacity and stamps the restock time.
func (s *ItemStock) Restock(capacity int, now time.Time) error {
	if capacity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%d is negative", capacity))
	}
	s.capacityPerWindow = capacity
	s.lastRestockedAt = &now
	return nil
}

// ReceiveOrdered folds the pending supplier order into the window capacity
// and zeroes it, used on supplier delivery days.
func (s *ItemStock) ReceiveOrdered(now time.Time) {
	s.capacityPerWindow += s.orderedQuantity
	s.orderedQuantity = 0
	s.lastRestockedAt = &now
}

// SetNotes replaces the operator notes.
func (s *ItemStock) SetNotes(notes string) {
	s.notes = notes
}
