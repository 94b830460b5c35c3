package order

import (
	"fmt"

	"dinner/internal/pkg/errs"
)

// Item is a single line of an order: a menu item and the quantity the
// customer wants. Quantities start from the dinner type's bundle defaults
// and reflect any additions or removals the customer made.
type Item struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Quantity   int
}

// NewItem creates an order line with validation. Zero-quantity lines are
// dropped before they reach here, so quantity must be positive.
func NewItem(menuItemID int64, quantity int) (Item, error) {
	if menuItemID <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("menu item id",
			fmt.Errorf("%d is not a valid menu item id", menuItemID))
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Item{MenuItemID: menuItemID, Quantity: quantity}, nil
}
