package commands

import (
	"errors"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrRestockInventoryCommandIsNotConstructed = errors.New(
	"RestockInventoryCommand must be created via NewRestockInventoryCommand constructor",
)

// RestockInventoryCommand is the admin surface for manual inventory
// management: replace an item's window capacity and annotate the stock row.
type RestockInventoryCommand struct { //nolint:recvcheck //using for validation
	menuItemID int64
	capacity   int
	notes      string

	guard guard.ConstructorGuard
}

// NewRestockInventoryCommand creates a command to restock a menu item.
func NewRestockInventoryCommand(menuItemID int64, capacity int, notes string) (RestockInventoryCommand, error) {
	cmd := RestockInventoryCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMenuItemID(menuItemID),
		cmd.setCapacity(capacity),
	); err != nil {
		return RestockInventoryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RestockInventoryCommand) Validate() error {
	return c.guard.Validate(ErrRestockInventoryCommandIsNotConstructed)
}

// MenuItemID returns the item to restock.
func (c RestockInventoryCommand) MenuItemID() int64 { return c.menuItemID }

// Capacity returns the new per-window capacity.
func (c RestockInventoryCommand) Capacity() int { return c.capacity }

// Notes returns the admin annotation for the stock row.
func (c RestockInventoryCommand) Notes() string { return c.notes }

func (c *RestockInventoryCommand) setMenuItemID(menuItemID int64) error {
	if menuItemID <= 0 {
		return errs.NewValueIsRequiredError("menu item id")
	}
	c.menuItemID = menuItemID
	return nil
}

func (c *RestockInventoryCommand) setCapacity(capacity int) error {
	if capacity < 0 {
		return errs.NewValueIsInvalidError("capacity")
	}
	c.capacity = capacity
	return nil
}
