package commands

import (
	"errors"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrScheduleDeliveryCommandIsNotConstructed = errors.New(
	"ScheduleDeliveryCommand must be created via NewScheduleDeliveryCommand constructor",
)

// ScheduleDeliveryCommand represents a request to plan the delivery run for
// an approved reservation: pick a courier and book their departure and
// return around the delivery time.
type ScheduleDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewScheduleDeliveryCommand creates a command to plan an order's delivery.
func NewScheduleDeliveryCommand(orderID int64) (ScheduleDeliveryCommand, error) {
	cmd := ScheduleDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ScheduleDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScheduleDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrScheduleDeliveryCommandIsNotConstructed)
}

// OrderID returns the order to plan a delivery run for.
func (c ScheduleDeliveryCommand) OrderID() int64 { return c.orderID }

func (c *ScheduleDeliveryCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}
