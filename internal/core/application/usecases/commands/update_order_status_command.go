package commands

import (
	"errors"

	"dinner/internal/core/domain/model/order"
	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a kitchen or delivery progress update:
// the order starts cooking, is plated and ready, leaves with a courier, or
// is handed to the customer. Cancellation goes through CancelOrderCommand.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    int64
	target     order.Status
	employeeID int64

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to advance an order. The
// employee id identifies the cook or courier taking the step and is required
// for cooking and out-for-delivery transitions.
func NewUpdateOrderStatusCommand(orderID int64, target string, employeeID int64) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		employeeID: employeeID,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c UpdateOrderStatusCommand) OrderID() int64 { return c.orderID }

// Target returns the requested status.
func (c UpdateOrderStatusCommand) Target() order.Status { return c.target }

// EmployeeID returns the acting cook or courier, zero when not applicable.
func (c UpdateOrderStatusCommand) EmployeeID() int64 { return c.employeeID }

func (c *UpdateOrderStatusCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(raw string) error {
	target, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}

	switch target {
	case order.StatusCooking, order.StatusReady, order.StatusOutForDelivery, order.StatusDelivered:
	default:
		return errs.NewValueIsInvalidError("target status")
	}

	if (target == order.StatusCooking || target == order.StatusOutForDelivery) && c.employeeID <= 0 {
		return errs.NewValueIsRequiredError("employee id")
	}

	c.target = target
	return nil
}
