package commands

import (
	"errors"
	"time"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrModifyOrderCommandIsNotConstructed = errors.New(
	"ModifyOrderCommand must be created via NewModifyOrderCommand constructor",
)

// ModifyOrderCommand represents a customer's request to replace a pending
// reservation with new details before cooking starts. The old order is
// cancelled and a fresh one created in its place.
type ModifyOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         int64
	dinnerTypeID    int64
	servingStyle    menu.ServingStyle
	deliveryTime    time.Time
	deliveryAddress string
	items           []order.Item

	guard guard.ConstructorGuard
}

// NewModifyOrderCommand creates a command to replace a pending order.
func NewModifyOrderCommand(
	orderID int64,
	dinnerTypeID int64,
	servingStyle string,
	deliveryTime time.Time,
	deliveryAddress string,
	items []ItemLine,
) (ModifyOrderCommand, error) {
	cmd := ModifyOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDinnerTypeID(dinnerTypeID),
		cmd.setServingStyle(servingStyle),
		cmd.setDelivery(deliveryTime, deliveryAddress),
		cmd.setItems(items),
	); err != nil {
		return ModifyOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ModifyOrderCommand) Validate() error {
	return c.guard.Validate(ErrModifyOrderCommandIsNotConstructed)
}

// OrderID returns the order to replace.
func (c ModifyOrderCommand) OrderID() int64 { return c.orderID }

// DinnerTypeID returns the newly requested dinner's id.
func (c ModifyOrderCommand) DinnerTypeID() int64 { return c.dinnerTypeID }

// ServingStyle returns the newly requested presentation tier.
func (c ModifyOrderCommand) ServingStyle() menu.ServingStyle { return c.servingStyle }

// DeliveryTime returns the new delivery moment.
func (c ModifyOrderCommand) DeliveryTime() time.Time { return c.deliveryTime }

// DeliveryAddress returns the new delivery address.
func (c ModifyOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// Items returns the new item lines.
func (c ModifyOrderCommand) Items() []order.Item { return c.items }

func (c *ModifyOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *ModifyOrderCommand) setDinnerTypeID(dinnerTypeID int64) error {
	if dinnerTypeID <= 0 {
		return errs.NewValueIsRequiredError("dinner type id")
	}
	c.dinnerTypeID = dinnerTypeID
	return nil
}

func (c *ModifyOrderCommand) setServingStyle(raw string) error {
	style, err := menu.ParseServingStyle(raw)
	if err != nil {
		return err
	}
	c.servingStyle = style
	return nil
}

func (c *ModifyOrderCommand) setDelivery(deliveryTime time.Time, address string) error {
	if deliveryTime.IsZero() {
		return errs.NewValueIsRequiredError("delivery time")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	c.deliveryTime = deliveryTime
	c.deliveryAddress = address
	return nil
}

func (c *ModifyOrderCommand) setItems(lines []ItemLine) error {
	items, err := toOrderItems(lines)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}
