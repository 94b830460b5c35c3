package commands

import (
	"errors"
	"time"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrCreateChangeRequestCommandIsNotConstructed = errors.New(
	"CreateChangeRequestCommand must be created via NewCreateChangeRequestCommand constructor",
)

// CreateChangeRequestCommand represents a customer's wish to change an
// approved reservation: new dinner, style, delivery details and item lines.
// The change only takes effect once an admin approves it.
type CreateChangeRequestCommand struct { //nolint:recvcheck //using for validation
	orderID         int64
	userID          int64
	dinnerTypeID    int64
	servingStyle    menu.ServingStyle
	deliveryTime    time.Time
	deliveryAddress string
	items           []order.Item

	guard guard.ConstructorGuard
}

// NewCreateChangeRequestCommand creates a command to open a change request.
func NewCreateChangeRequestCommand(
	orderID int64,
	userID int64,
	dinnerTypeID int64,
	servingStyle string,
	deliveryTime time.Time,
	deliveryAddress string,
	items []ItemLine,
) (CreateChangeRequestCommand, error) {
	cmd := CreateChangeRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setDinnerTypeID(dinnerTypeID),
		cmd.setServingStyle(servingStyle),
		cmd.setDelivery(deliveryTime, deliveryAddress),
		cmd.setItems(items),
	); err != nil {
		return CreateChangeRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateChangeRequestCommandIsNotConstructed)
}

// OrderID returns the order the change applies to.
func (c CreateChangeRequestCommand) OrderID() int64 { return c.orderID }

// UserID returns the requesting customer's id.
func (c CreateChangeRequestCommand) UserID() int64 { return c.userID }

// DinnerTypeID returns the newly requested dinner's id.
func (c CreateChangeRequestCommand) DinnerTypeID() int64 { return c.dinnerTypeID }

// ServingStyle returns the newly requested presentation tier.
func (c CreateChangeRequestCommand) ServingStyle() menu.ServingStyle { return c.servingStyle }

// DeliveryTime returns the new delivery moment.
func (c CreateChangeRequestCommand) DeliveryTime() time.Time { return c.deliveryTime }

// DeliveryAddress returns the new delivery address.
func (c CreateChangeRequestCommand) DeliveryAddress() string { return c.deliveryAddress }

// Items returns the new item lines.
func (c CreateChangeRequestCommand) Items() []order.Item { return c.items }

func (c *CreateChangeRequestCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *CreateChangeRequestCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsRequiredError("user id")
	}
	c.userID = userID
	return nil
}

func (c *CreateChangeRequestCommand) setDinnerTypeID(dinnerTypeID int64) error {
	if dinnerTypeID <= 0 {
		return errs.NewValueIsRequiredError("dinner type id")
	}
	c.dinnerTypeID = dinnerTypeID
	return nil
}

func (c *CreateChangeRequestCommand) setServingStyle(raw string) error {
	style, err := menu.ParseServingStyle(raw)
	if err != nil {
		return err
	}
	c.servingStyle = style
	return nil
}

func (c *CreateChangeRequestCommand) setDelivery(deliveryTime time.Time, address string) error {
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

func (c *CreateChangeRequestCommand) setItems(lines []ItemLine) error {
	items, err := toOrderItems(lines)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}
