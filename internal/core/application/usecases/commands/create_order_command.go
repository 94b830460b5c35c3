package commands

import (
	"errors"
	"time"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request to reserve a dinner
// delivery: which dinner, in which serving style, delivered when and where,
// with which item lines on top of the bundled defaults.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, dinnerID, "grand",
//	    deliveryTime, "서울 강남구 역삼동 12", "CARD",
//	    []ItemLine{{MenuItemID: steakID, Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID          int64
	dinnerTypeID    int64
	servingStyle    menu.ServingStyle
	deliveryTime    time.Time
	deliveryAddress string
	paymentMethod   string
	items           []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to reserve a dinner delivery.
// Validates ids, the serving style, the delivery details and every item line.
func NewCreateOrderCommand(
	userID int64,
	dinnerTypeID int64,
	servingStyle string,
	deliveryTime time.Time,
	deliveryAddress string,
	paymentMethod string,
	items []ItemLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setDinnerTypeID(dinnerTypeID),
		cmd.setServingStyle(servingStyle),
		cmd.setDelivery(deliveryTime, deliveryAddress),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the ordering customer's id.
func (c CreateOrderCommand) UserID() int64 { return c.userID }

// DinnerTypeID returns the requested dinner's id.
func (c CreateOrderCommand) DinnerTypeID() int64 { return c.dinnerTypeID }

// ServingStyle returns the requested presentation tier.
func (c CreateOrderCommand) ServingStyle() menu.ServingStyle { return c.servingStyle }

// DeliveryTime returns when the dinner should arrive.
func (c CreateOrderCommand) DeliveryTime() time.Time { return c.deliveryTime }

// DeliveryAddress returns where the dinner should arrive.
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// PaymentMethod returns how the customer pays.
func (c CreateOrderCommand) PaymentMethod() string { return c.paymentMethod }

// Items returns the validated item lines.
func (c CreateOrderCommand) Items() []order.Item { return c.items }

func (c *CreateOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsRequiredError("user id")
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setDinnerTypeID(dinnerTypeID int64) error {
	if dinnerTypeID <= 0 {
		return errs.NewValueIsRequiredError("dinner type id")
	}
	c.dinnerTypeID = dinnerTypeID
	return nil
}

func (c *CreateOrderCommand) setServingStyle(raw string) error {
	style, err := menu.ParseServingStyle(raw)
	if err != nil {
		return err
	}
	c.servingStyle = style
	return nil
}

func (c *CreateOrderCommand) setDelivery(deliveryTime time.Time, address string) error {
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

func (c *CreateOrderCommand) setPaymentMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setItems(lines []ItemLine) error {
	items, err := toOrderItems(lines)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}
