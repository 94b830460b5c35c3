package commands

import (
	"errors"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrReviewOrderCommandIsNotConstructed = errors.New(
	"ReviewOrderCommand must be created via NewReviewOrderCommand constructor",
)

// ReviewOrderCommand represents an admin's decision on a pending
// reservation: approve it for cooking and delivery, or reject it.
type ReviewOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  int64
	approved bool

	guard guard.ConstructorGuard
}

// NewReviewOrderCommand creates a command carrying the review decision.
func NewReviewOrderCommand(orderID int64, approved bool) (ReviewOrderCommand, error) {
	cmd := ReviewOrderCommand{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ReviewOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewOrderCommand) Validate() error {
	return c.guard.Validate(ErrReviewOrderCommandIsNotConstructed)
}

// OrderID returns the reviewed order's id.
func (c ReviewOrderCommand) OrderID() int64 { return c.orderID }

// Approved reports whether the admin approved the reservation.
func (c ReviewOrderCommand) Approved() bool { return c.approved }

func (c *ReviewOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}
