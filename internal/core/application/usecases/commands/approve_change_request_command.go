package commands

import (
	"errors"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrApproveChangeRequestCommandIsNotConstructed = errors.New(
	"ApproveChangeRequestCommand must be created via NewApproveChangeRequestCommand constructor",
)

// ApproveChangeRequestCommand represents an admin approving a reservation
// change, settling the quoted price difference and rewriting the order.
type ApproveChangeRequestCommand struct { //nolint:recvcheck //using for validation
	requestID int64

	guard guard.ConstructorGuard
}

// NewApproveChangeRequestCommand creates a command to approve a change
// request.
func NewApproveChangeRequestCommand(requestID int64) (ApproveChangeRequestCommand, error) {
	cmd := ApproveChangeRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRequestID(requestID); err != nil {
		return ApproveChangeRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrApproveChangeRequestCommandIsNotConstructed)
}

// RequestID returns the change request to approve.
func (c ApproveChangeRequestCommand) RequestID() int64 { return c.requestID }

func (c *ApproveChangeRequestCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return errs.NewValueIsRequiredError("request id")
	}
	c.requestID = requestID
	return nil
}
