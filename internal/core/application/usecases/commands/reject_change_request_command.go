package commands

import (
	"errors"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrRejectChangeRequestCommandIsNotConstructed = errors.New(
	"RejectChangeRequestCommand must be created via NewRejectChangeRequestCommand constructor",
)

// RejectChangeRequestCommand represents an admin declining a reservation
// change with a comment the customer will see.
type RejectChangeRequestCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	comment   string

	guard guard.ConstructorGuard
}

// NewRejectChangeRequestCommand creates a command to reject a change
// request.
func NewRejectChangeRequestCommand(requestID int64, comment string) (RejectChangeRequestCommand, error) {
	cmd := RejectChangeRequestCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setRequestID(requestID); err != nil {
		return RejectChangeRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectChangeRequestCommandIsNotConstructed)
}

// RequestID returns the change request to reject.
func (c RejectChangeRequestCommand) RequestID() int64 { return c.requestID }

// Comment returns the reviewing admin's comment.
func (c RejectChangeRequestCommand) Comment() string { return c.comment }

func (c *RejectChangeRequestCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return errs.NewValueIsRequiredError("request id")
	}
	c.requestID = requestID
	return nil
}
