package commands

import (
	"errors"

	"dinner/internal/core/domain/model/schedule"
	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrUpdateScheduleStatusCommandIsNotConstructed = errors.New(
	"UpdateScheduleStatusCommand must be created via NewUpdateScheduleStatusCommand constructor",
)

// UpdateScheduleStatusCommand represents a courier or admin moving a
// delivery run through its lifecycle: start it, complete it or cancel it.
type UpdateScheduleStatusCommand struct { //nolint:recvcheck //using for validation
	scheduleID  int64
	target      schedule.Status
	requesterID int64
	isAdmin     bool

	guard guard.ConstructorGuard
}

// NewUpdateScheduleStatusCommand creates a command to transition a delivery
// run. Non-admin requesters may only transition their own runs.
func NewUpdateScheduleStatusCommand(
	scheduleID int64,
	target string,
	requesterID int64,
	isAdmin bool,
) (UpdateScheduleStatusCommand, error) {
	cmd := UpdateScheduleStatusCommand{
		isAdmin: isAdmin,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setScheduleID(scheduleID),
		cmd.setTarget(target),
		cmd.setRequesterID(requesterID),
	); err != nil {
		return UpdateScheduleStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateScheduleStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateScheduleStatusCommandIsNotConstructed)
}

// ScheduleID returns the delivery run to transition.
func (c UpdateScheduleStatusCommand) ScheduleID() int64 { return c.scheduleID }

// Target returns the requested run status.
func (c UpdateScheduleStatusCommand) Target() schedule.Status { return c.target }

// RequesterID returns who asks for the transition.
func (c UpdateScheduleStatusCommand) RequesterID() int64 { return c.requesterID }

// IsAdmin reports whether the requester acts with admin rights.
func (c UpdateScheduleStatusCommand) IsAdmin() bool { return c.isAdmin }

func (c *UpdateScheduleStatusCommand) setScheduleID(scheduleID int64) error {
	if scheduleID <= 0 {
		return errs.NewValueIsRequiredError("schedule id")
	}
	c.scheduleID = scheduleID
	return nil
}

func (c *UpdateScheduleStatusCommand) setTarget(raw string) error {
	target, err := schedule.ParseStatus(raw)
	if err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *UpdateScheduleStatusCommand) setRequesterID(requesterID int64) error {
	if requesterID <= 0 {
		return errs.NewValueIsRequiredError("requester id")
	}
	c.requesterID = requesterID
	return nil
}
