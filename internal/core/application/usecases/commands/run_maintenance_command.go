package commands

import (
	"errors"
	"time"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrRunMaintenanceCommandIsNotConstructed = errors.New(
	"RunMaintenanceCommand must be created via NewRunMaintenanceCommand constructor",
)

// RunMaintenanceCommand triggers the nightly inventory sweep: purging stale
// reservations, sizing tomorrow's purchase orders from today's demand and
// receiving ordered stock on delivery days.
type RunMaintenanceCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewRunMaintenanceCommand creates the sweep command pinned to now.
func NewRunMaintenanceCommand(now time.Time) (RunMaintenanceCommand, error) {
	if now.IsZero() {
		return RunMaintenanceCommand{}, errs.NewValueIsRequiredError("now")
	}

	return RunMaintenanceCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RunMaintenanceCommand) Validate() error {
	return c.guard.Validate(ErrRunMaintenanceCommandIsNotConstructed)
}

// Now returns the instant the sweep runs at.
func (c RunMaintenanceCommand) Now() time.Time { return c.now }
