package commands

import (
	"context"

	"dinner/internal/core/ports"
)

// UpdateScheduleStatusCommandHandler transitions a delivery run through its
// lifecycle on behalf of the assigned courier or an admin.
type UpdateScheduleStatusCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	employees  ports.EmployeeRepository
}

// NewUpdateScheduleStatusCommandHandler creates the handler.
func NewUpdateScheduleStatusCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	employees ports.EmployeeRepository,
) UpdateScheduleStatusCommandHandler {
	return UpdateScheduleStatusCommandHandler{
		uowFactory: uowFactory,
		employees:  employees,
	}
}

// Handle applies the requested transition to the delivery run.
func (h *UpdateScheduleStatusCommandHandler) Handle(ctx context.Context, cmd UpdateScheduleStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	planner, err := plannerFor(uow, h.employees)
	if err != nil {
		return err
	}
	if err := planner.UpdateStatus(ctx, cmd.ScheduleID(), cmd.Target(), cmd.RequesterID(), cmd.IsAdmin()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
