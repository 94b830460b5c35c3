package commands

import (
	"context"

	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
)

// ScheduleDeliveryCommandHandler plans the delivery run for an approved
// reservation: the least loaded free courier is booked for one travel leg
// before and after the delivery time, and the order remembers who delivers
// it.
type ScheduleDeliveryCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	employees  ports.EmployeeRepository
}

// NewScheduleDeliveryCommandHandler creates a handler for delivery planning.
func NewScheduleDeliveryCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	employees ports.EmployeeRepository,
) ScheduleDeliveryCommandHandler {
	return ScheduleDeliveryCommandHandler{
		uowFactory: uowFactory,
		employees:  employees,
	}
}

// Handle processes the planning command and returns the booked courier's id.
func (h *ScheduleDeliveryCommandHandler) Handle(ctx context.Context, cmd ScheduleDeliveryCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}
	if aggregate.ApprovalStatus() != order.ApprovalApproved {
		return 0, errs.NewBusinessRuleError("delivery planning",
			"only approved reservations get a delivery run")
	}
	if aggregate.Status().IsFinal() {
		return 0, errs.NewBusinessRuleError("delivery planning",
			"the reservation is already closed")
	}

	planner, err := plannerFor(uow, h.employees)
	if err != nil {
		return 0, err
	}

	assignment, err := planner.PrepareAssignment(ctx, aggregate.DeliveryAddress(), aggregate.DeliveryTime())
	if err != nil {
		return 0, err
	}

	if err = planner.CommitAssignmentForOrder(
		ctx, cmd.OrderID(), assignment.EmployeeID,
		aggregate.DeliveryTime(), aggregate.DeliveryAddress(),
	); err != nil {
		return 0, err
	}

	if err = aggregate.AssignDeliveryEmployee(assignment.EmployeeID); err != nil {
		return 0, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return assignment.EmployeeID, nil
}
