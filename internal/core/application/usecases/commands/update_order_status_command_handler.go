package commands

import (
	"context"

	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/ports"
)

// UpdateOrderStatusCommandHandler advances an order through the kitchen and
// delivery flow. Moving to cooking consumes the order's capacity holds in
// the same transaction, so the held quantities leave the window exactly when
// the kitchen starts using them.
type UpdateOrderStatusCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogRepository
}

// NewUpdateOrderStatusCommandHandler creates a handler for order progress
// updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.CatalogRepository,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the progress update command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch cmd.Target() {
	case order.StatusCooking:
		if err = aggregate.StartCooking(cmd.EmployeeID()); err != nil {
			return err
		}
		ledger, ledgerErr := ledgerFor(uow, h.catalog)
		if ledgerErr != nil {
			return ledgerErr
		}
		if err = ledger.ConsumeReservationsForOrder(ctx, cmd.OrderID()); err != nil {
			return err
		}
	case order.StatusReady:
		err = aggregate.MarkReady()
	case order.StatusOutForDelivery:
		err = aggregate.StartDelivery(cmd.EmployeeID())
	case order.StatusDelivered:
		err = aggregate.MarkDelivered()
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
