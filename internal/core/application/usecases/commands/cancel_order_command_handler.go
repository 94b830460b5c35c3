package commands

import (
	"context"
	"log/slog"

	"dinner/internal/core/ports"
)

// CancelOrderCommandHandler cancels a reservation. The status change is the
// transactional part; freeing held capacity and cancelling the delivery run
// are compensations that must not block the cancellation itself, so their
// failures are logged and left to the nightly maintenance sweep.
type CancelOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogRepository
	employees  ports.EmployeeRepository
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.CatalogRepository,
	employees ports.EmployeeRepository,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		employees:  employees,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if err = aggregate.Cancel(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.compensate(ctx, cmd.OrderID())
	return nil
}

// compensate frees the cancelled order's capacity holds and delivery run in
// a separate transaction.
func (h *CancelOrderCommandHandler) compensate(ctx context.Context, orderID int64) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to open compensation transaction",
			"order_id", orderID, "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger, err := ledgerFor(uow, h.catalog)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build capacity ledger",
			"order_id", orderID, "error", err)
		return
	}
	if err = ledger.ReleaseReservationsForOrder(ctx, orderID); err != nil {
		h.logger.ErrorContext(ctx, "failed to release reservations for cancelled order",
			"order_id", orderID, "error", err)
		return
	}

	planner, err := plannerFor(uow, h.employees)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build assignment planner",
			"order_id", orderID, "error", err)
		return
	}
	if err = planner.CancelScheduleForOrder(ctx, orderID); err != nil {
		h.logger.ErrorContext(ctx, "failed to cancel schedule for cancelled order",
			"order_id", orderID, "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit cancellation compensations",
			"order_id", orderID, "error", err)
	}
}
