package commands

import (
	"context"

	"dinner/internal/core/ports"
)

// ReviewOrderCommandHandler applies an admin's approve or reject decision to
// a pending reservation. A rejected order keeps its capacity holds until the
// customer cancels or the nightly sweep expires them.
type ReviewOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewReviewOrderCommandHandler creates a handler for reservation review.
func NewReviewOrderCommandHandler(uowFactory ports.UnitOfWorkFactory) ReviewOrderCommandHandler {
	return ReviewOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the review command.
func (h *ReviewOrderCommandHandler) Handle(ctx context.Context, cmd ReviewOrderCommand) error {
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

	if cmd.Approved() {
		err = aggregate.Approve()
	} else {
		err = aggregate.Reject()
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
