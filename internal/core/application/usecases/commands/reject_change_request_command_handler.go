package commands

import (
	"context"

	"dinner/internal/core/ports"
)

// RejectChangeRequestCommandHandler declines a reservation change. The order
// and its holds stay exactly as they were.
type RejectChangeRequestCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewRejectChangeRequestCommandHandler creates a handler for change request
// rejection.
func NewRejectChangeRequestCommandHandler(uowFactory ports.UnitOfWorkFactory) RejectChangeRequestCommandHandler {
	return RejectChangeRequestCommandHandler{uowFactory: uowFactory}
}

// Handle processes the rejection command.
func (h *RejectChangeRequestCommandHandler) Handle(ctx context.Context, cmd RejectChangeRequestCommand) error {
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

	requests := uow.ChangeRequestRepository()
	request, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	if err = request.Reject(cmd.Comment()); err != nil {
		return err
	}
	if err = requests.Update(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
