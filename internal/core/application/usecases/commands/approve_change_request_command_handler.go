package commands

import (
	"context"
	"errors"
	"time"

	"dinner/internal/core/domain/services"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
)

// ApproveChangeRequestCommandHandler settles and applies a reservation
// change. The payment moves first; only then are the order, its lines, its
// capacity holds and its delivery schedule rewritten, all in one
// transaction.
//
// When the charge or refund fails, the engine has parked the request with
// the failure reason and written nothing else, so that single write is
// committed and the failure re-raised to the caller.
type ApproveChangeRequestCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogRepository
	employees  ports.EmployeeRepository
	pricing    *services.PricingService
	payment    ports.PaymentGateway
}

// NewApproveChangeRequestCommandHandler creates a handler for change request
// approval.
func NewApproveChangeRequestCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.CatalogRepository,
	employees ports.EmployeeRepository,
	pricing *services.PricingService,
	payment ports.PaymentGateway,
) ApproveChangeRequestCommandHandler {
	return ApproveChangeRequestCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		employees:  employees,
		pricing:    pricing,
		payment:    payment,
	}
}

// Handle processes the approval command.
func (h *ApproveChangeRequestCommandHandler) Handle(ctx context.Context, cmd ApproveChangeRequestCommand) error {
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

	engine, err := quoteEngineFor(uow, h.catalog, h.employees, h.pricing, h.payment)
	if err != nil {
		return err
	}

	if err = engine.Approve(ctx, cmd.RequestID(), time.Now()); err != nil {
		if errors.Is(err, errs.ErrPaymentFailed) {
			// keep the parked request, everything else was left untouched
			_ = uow.Commit(ctx)
		}
		return err
	}

	return uow.Commit(ctx)
}
