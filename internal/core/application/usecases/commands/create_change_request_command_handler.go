package commands

import (
	"context"
	"time"

	"dinner/internal/core/domain/services"
	"dinner/internal/core/ports"
)

// CreateChangeRequestCommandHandler opens (or amends) a change request for
// an approved reservation and returns its id. The quote is computed at
// request time so the customer sees the money movement before an admin
// decides.
type CreateChangeRequestCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogRepository
	employees  ports.EmployeeRepository
	pricing    *services.PricingService
	payment    ports.PaymentGateway
}

// NewCreateChangeRequestCommandHandler creates a handler for opening change
// requests.
func NewCreateChangeRequestCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.CatalogRepository,
	employees ports.EmployeeRepository,
	pricing *services.PricingService,
	payment ports.PaymentGateway,
) CreateChangeRequestCommandHandler {
	return CreateChangeRequestCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		employees:  employees,
		pricing:    pricing,
		payment:    payment,
	}
}

// Handle processes the command and returns the change request's id.
func (h *CreateChangeRequestCommandHandler) Handle(ctx context.Context, cmd CreateChangeRequestCommand) (int64, error) {
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

	engine, err := quoteEngineFor(uow, h.catalog, h.employees, h.pricing, h.payment)
	if err != nil {
		return 0, err
	}

	request, err := engine.CreateRequest(ctx, services.ChangeRequestInput{
		OrderID:         cmd.OrderID(),
		UserID:          cmd.UserID(),
		DinnerTypeID:    cmd.DinnerTypeID(),
		ServingStyle:    cmd.ServingStyle(),
		DeliveryTime:    cmd.DeliveryTime(),
		DeliveryAddress: cmd.DeliveryAddress(),
		Items:           cmd.Items(),
	}, time.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return request.ID(), nil
}
