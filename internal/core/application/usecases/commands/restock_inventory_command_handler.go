package commands

import (
	"context"
	"time"

	"dinner/internal/core/ports"
)

// RestockInventoryCommandHandler applies a manual restock to a stock row,
// creating the row at the default capacity first if the item has none.
type RestockInventoryCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogRepository
}

// NewRestockInventoryCommandHandler creates the handler.
func NewRestockInventoryCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.CatalogRepository,
) RestockInventoryCommandHandler {
	return RestockInventoryCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the restock command.
func (h *RestockInventoryCommandHandler) Handle(ctx context.Context, cmd RestockInventoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	ledger, err := ledgerFor(uow, h.catalog)
	if err != nil {
		return err
	}
	if err := ledger.Restock(ctx, cmd.MenuItemID(), cmd.Capacity(), cmd.Notes(), time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
