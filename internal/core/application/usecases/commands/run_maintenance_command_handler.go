package commands

import (
	"context"
	"log/slog"
	"math"
	"time"

	"dinner/internal/core/domain/model/kernel"
	"dinner/internal/core/ports"
)

// restockHeadroom sizes the restored capacity and the next purchase order
// above observed demand so a slow supplier day does not starve the kitchen.
const restockHeadroom = 1.1

const nightlyRestockNote = "nightly demand restock"

// RunMaintenanceCommandHandler performs the nightly inventory sweep.
type RunMaintenanceCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogRepository
	logger     *slog.Logger
}

// NewRunMaintenanceCommandHandler creates the handler.
func NewRunMaintenanceCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.CatalogRepository,
	logger *slog.Logger,
) RunMaintenanceCommandHandler {
	return RunMaintenanceCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		logger:     logger.With("component", "inventory_maintenance"),
	}
}

// Handle purges stale reservations, resets today's window capacity to
// observed demand plus headroom, records the matching purchase orders and,
// on supplier delivery days, folds received stock into capacity.
func (h *RunMaintenanceCommandHandler) Handle(ctx context.Context, cmd RunMaintenanceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := cmd.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	ledger, err := ledgerFor(uow, h.catalog)
	if err != nil {
		return err
	}

	expired, err := ledger.PurgeExpired(ctx, now)
	if err != nil {
		return err
	}
	past, err := ledger.PurgePastWindows(ctx, now)
	if err != nil {
		return err
	}

	window, err := kernel.NewWindowForTime(now)
	if err != nil {
		return err
	}
	demand, err := uow.ReservationRepository().SumTodayDemandByItem(ctx, window)
	if err != nil {
		return err
	}
	for menuItemID, quantity := range demand {
		restocked := int(math.Ceil(float64(quantity) * restockHeadroom))
		if err := ledger.Restock(ctx, menuItemID, restocked, nightlyRestockNote, now); err != nil {
			return err
		}
		if err := ledger.SetOrderedQuantity(ctx, menuItemID, restocked); err != nil {
			return err
		}
	}

	received := 0
	if isSupplierDeliveryDay(now) {
		stocks, err := uow.StockRepository().GetAll(ctx)
		if err != nil {
			return err
		}
		for _, stock := range stocks {
			if stock.OrderedQuantity() == 0 {
				continue
			}
			if err := ledger.ReceiveOrderedInventory(ctx, stock.MenuItemID(), now); err != nil {
				return err
			}
			received++
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "inventory sweep finished",
		"expired_purged", expired,
		"past_purged", past,
		"restocked_items", len(demand),
		"received_items", received,
	)
	return nil
}

// Supplier trucks arrive Monday and Friday mornings.
func isSupplierDeliveryDay(now time.Time) bool {
	return now.Weekday() == time.Monday || now.Weekday() == time.Friday
}
