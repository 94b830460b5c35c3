package commands

import (
	"context"
	"time"

	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/domain/services"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
)

// ModifyOrderCommandHandler replaces a pending reservation with new details.
// The old order is cancelled and a new one created in the same transaction,
// with the held capacity moved over as a unit. Modifying on the delivery day
// itself carries a flat surcharge.
type ModifyOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogRepository
	pricing    *services.PricingService
}

// NewModifyOrderCommandHandler creates a handler for order modification.
func NewModifyOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.CatalogRepository,
	pricing *services.PricingService,
) ModifyOrderCommandHandler {
	return ModifyOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    pricing,
	}
}

// Handle processes the modification command and returns the replacement
// order's id.
func (h *ModifyOrderCommandHandler) Handle(ctx context.Context, cmd ModifyOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	oldOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}
	if !oldOrder.CanModify(now) {
		return 0, errs.NewBusinessRuleError("order modification",
			"orders can be modified until three hours before delivery, while still pending")
	}

	dinnerType, err := h.catalog.GetDinnerType(ctx, cmd.DinnerTypeID())
	if err != nil {
		return 0, err
	}
	if dinnerType.RequiresUpgradedStyle() && !cmd.ServingStyle().IsUpgraded() {
		return 0, errs.NewBusinessRuleError("serving style",
			"this dinner requires a grand or deluxe serving style")
	}

	total, err := h.pricing.CalculateTotal(ctx, dinnerType, cmd.ServingStyle(), cmd.Items())
	if err != nil {
		return 0, err
	}
	total, err = h.pricing.ApplyLoyaltyDiscount(ctx, oldOrder.UserID(), total)
	if err != nil {
		return 0, err
	}
	if oldOrder.IsSameDayModification(now) {
		total += order.SameDayModificationFee
	}

	ledger, err := ledgerFor(uow, h.catalog)
	if err != nil {
		return 0, err
	}

	// validate against capacity with the old order's holds subtracted,
	// since they are released in this same transaction
	plan, err := ledger.ValidateChangePlan(ctx, cmd.OrderID(), cmd.Items(), cmd.DeliveryTime(), now)
	if err != nil {
		return 0, err
	}

	if err = oldOrder.Cancel(); err != nil {
		return 0, err
	}
	if err = orderRepo.Update(ctx, oldOrder); err != nil {
		return 0, err
	}
	if err = ledger.ReleaseReservationsForOrder(ctx, cmd.OrderID()); err != nil {
		return 0, err
	}

	newOrder, err := order.NewOrder(
		oldOrder.UserID(), cmd.DinnerTypeID(), cmd.ServingStyle(),
		cmd.DeliveryTime(), cmd.DeliveryAddress(), total, oldOrder.PaymentMethod(), now)
	if err != nil {
		return 0, err
	}
	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return 0, err
	}
	if err = uow.OrderItemRepository().AddAll(ctx, newOrder.ID(), cmd.Items()); err != nil {
		return 0, err
	}
	if err = ledger.CommitReservations(ctx, newOrder.ID(), plan, now); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return newOrder.ID(), nil
}
