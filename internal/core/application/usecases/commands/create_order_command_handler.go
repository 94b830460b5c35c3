package commands

import (
	"context"
	"log/slog"
	"time"

	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/domain/services"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/usergate"
)

const (
	createOrderMaxAttempts    = 10
	createOrderInitialBackoff = 100 * time.Millisecond

	// duplicateWindow is how far back an identical order (same customer,
	// delivery time and address) counts as an accidental double submit.
	duplicateWindow = 5 * time.Second
)

// CreateOrderCommandHandler reserves a dinner delivery: it prices the
// request, validates capacity, and persists the order, its item lines and
// its capacity reservations in one transaction.
//
// Single-writer storage surfaces lock errors under load, so the handler
// retries contended attempts with exponential backoff. Per-customer
// serialization and a minimum interval between orders come from the gate.
type CreateOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogRepository
	pricing    *services.PricingService
	gate       *usergate.Gate
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.CatalogRepository,
	pricing *services.PricingService,
	gate *usergate.Gate,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    pricing,
		gate:       gate,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle processes the order creation command and returns the new order's id.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	release, err := h.gate.Acquire(cmd.UserID())
	if err != nil {
		return 0, errs.NewBusinessRuleError("order rate", err.Error())
	}

	created := false
	defer func() { release(created) }()

	backoff := createOrderInitialBackoff
	for attempt := 1; ; attempt++ {
		orderID, err := h.createOrder(ctx, cmd)
		if err == nil {
			created = true
			return orderID, nil
		}
		if !errs.IsStorageContention(err) || attempt == createOrderMaxAttempts {
			return 0, err
		}

		h.logger.WarnContext(ctx, "storage contention while creating order",
			"user_id", cmd.UserID(), "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (h *CreateOrderCommandHandler) createOrder(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	now := time.Now()

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
	total, err = h.pricing.ApplyLoyaltyDiscount(ctx, cmd.UserID(), total)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger, err := ledgerFor(uow, h.catalog)
	if err != nil {
		return 0, err
	}

	plan, err := ledger.PrepareReservations(ctx, cmd.Items(), cmd.DeliveryTime(), now)
	if err != nil {
		return 0, err
	}

	orderRepo := uow.OrderRepository()
	duplicate, err := orderRepo.ExistsRecentDuplicate(
		ctx, cmd.UserID(), cmd.DeliveryTime(), cmd.DeliveryAddress(), now.Add(-duplicateWindow))
	if err != nil {
		return 0, err
	}
	if duplicate {
		return 0, errs.NewBusinessRuleError("duplicate order",
			"an identical order was just placed")
	}

	newOrder, err := order.NewOrder(
		cmd.UserID(), cmd.DinnerTypeID(), cmd.ServingStyle(),
		cmd.DeliveryTime(), cmd.DeliveryAddress(), total, cmd.PaymentMethod(), now)
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
