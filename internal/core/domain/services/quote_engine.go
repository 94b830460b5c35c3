package services

import (
	"context"
	"errors"
	"time"

	"dinner/internal/core/domain/model/changereq"
	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
)

// ChangeRequestInput carries the customer's requested new reservation.
type ChangeRequestInput struct {
	OrderID         int64
	UserID          int64
	DinnerTypeID    int64
	ServingStyle    menu.ServingStyle
	DeliveryTime    time.Time
	DeliveryAddress string
	Items           []order.Item
}

// QuoteEngine is a domain service that prices and settles reservation
// changes. Opening a request quotes the money movement; approval collects or
// refunds the difference before any order or inventory mutation, so a failed
// payment leaves everything exactly as it was.
type QuoteEngine struct {
	orders     ports.OrderRepository
	orderItems ports.OrderItemRepository
	requests   ports.ChangeRequestRepository

	ledger  *CapacityLedger
	planner *AssignmentPlanner
	pricing *PricingService
	catalog ports.CatalogRepository
	payment ports.PaymentGateway
}

// NewQuoteEngine creates a QuoteEngine over the given collaborators.
func NewQuoteEngine(
	orders ports.OrderRepository,
	orderItems ports.OrderItemRepository,
	requests ports.ChangeRequestRepository,
	ledger *CapacityLedger,
	planner *AssignmentPlanner,
	pricing *PricingService,
	catalog ports.CatalogRepository,
	payment ports.PaymentGateway,
) (*QuoteEngine, error) {
	if orders == nil {
		return nil, errs.NewValueIsRequiredError("orders")
	}
	if orderItems == nil {
		return nil, errs.NewValueIsRequiredError("orderItems")
	}
	if requests == nil {
		return nil, errs.NewValueIsRequiredError("requests")
	}
	if ledger == nil {
		return nil, errs.NewValueIsRequiredError("ledger")
	}
	if planner == nil {
		return nil, errs.NewValueIsRequiredError("planner")
	}
	if pricing == nil {
		return nil, errs.NewValueIsRequiredError("pricing")
	}
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	if payment == nil {
		return nil, errs.NewValueIsRequiredError("payment")
	}
	return &QuoteEngine{
		orders:     orders,
		orderItems: orderItems,
		requests:   requests,
		ledger:     ledger,
		planner:    planner,
		pricing:    pricing,
		catalog:    catalog,
		payment:    payment,
	}, nil
}

// CreateRequest opens a change request for an approved, still-changeable
// order. If an active request already exists it absorbs the new wish instead
// of a second one being created, so resubmissions are idempotent-by-intent.
func (e *QuoteEngine) CreateRequest(
	ctx context.Context,
	input ChangeRequestInput,
	now time.Time,
) (*changereq.ChangeRequest, error) {
	existing, err := e.validateAndLoad(ctx, input, now)
	if err != nil {
		return nil, err
	}

	// The requested plan must be fulfillable when the request is opened,
	// not only at approval. The order's own reservations in the target
	// window are subtracted, so shrinking an item never trips the check.
	if _, err := e.ledger.ValidateChangePlan(
		ctx, input.OrderID, input.Items, input.DeliveryTime, now,
	); err != nil {
		return nil, err
	}

	quote, err := e.buildQuote(ctx, existing.order, input, now)
	if err != nil {
		return nil, err
	}

	items := toRequestItems(input.Items)

	if existing.request != nil {
		if err := existing.request.Amend(
			input.DinnerTypeID, input.ServingStyle, input.DeliveryTime,
			input.DeliveryAddress, items, quote,
		); err != nil {
			return nil, err
		}
		if err := e.requests.Update(ctx, existing.request); err != nil {
			return nil, err
		}
		return existing.request, nil
	}

	request, err := changereq.NewChangeRequest(
		input.OrderID, input.UserID,
		input.DinnerTypeID, input.ServingStyle, input.DeliveryTime,
		input.DeliveryAddress, items, quote, now,
	)
	if err != nil {
		return nil, err
	}
	if err := e.requests.Add(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Approve settles a change request: the new plan is re-validated against
// capacity, the price difference is charged or refunded, and only then are
// the order, its lines, its reservations and its delivery schedule rewritten.
// A payment failure parks the request and changes nothing else.
func (e *QuoteEngine) Approve(ctx context.Context, requestID int64, now time.Time) error {
	request, err := e.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if !request.IsActive() {
		return errs.NewBusinessRuleError("change request approve",
			"request is not active")
	}

	orderAggregate, err := e.orders.Get(ctx, request.OrderID())
	if err != nil {
		return err
	}

	newItems := toOrderItems(request.Items())
	plan, err := e.ledger.ValidateChangePlan(
		ctx, request.OrderID(), newItems, request.NewDeliveryTime(), now)
	if err != nil {
		return err
	}

	if err := e.settle(ctx, request, orderAggregate); err != nil {
		return err
	}

	if err := e.ledger.ReplaceReservationsForOrder(ctx, request.OrderID(), plan, now); err != nil {
		return err
	}
	if err := e.orderItems.ReplaceAll(ctx, request.OrderID(), newItems); err != nil {
		return err
	}

	if err := orderAggregate.ApplyChange(
		request.NewDinnerTypeID(), request.NewServingStyle(),
		request.NewDeliveryTime(), request.NewDeliveryAddress(),
		request.Quote().NewTotal(),
	); err != nil {
		return err
	}
	if err := e.orders.Update(ctx, orderAggregate); err != nil {
		return err
	}

	// the old delivery plan no longer matches, force re-assignment
	if err := e.planner.CancelScheduleForOrder(ctx, request.OrderID()); err != nil {
		return err
	}

	if err := request.Approve(); err != nil {
		return err
	}
	return e.requests.Update(ctx, request)
}

// Reject declines a change request with the reviewing admin's comment. No
// side effects on the order or inventory.
func (e *QuoteEngine) Reject(ctx context.Context, requestID int64, comment string) error {
	request, err := e.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if err := request.Reject(comment); err != nil {
		return err
	}
	return e.requests.Update(ctx, request)
}

type loadedChange struct {
	order   *order.Order
	request *changereq.ChangeRequest
}

func (e *QuoteEngine) validateAndLoad(
	ctx context.Context,
	input ChangeRequestInput,
	now time.Time,
) (loadedChange, error) {
	orderAggregate, err := e.orders.Get(ctx, input.OrderID)
	if err != nil {
		return loadedChange{}, err
	}

	if orderAggregate.ApprovalStatus() != order.ApprovalApproved {
		return loadedChange{}, errs.NewBusinessRuleError("change request create",
			"order is not approved")
	}
	if !orderAggregate.CanRequestChange(now) {
		return loadedChange{}, errs.NewBusinessRuleError("change cutoff",
			"changes close one day before the reservation date")
	}

	request, err := e.requests.GetActiveByOrder(ctx, input.OrderID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return loadedChange{}, err
	}

	return loadedChange{order: orderAggregate, request: request}, nil
}

func (e *QuoteEngine) buildQuote(
	ctx context.Context,
	orderAggregate *order.Order,
	input ChangeRequestInput,
	now time.Time,
) (changereq.Quote, error) {
	dinnerType, err := e.catalog.GetDinnerType(ctx, input.DinnerTypeID)
	if err != nil {
		return changereq.Quote{}, err
	}
	if dinnerType.RequiresUpgradedStyle() && !input.ServingStyle.IsUpgraded() {
		return changereq.Quote{}, errs.NewBusinessRuleError("serving style",
			"this dinner requires a grand or deluxe serving style")
	}

	recalculated, err := e.pricing.CalculateTotal(ctx, dinnerType, input.ServingStyle, input.Items)
	if err != nil {
		return changereq.Quote{}, err
	}
	recalculated, err = e.pricing.ApplyLoyaltyDiscount(ctx, input.UserID, recalculated)
	if err != nil {
		return changereq.Quote{}, err
	}

	fee := 0
	if orderAggregate.RequiresChangeFee(now) {
		fee = order.ChangeFeeAmount
	}

	return changereq.NewQuote(orderAggregate.TotalPrice(), recalculated, fee)
}

// settle moves the quoted difference before anything else changes. Failures
// park the request with the reason and re-raise so the admin can retry.
func (e *QuoteEngine) settle(
	ctx context.Context,
	request *changereq.ChangeRequest,
	orderAggregate *order.Order,
) error {
	quote := request.Quote()

	switch {
	case quote.RequiresAdditionalPayment():
		_, err := e.payment.Charge(
			ctx, request.UserID(), quote.ExtraCharge(), orderAggregate.PaymentMethod())
		if err != nil {
			if parkErr := request.MarkPaymentFailed(err.Error()); parkErr == nil {
				_ = e.requests.Update(ctx, request)
			}
			return errs.NewPaymentErrorWithCause("charge", "additional charge failed", err)
		}
	case quote.RequiresRefund():
		_, err := e.payment.Refund(
			ctx, request.UserID(), quote.ExpectedRefund(), orderAggregate.PaymentMethod())
		if err != nil {
			if parkErr := request.MarkRefundFailed(err.Error()); parkErr == nil {
				_ = e.requests.Update(ctx, request)
			}
			return errs.NewPaymentErrorWithCause("refund", "refund failed", err)
		}
	}
	return nil
}

func toRequestItems(items []order.Item) []changereq.Item {
	converted := make([]changereq.Item, 0, len(items))
	for _, item := range items {
		converted = append(converted, changereq.Item{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}
	return converted
}

func toOrderItems(items []changereq.Item) []order.Item {
	converted := make([]order.Item, 0, len(items))
	for _, item := range items {
		converted = append(converted, order.Item{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}
	return converted
}
