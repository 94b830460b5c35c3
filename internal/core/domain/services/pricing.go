package services

import (
	"context"
	"math"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
)

// LoyaltyDeliveredThreshold is how many delivered orders a consenting
// customer needs before the loyalty discount applies.
const LoyaltyDeliveredThreshold = 5

// loyaltyDiscountRate is the loyalty discount as a fraction of the total.
const loyaltyDiscountRate = 0.10

// PricingService computes order totals from the catalog: the dinner's base
// price scaled by serving style, plus every item quantity above the dinner's
// bundled default charged at unit price. Removals are not refunded.
type PricingService struct {
	catalog ports.CatalogRepository
	orders  ports.OrderRepository
	users   ports.UserRepository
}

// NewPricingService creates a PricingService over the given repositories.
func NewPricingService(
	catalog ports.CatalogRepository,
	orders ports.OrderRepository,
	users ports.UserRepository,
) (*PricingService, error) {
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	if orders == nil {
		return nil, errs.NewValueIsRequiredError("orders")
	}
	if users == nil {
		return nil, errs.NewValueIsRequiredError("users")
	}
	return &PricingService{catalog: catalog, orders: orders, users: users}, nil
}

// CalculateTotal prices a dinner in the given style with the requested item
// lines.
func (p *PricingService) CalculateTotal(
	ctx context.Context,
	dinnerType menu.DinnerType,
	style menu.ServingStyle,
	items []order.Item,
) (int, error) {
	if err := style.Validate(); err != nil {
		return 0, err
	}

	total := dinnerType.PriceFor(style)

	bundle, err := p.catalog.GetBundleItems(ctx, dinnerType.ID)
	if err != nil {
		return 0, err
	}
	defaults := make(map[int64]int, len(bundle))
	for _, line := range bundle {
		defaults[line.MenuItemID] = line.Quantity
	}

	for _, item := range items {
		extra := item.Quantity - defaults[item.MenuItemID]
		if extra <= 0 {
			continue
		}
		menuItem, err := p.catalog.GetMenuItem(ctx, item.MenuItemID)
		if err != nil {
			return 0, err
		}
		total += extra * menuItem.Price
	}

	return total, nil
}

// ApplyLoyaltyDiscount discounts the total by 10% when the customer opted
// into the loyalty program and has enough delivered orders.
func (p *PricingService) ApplyLoyaltyDiscount(ctx context.Context, userID int64, total int) (int, error) {
	user, err := p.users.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !user.IsLoyaltyEligible() {
		return total, nil
	}

	delivered, err := p.orders.CountDeliveredByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if delivered < LoyaltyDeliveredThreshold {
		return total, nil
	}

	return int(math.Round(float64(total) * (1 - loyaltyDiscountRate))), nil
}
