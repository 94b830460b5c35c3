package services_test

import (
	"context"
	"testing"

	"dinner/internal/core/domain/model/account"
	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPricing(t *testing.T) (*services.PricingService, *MockCatalogRepository, *MockOrderRepository, *MockUserRepository) {
	t.Helper()
	catalog := &MockCatalogRepository{}
	orders := &MockOrderRepository{}
	users := &MockUserRepository{}
	pricing, err := services.NewPricingService(catalog, orders, users)
	require.NoError(t, err)
	return pricing, catalog, orders, users
}

func valentineDinner() menu.DinnerType {
	return menu.DinnerType{ID: 1, Name: "발렌타인 디너", NameEn: "Valentine", BasePrice: 100000}
}

func TestPricingServiceCalculateTotal(t *testing.T) {
	ctx := context.Background()

	t.Run("should charge only quantities above the bundled default", func(t *testing.T) {
		pricing, catalog, _, _ := newPricing(t)

		catalog.On("GetBundleItems", ctx, int64(1)).
			Return([]menu.BundleItem{{DinnerTypeID: 1, MenuItemID: 10, Quantity: 2}}, nil).Once()
		catalog.On("GetMenuItem", ctx, int64(10)).Return(menuSteak(), nil).Once()

		total, err := pricing.CalculateTotal(ctx, valentineDinner(), menu.StyleSimple,
			[]order.Item{{MenuItemID: 10, Quantity: 4}})
		require.NoError(t, err)
		assert.Equal(t, 100000+2*25000, total)
	})

	t.Run("should not refund removed bundle items", func(t *testing.T) {
		pricing, catalog, _, _ := newPricing(t)

		catalog.On("GetBundleItems", ctx, int64(1)).
			Return([]menu.BundleItem{{DinnerTypeID: 1, MenuItemID: 10, Quantity: 2}}, nil).Once()

		total, err := pricing.CalculateTotal(ctx, valentineDinner(), menu.StyleSimple,
			[]order.Item{{MenuItemID: 10, Quantity: 1}})
		require.NoError(t, err)
		assert.Equal(t, 100000, total)
	})

	t.Run("should scale the base price by serving style", func(t *testing.T) {
		pricing, catalog, _, _ := newPricing(t)

		catalog.On("GetBundleItems", ctx, int64(1)).Return([]menu.BundleItem{}, nil).Once()

		total, err := pricing.CalculateTotal(ctx, valentineDinner(), menu.StyleDeluxe, nil)
		require.NoError(t, err)
		assert.Equal(t, 160000, total)
	})

	t.Run("should reject an unknown serving style", func(t *testing.T) {
		pricing, _, _, _ := newPricing(t)

		_, err := pricing.CalculateTotal(ctx, valentineDinner(), menu.ServingStyle("royal"), nil)
		assert.Error(t, err)
	})
}

func TestPricingServiceApplyLoyaltyDiscount(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	t.Run("should discount a loyal consenting customer by ten percent", func(t *testing.T) {
		pricing, _, orders, users := newPricing(t)

		users.On("Get", ctx, userID).
			Return(account.User{ID: userID, Consent: true, LoyaltyConsent: true}, nil).Once()
		orders.On("CountDeliveredByUser", ctx, userID).
			Return(services.LoyaltyDeliveredThreshold, nil).Once()

		total, err := pricing.ApplyLoyaltyDiscount(ctx, userID, 120000)
		require.NoError(t, err)
		assert.Equal(t, 108000, total)
	})

	t.Run("should round the discounted total to the nearest won", func(t *testing.T) {
		pricing, _, orders, users := newPricing(t)

		users.On("Get", ctx, userID).
			Return(account.User{ID: userID, Consent: true, LoyaltyConsent: true}, nil).Once()
		orders.On("CountDeliveredByUser", ctx, userID).
			Return(services.LoyaltyDeliveredThreshold, nil).Once()

		// 0.9 x 100005 = 90004.5 rounds up, not down
		total, err := pricing.ApplyLoyaltyDiscount(ctx, userID, 100005)
		require.NoError(t, err)
		assert.Equal(t, 90005, total)
	})

	t.Run("should not discount below the delivered threshold", func(t *testing.T) {
		pricing, _, orders, users := newPricing(t)

		users.On("Get", ctx, userID).
			Return(account.User{ID: userID, Consent: true, LoyaltyConsent: true}, nil).Once()
		orders.On("CountDeliveredByUser", ctx, userID).
			Return(services.LoyaltyDeliveredThreshold-1, nil).Once()

		total, err := pricing.ApplyLoyaltyDiscount(ctx, userID, 120000)
		require.NoError(t, err)
		assert.Equal(t, 120000, total)
	})

	t.Run("should not discount without both consents", func(t *testing.T) {
		pricing, _, orders, users := newPricing(t)

		users.On("Get", ctx, userID).
			Return(account.User{ID: userID, Consent: true, LoyaltyConsent: false}, nil).Once()

		total, err := pricing.ApplyLoyaltyDiscount(ctx, userID, 120000)
		require.NoError(t, err)
		assert.Equal(t, 120000, total)
		orders.AssertNotCalled(t, "CountDeliveredByUser", mock.Anything, mock.Anything)
	})
}
