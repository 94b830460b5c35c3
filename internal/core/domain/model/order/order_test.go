package order_test

import (
	"testing"
	"time"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, deliveryTime time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		1, 2, menu.StyleGrand,
		deliveryTime, "123 Gangnam-daero", 130000, "CARD",
		deliveryTime.Add(-48*time.Hour),
	)
	require.NoError(t, err)
	return o
}

func TestOrder_NewOrder(t *testing.T) {
	deliveryTime := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)

	t.Run("should create pending order awaiting approval", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.ApprovalPending, o.ApprovalStatus())
		assert.Nil(t, o.CookingEmployeeID())
		assert.Nil(t, o.DeliveryEmployeeID())
		assert.NoError(t, o.Validate())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		now := time.Now()

		_, err := order.NewOrder(0, 2, menu.StyleSimple, deliveryTime, "addr", 1000, "CARD", now)
		assert.Error(t, err, "zero user id")

		_, err = order.NewOrder(1, 2, menu.ServingStyle("royal"), deliveryTime, "addr", 1000, "CARD", now)
		assert.Error(t, err, "unknown serving style")

		_, err = order.NewOrder(1, 2, menu.StyleSimple, time.Time{}, "addr", 1000, "CARD", now)
		assert.Error(t, err, "zero delivery time")

		_, err = order.NewOrder(1, 2, menu.StyleSimple, deliveryTime, "", 1000, "CARD", now)
		assert.Error(t, err, "empty address")

		_, err = order.NewOrder(1, 2, menu.StyleSimple, deliveryTime, "addr", -1, "CARD", now)
		assert.Error(t, err, "negative price")
	})

	t.Run("should reject unconstructed order", func(t *testing.T) {
		var o order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	deliveryTime := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)

	t.Run("should walk the kitchen workflow", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)

		require.NoError(t, o.StartCooking(7))
		assert.Equal(t, order.StatusCooking, o.Status())
		require.NotNil(t, o.CookingEmployeeID())
		assert.Equal(t, int64(7), *o.CookingEmployeeID())

		require.NoError(t, o.MarkReady())
		require.NoError(t, o.StartDelivery(9))
		assert.Equal(t, order.StatusOutForDelivery, o.Status())
		require.NotNil(t, o.DeliveryEmployeeID())
		assert.Equal(t, int64(9), *o.DeliveryEmployeeID())

		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, order.StatusDelivered, o.Status())
	})

	t.Run("should treat repeated delivery as no-op", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.MarkDelivered())

		assert.NoError(t, o.MarkDelivered())
		assert.Equal(t, order.StatusDelivered, o.Status())
	})

	t.Run("should not deliver a cancelled order", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.Cancel())

		assert.Error(t, o.MarkDelivered())
	})

	t.Run("should not cancel a delivered order", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.MarkDelivered())

		assert.Error(t, o.Cancel())
	})

	t.Run("should cancel approval together with order", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.Approve())
		require.NoError(t, o.Cancel())

		assert.Equal(t, order.ApprovalCancelled, o.ApprovalStatus())
	})

	t.Run("should keep rejection when cancelled", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.Reject())
		require.NoError(t, o.Cancel())

		assert.Equal(t, order.ApprovalRejected, o.ApprovalStatus())
	})
}

func TestOrder_ModificationPolicy(t *testing.T) {
	deliveryTime := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)

	t.Run("should allow modification three hours or more before delivery", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)

		assert.True(t, o.CanModify(deliveryTime.Add(-3*time.Hour)))
		assert.True(t, o.CanModify(deliveryTime.Add(-24*time.Hour)))
	})

	t.Run("should reject modification under three hours", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)

		assert.False(t, o.CanModify(deliveryTime.Add(-2*time.Hour)))
		assert.False(t, o.CanModify(deliveryTime.Add(time.Hour)))
	})

	t.Run("should reject modification once cooking started", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.StartCooking(7))

		assert.False(t, o.CanModify(deliveryTime.Add(-24*time.Hour)))
	})

	t.Run("should detect same-day modification", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)

		assert.True(t, o.IsSameDayModification(time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)))
		assert.False(t, o.IsSameDayModification(time.Date(2026, 9, 9, 23, 0, 0, 0, time.UTC)))
	})
}

func TestOrder_ChangeRequestPolicy(t *testing.T) {
	// reservation date is 2026-09-10
	deliveryTime := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 10, 0, 0, 0, time.UTC)
	}

	t.Run("should close changes one day before the reservation", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)

		assert.True(t, o.CanRequestChange(day(7)))
		assert.True(t, o.CanRequestChange(day(8)))
		assert.False(t, o.CanRequestChange(day(9)))
		assert.False(t, o.CanRequestChange(day(10)))
	})

	t.Run("should charge the fee only inside the exclusive window", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)

		assert.False(t, o.RequiresChangeFee(day(6)), "before window")
		assert.False(t, o.RequiresChangeFee(day(7)), "lower bound excluded")
		assert.True(t, o.RequiresChangeFee(day(8)), "inside window")
		assert.False(t, o.RequiresChangeFee(day(9)), "upper bound excluded")
		assert.False(t, o.RequiresChangeFee(day(10)), "reservation day")
	})

	t.Run("should reject change requests on final orders", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.Cancel())

		assert.False(t, o.CanRequestChange(day(7)))
	})
}

func TestOrder_ApplyChange(t *testing.T) {
	deliveryTime := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)

	t.Run("should overwrite details and clear courier", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.AssignDeliveryEmployee(9))

		newTime := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
		err := o.ApplyChange(5, menu.StyleDeluxe, newTime, "456 Mapo-daero", 160000)
		require.NoError(t, err)

		assert.Equal(t, int64(5), o.DinnerTypeID())
		assert.Equal(t, menu.StyleDeluxe, o.ServingStyle())
		assert.Equal(t, newTime, o.DeliveryTime())
		assert.Equal(t, "456 Mapo-daero", o.DeliveryAddress())
		assert.Equal(t, 160000, o.TotalPrice())
		assert.Nil(t, o.DeliveryEmployeeID())
	})

	t.Run("should reject change on final order", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		require.NoError(t, o.MarkDelivered())

		err := o.ApplyChange(5, menu.StyleDeluxe, deliveryTime, "addr", 160000)
		assert.Error(t, err)
	})
}

func TestOrder_Restore(t *testing.T) {
	deliveryTime := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)
	createdAt := deliveryTime.Add(-72 * time.Hour)

	t.Run("should rebuild a persisted order", func(t *testing.T) {
		cookID := int64(7)
		o, err := order.RestoreOrder(
			42, 1, 2, menu.StyleGrand,
			deliveryTime, "123 Gangnam-daero", 130000, "CARD",
			order.StatusCooking, order.ApprovalApproved,
			&cookID, nil, createdAt,
		)
		require.NoError(t, err)

		assert.Equal(t, int64(42), o.ID())
		assert.Equal(t, order.StatusCooking, o.Status())
		assert.Equal(t, order.ApprovalApproved, o.ApprovalStatus())
		require.NotNil(t, o.CookingEmployeeID())
		assert.Equal(t, int64(7), *o.CookingEmployeeID())
	})

	t.Run("should reject corrupt status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			42, 1, 2, menu.StyleGrand,
			deliveryTime, "addr", 130000, "CARD",
			order.Status(99), order.ApprovalApproved,
			nil, nil, createdAt,
		)
		assert.Error(t, err)
	})
}

func TestOrder_SetID(t *testing.T) {
	deliveryTime := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)

	t.Run("should set once", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)

		require.NoError(t, o.SetID(42))
		assert.Equal(t, int64(42), o.ID())
		assert.Error(t, o.SetID(43))
	})

	t.Run("should reject non-positive id", func(t *testing.T) {
		o := newTestOrder(t, deliveryTime)
		assert.Error(t, o.SetID(0))
	})
}
