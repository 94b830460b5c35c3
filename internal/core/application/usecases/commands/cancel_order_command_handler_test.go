package commands_test

import (
	"errors"
	"testing"
	"time"

	"dinner/internal/core/application/usecases/commands"
	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingOrder(t *testing.T, id int64) *order.Order {
	t.Helper()
	aggregate, err := order.RestoreOrder(
		id, 7, 1, menu.StyleSimple,
		time.Now().Add(96*time.Hour), "서울 강남구 역삼동 12",
		100000, "card",
		order.StatusPending, order.ApprovalPending,
		nil, nil, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return aggregate
}

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand(42)
	require.NoError(t, err)

	f := newUoWFixture()
	employees := new(MockEmployeeRepository)
	aggregate := pendingOrder(t, 42)

	// cancellation transaction, then the compensation transaction
	f.uow.On("Begin", mock.Anything).Return(nil).Twice()
	f.uow.On("Commit", mock.Anything).Return(nil).Twice()
	f.uow.On("Rollback", mock.Anything).Return(nil).Twice()

	f.orders.On("Get", mock.Anything, int64(42)).Return(aggregate, nil).Once()
	f.orders.On("Update", mock.Anything, aggregate).Return(nil).Once()
	f.reservations.On("DeleteByOrder", mock.Anything, int64(42)).Return(nil).Once()
	f.schedules.On("GetActiveByOrder", mock.Anything, int64(42)).
		Return(nil, errs.NewObjectNotFoundError("schedule", int64(42))).Once()

	h := commands.NewCancelOrderCommandHandler(f.factory, new(MockCatalogRepository), employees, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.StatusCancelled, aggregate.Status())

	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.reservations.AssertExpectations(t)
	f.schedules.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_CompensationFailureDoesNotFailCancellation(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand(42)
	require.NoError(t, err)

	f := newUoWFixture()
	aggregate := pendingOrder(t, 42)

	f.uow.On("Begin", mock.Anything).Return(nil).Twice()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Twice()

	f.orders.On("Get", mock.Anything, int64(42)).Return(aggregate, nil).Once()
	f.orders.On("Update", mock.Anything, aggregate).Return(nil).Once()
	f.reservations.On("DeleteByOrder", mock.Anything, int64(42)).
		Return(errors.New("connection reset")).Once()

	h := commands.NewCancelOrderCommandHandler(
		f.factory, new(MockCatalogRepository), new(MockEmployeeRepository), discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.StatusCancelled, aggregate.Status())
	f.uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_DeliveredOrderRefused(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand(42)
	require.NoError(t, err)

	f := newUoWFixture()
	cookID := int64(3)
	delivered, err := order.RestoreOrder(
		42, 7, 1, menu.StyleSimple,
		time.Now().Add(-2*time.Hour), "서울 강남구 역삼동 12",
		100000, "card",
		order.StatusDelivered, order.ApprovalApproved,
		&cookID, &cookID, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	f.orders.On("Get", mock.Anything, int64(42)).Return(delivered, nil).Once()

	h := commands.NewCancelOrderCommandHandler(
		f.factory, new(MockCatalogRepository), new(MockEmployeeRepository), discardLogger())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}
