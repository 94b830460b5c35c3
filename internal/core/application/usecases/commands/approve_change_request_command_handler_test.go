package commands_test

import (
	"errors"
	"testing"
	"time"

	"dinner/internal/core/application/usecases/commands"
	"dinner/internal/core/domain/model/changereq"
	"dinner/internal/core/domain/model/inventory"
	"dinner/internal/core/domain/model/menu"
	"dinner/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func requestedChange(t *testing.T, deliveryTime time.Time, quote changereq.Quote) *changereq.ChangeRequest {
	t.Helper()
	request, err := changereq.RestoreChangeRequest(
		5, 42, 7, 1, menu.StyleGrand, deliveryTime, "서울 서초구 반포동 45",
		[]changereq.Item{{MenuItemID: 10, Quantity: 2}}, quote,
		changereq.StatusRequested, "", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return request
}

func TestApproveChangeRequestCommandHandler_Handle_SettlesThenRewritesOrder(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewApproveChangeRequestCommand(5)
	require.NoError(t, err)

	newDeliveryTime := time.Now().Add(120 * time.Hour)
	quote, err := changereq.NewQuote(100000, 130000, 0)
	require.NoError(t, err)
	request := requestedChange(t, newDeliveryTime, quote)
	aggregate := approvedOrder(t, time.Now().Add(96*time.Hour))

	f := newUoWFixture()
	catalog, _, payment, pricing := newChangeRequestHandlerDeps(f)
	catalog.On("GetMenuItem", mock.Anything, int64(10)).Return(steakItem(), nil)

	stock, err := inventory.RestoreItemStock(1, 10, 20, 0, 0, "", nil)
	require.NoError(t, err)
	f.stocks.On("GetByMenuItem", mock.Anything, int64(10)).Return(stock, nil).Once()

	mock.InOrder(
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.requests.On("Get", mock.Anything, int64(5)).Return(request, nil).Once(),
		f.orders.On("Get", mock.Anything, int64(42)).Return(aggregate, nil).Once(),
		payment.On("Charge", mock.Anything, int64(7), 30000, "card").Return("txn-1", nil).Once(),
		f.reservations.On("DeleteByOrder", mock.Anything, int64(42)).Return(nil).Once(),
		f.reservations.On("Add", mock.Anything, mock.AnythingOfType("*inventory.Reservation")).
			Return(nil).Once(),
		f.orderItems.On("ReplaceAll", mock.Anything, int64(42), mock.Anything).Return(nil).Once(),
		f.orders.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		f.schedules.On("GetActiveByOrder", mock.Anything, int64(42)).
			Return(nil, errs.NewObjectNotFoundError("schedule", int64(42))).Once(),
		f.requests.On("Update", mock.Anything, request).Return(nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	h := commands.NewApproveChangeRequestCommandHandler(
		f.factory, catalog, new(MockEmployeeRepository), pricing, payment)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, changereq.StatusApproved, request.Status())
	require.Equal(t, 130000, aggregate.TotalPrice())
	require.Equal(t, newDeliveryTime, aggregate.DeliveryTime())
	require.Nil(t, aggregate.DeliveryEmployeeID())

	f.uow.AssertExpectations(t)
	f.requests.AssertExpectations(t)
	payment.AssertExpectations(t)
}

func TestApproveChangeRequestCommandHandler_Handle_FailedChargeParksRequest(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewApproveChangeRequestCommand(5)
	require.NoError(t, err)

	newDeliveryTime := time.Now().Add(120 * time.Hour)
	quote, err := changereq.NewQuote(100000, 150000, 0)
	require.NoError(t, err)
	request := requestedChange(t, newDeliveryTime, quote)
	aggregate := approvedOrder(t, time.Now().Add(96*time.Hour))

	f := newUoWFixture()
	catalog, _, payment, pricing := newChangeRequestHandlerDeps(f)
	catalog.On("GetMenuItem", mock.Anything, int64(10)).Return(steakItem(), nil).Once()

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	// the parked request is the transaction's only write, keep it
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	f.requests.On("Get", mock.Anything, int64(5)).Return(request, nil).Once()
	f.orders.On("Get", mock.Anything, int64(42)).Return(aggregate, nil).Once()
	payment.On("Charge", mock.Anything, int64(7), 50000, "card").
		Return("", errors.New("card declined")).Once()
	f.requests.On("Update", mock.Anything, request).Return(nil).Once()

	h := commands.NewApproveChangeRequestCommandHandler(
		f.factory, catalog, new(MockEmployeeRepository), pricing, payment)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPaymentFailed)
	require.Equal(t, changereq.StatusPaymentFailed, request.Status())
	require.Contains(t, request.AdminComment(), "card declined")

	f.reservations.AssertNotCalled(t, "DeleteByOrder", mock.Anything, mock.Anything)
	f.orderItems.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertExpectations(t)
}

func TestApproveChangeRequestCommandHandler_Handle_TerminalRequestRefused(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewApproveChangeRequestCommand(5)
	require.NoError(t, err)

	quote, err := changereq.NewQuote(100000, 130000, 0)
	require.NoError(t, err)
	approved, err := changereq.RestoreChangeRequest(
		5, 42, 7, 1, menu.StyleGrand, time.Now().Add(120*time.Hour), "서울 서초구 반포동 45",
		[]changereq.Item{{MenuItemID: 10, Quantity: 2}}, quote,
		changereq.StatusApproved, "", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	f := newUoWFixture()
	catalog, _, payment, pricing := newChangeRequestHandlerDeps(f)

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	f.requests.On("Get", mock.Anything, int64(5)).Return(approved, nil).Once()

	h := commands.NewApproveChangeRequestCommandHandler(
		f.factory, catalog, new(MockEmployeeRepository), pricing, payment)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrBusinessRuleViolated)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}
