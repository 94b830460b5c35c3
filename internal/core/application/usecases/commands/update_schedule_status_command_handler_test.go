package commands_test

import (
	"testing"
	"time"

	"dinner/internal/core/application/usecases/commands"
	"dinner/internal/core/domain/model/schedule"
	"dinner/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scheduledRun(t *testing.T, employeeID int64) *schedule.DeliverySchedule {
	t.Helper()
	day := time.Date(2027, 3, 2, 0, 0, 0, 0, time.UTC)
	run, err := schedule.RestoreDeliverySchedule(
		9, 42, employeeID,
		day.Add(17*time.Hour+20*time.Minute), day.Add(18*time.Hour),
		day.Add(18*time.Hour+40*time.Minute), 40,
		schedule.StatusScheduled)
	require.NoError(t, err)
	return run
}

func TestUpdateScheduleStatusCommandHandler_Handle_CourierStartsOwnRun(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateScheduleStatusCommand(9, "IN_PROGRESS", 3, false)
	require.NoError(t, err)

	f := newUoWFixture()
	run := scheduledRun(t, 3)

	mock.InOrder(
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.schedules.On("Get", mock.Anything, int64(9)).Return(run, nil).Once(),
		f.schedules.On("Update", mock.Anything, run).Return(nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	h := commands.NewUpdateScheduleStatusCommandHandler(f.factory, new(MockEmployeeRepository))
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, schedule.StatusInProgress, run.Status())
	f.uow.AssertExpectations(t)
	f.schedules.AssertExpectations(t)
}

func TestUpdateScheduleStatusCommandHandler_Handle_OtherCourierRefused(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateScheduleStatusCommand(9, "IN_PROGRESS", 4, false)
	require.NoError(t, err)

	f := newUoWFixture()
	run := scheduledRun(t, 3)

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	f.schedules.On("Get", mock.Anything, int64(9)).Return(run, nil).Once()

	h := commands.NewUpdateScheduleStatusCommandHandler(f.factory, new(MockEmployeeRepository))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrBusinessRuleViolated)
	require.Equal(t, schedule.StatusScheduled, run.Status())
	f.schedules.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateScheduleStatusCommandHandler_Handle_AdminCancelsAnyRun(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateScheduleStatusCommand(9, "CANCELLED", 99, true)
	require.NoError(t, err)

	f := newUoWFixture()
	run := scheduledRun(t, 3)

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	f.schedules.On("Get", mock.Anything, int64(9)).Return(run, nil).Once()
	f.schedules.On("Update", mock.Anything, run).Return(nil).Once()

	h := commands.NewUpdateScheduleStatusCommandHandler(f.factory, new(MockEmployeeRepository))
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, schedule.StatusCancelled, run.Status())
}

func TestNewUpdateScheduleStatusCommand_InvalidInput(t *testing.T) {
	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateScheduleStatusCommand(9, "PAUSED", 3, false)
		require.Error(t, err)
	})
	t.Run("should reject zero schedule id", func(t *testing.T) {
		_, err := commands.NewUpdateScheduleStatusCommand(0, "IN_PROGRESS", 3, false)
		require.Error(t, err)
	})
	t.Run("should reject zero requester id", func(t *testing.T) {
		_, err := commands.NewUpdateScheduleStatusCommand(9, "IN_PROGRESS", 0, false)
		require.Error(t, err)
	})
}
