package services_test

import (
	"context"
	"time"

	"dinner/internal/core/domain/model/account"
	"dinner/internal/core/domain/model/changereq"
	"dinner/internal/core/domain/model/inventory"
	"dinner/internal/core/domain/model/kernel"
	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/domain/model/schedule"

	"github.com/stretchr/testify/mock"
)

func menuSteak() menu.MenuItem {
	return menu.MenuItem{ID: 10, Name: "스테이크", NameEn: "Steak", Category: "food", Price: 25000}
}

func menuWine() menu.MenuItem {
	return menu.MenuItem{ID: 20, Name: "와인 한 병", NameEn: "Wine", Category: "wine", Price: 35000}
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Add(ctx context.Context, stock *inventory.ItemStock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *MockStockRepository) Update(ctx context.Context, stock *inventory.ItemStock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *MockStockRepository) GetByMenuItem(ctx context.Context, menuItemID int64) (*inventory.ItemStock, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ItemStock), args.Error(1)
}

func (m *MockStockRepository) GetAll(ctx context.Context) ([]*inventory.ItemStock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.ItemStock), args.Error(1)
}

type MockReservationRepository struct{ mock.Mock }

func (m *MockReservationRepository) Add(ctx context.Context, reservation *inventory.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, reservation *inventory.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *MockReservationRepository) GetByOrder(ctx context.Context, orderID int64) ([]*inventory.Reservation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetUnconsumedByOrder(ctx context.Context, orderID int64) ([]*inventory.Reservation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Reservation), args.Error(1)
}

func (m *MockReservationRepository) SumActiveQuantityInWindow(
	ctx context.Context, menuItemID int64, window kernel.Window, now time.Time,
) (int, error) {
	args := m.Called(ctx, menuItemID, window, now)
	return args.Int(0), args.Error(1)
}

func (m *MockReservationRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockReservationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) DeletePastWindows(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) SumTodayDemandByItem(ctx context.Context, window kernel.Window) (map[int64]int, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetDinnerType(ctx context.Context, id int64) (menu.DinnerType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(menu.DinnerType), args.Error(1)
}

func (m *MockCatalogRepository) GetAllDinnerTypes(ctx context.Context) ([]menu.DinnerType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.DinnerType), args.Error(1)
}

func (m *MockCatalogRepository) GetMenuItem(ctx context.Context, id int64) (menu.MenuItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(menu.MenuItem), args.Error(1)
}

func (m *MockCatalogRepository) GetMenuItems(ctx context.Context, ids []int64) ([]menu.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockCatalogRepository) GetAllMenuItems(ctx context.Context) ([]menu.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockCatalogRepository) GetBundleItems(ctx context.Context, dinnerTypeID int64) ([]menu.BundleItem, error) {
	args := m.Called(ctx, dinnerTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.BundleItem), args.Error(1)
}

type MockScheduleRepository struct{ mock.Mock }

func (m *MockScheduleRepository) Add(ctx context.Context, run *schedule.DeliverySchedule) error {
	return m.Called(ctx, run).Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, run *schedule.DeliverySchedule) error {
	return m.Called(ctx, run).Error(0)
}

func (m *MockScheduleRepository) Get(ctx context.Context, id int64) (*schedule.DeliverySchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.DeliverySchedule), args.Error(1)
}

func (m *MockScheduleRepository) GetActiveByOrder(ctx context.Context, orderID int64) (*schedule.DeliverySchedule, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.DeliverySchedule), args.Error(1)
}

func (m *MockScheduleRepository) GetLatestByOrder(ctx context.Context, orderID int64) (*schedule.DeliverySchedule, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.DeliverySchedule), args.Error(1)
}

func (m *MockScheduleRepository) GetActiveByEmployeeInWindow(
	ctx context.Context, employeeID int64, window kernel.Window,
) ([]*schedule.DeliverySchedule, error) {
	args := m.Called(ctx, employeeID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.DeliverySchedule), args.Error(1)
}

func (m *MockScheduleRepository) CountActiveByEmployeeInWindow(
	ctx context.Context, employeeID int64, window kernel.Window,
) (int, error) {
	args := m.Called(ctx, employeeID, window)
	return args.Int(0), args.Error(1)
}

func (m *MockScheduleRepository) GetAllInWindow(ctx context.Context, window kernel.Window) ([]*schedule.DeliverySchedule, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.DeliverySchedule), args.Error(1)
}

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) Get(ctx context.Context, id int64) (account.Employee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(account.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetCouriers(ctx context.Context) ([]account.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.Employee), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id int64) (account.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(account.User), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByUser(ctx context.Context, userID int64) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountDeliveredByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) ExistsRecentDuplicate(
	ctx context.Context, userID int64, deliveryTime time.Time, deliveryAddress string, since time.Time,
) (bool, error) {
	args := m.Called(ctx, userID, deliveryTime, deliveryAddress, since)
	return args.Bool(0), args.Error(1)
}

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) AddAll(ctx context.Context, orderID int64, items []order.Item) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *MockOrderItemRepository) GetByOrder(ctx context.Context, orderID int64) ([]order.Item, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Item), args.Error(1)
}

func (m *MockOrderItemRepository) ReplaceAll(ctx context.Context, orderID int64, items []order.Item) error {
	return m.Called(ctx, orderID, items).Error(0)
}

type MockChangeRequestRepository struct{ mock.Mock }

func (m *MockChangeRequestRepository) Add(ctx context.Context, request *changereq.ChangeRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockChangeRequestRepository) Update(ctx context.Context, request *changereq.ChangeRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockChangeRequestRepository) Get(ctx context.Context, id int64) (*changereq.ChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*changereq.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) GetActiveByOrder(ctx context.Context, orderID int64) (*changereq.ChangeRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*changereq.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) GetAllByUser(ctx context.Context, userID int64) ([]*changereq.ChangeRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*changereq.ChangeRequest), args.Error(1)
}

func (m *MockChangeRequestRepository) GetAllByStatus(ctx context.Context, status changereq.Status) ([]*changereq.ChangeRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*changereq.ChangeRequest), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(ctx context.Context, userID int64, amount int, method string) (string, error) {
	args := m.Called(ctx, userID, amount, method)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, userID int64, amount int, method string) (string, error) {
	args := m.Called(ctx, userID, amount, method)
	return args.String(0), args.Error(1)
}
