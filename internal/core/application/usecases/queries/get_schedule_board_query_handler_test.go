package queries_test

import (
	"context"
	"testing"
	"time"

	"dinner/internal/adapters/out/sqlite/accountrepo"
	"dinner/internal/adapters/out/sqlite/orderrepo"
	"dinner/internal/adapters/out/sqlite/schedulerepo"
	"dinner/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/suite"
	gorm_sqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type GetScheduleBoardQueryHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler queries.GetScheduleBoardQueryHandler
}

func (suite *GetScheduleBoardQueryHandlerTestSuite) SetupSuite() {
	db, err := gorm.Open(gorm_sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.db = db

	err = db.AutoMigrate(
		&schedulerepo.DeliveryScheduleDTO{},
		&accountrepo.EmployeeDTO{},
		&orderrepo.OrderDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetScheduleBoardQueryHandler(db)
}

func (suite *GetScheduleBoardQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("DELETE FROM delivery_schedules").Error)
	suite.Require().NoError(suite.db.Exec("DELETE FROM employees").Error)
	suite.Require().NoError(suite.db.Exec("DELETE FROM orders").Error)
}

func (suite *GetScheduleBoardQueryHandlerTestSuite) seedEmployee(id int64, name string) {
	dto := accountrepo.EmployeeDTO{ID: id, Name: name, Role: "COURIER"}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *GetScheduleBoardQueryHandlerTestSuite) seedOrder(id int64, address string) {
	dto := orderrepo.OrderDTO{
		ID:              id,
		UserID:          7,
		DinnerTypeID:    1,
		ServingStyle:    "simple",
		DeliveryTime:    time.Date(2027, 3, 2, 18, 0, 0, 0, time.UTC),
		DeliveryAddress: address,
		TotalPrice:      100000,
		PaymentMethod:   "card",
		Status:          "pending",
		ApprovalStatus:  "APPROVED",
		CreatedAt:       time.Date(2027, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *GetScheduleBoardQueryHandlerTestSuite) seedRun(orderID, employeeID int64, departure time.Time, status string) int64 {
	dto := schedulerepo.DeliveryScheduleDTO{
		OrderID:             orderID,
		EmployeeID:          employeeID,
		DepartureTime:       departure,
		EstimatedReturnTime: departure.Add(80 * time.Minute),
		Status:              status,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *GetScheduleBoardQueryHandlerTestSuite) TestHandle_ListsDayRunsByDeparture() {
	suite.seedEmployee(3, "박배달")
	suite.seedEmployee(4, "김기사")
	suite.seedOrder(42, "서울 강남구 역삼동 12")
	suite.seedOrder(43, "서울 마포구 합정동 8")

	day := time.Date(2027, 3, 2, 0, 0, 0, 0, time.UTC)
	lateID := suite.seedRun(43, 4, day.Add(19*time.Hour), "SCHEDULED")
	earlyID := suite.seedRun(42, 3, day.Add(17*time.Hour), "IN_PROGRESS")
	suite.seedRun(42, 3, day.AddDate(0, 0, 1).Add(17*time.Hour), "SCHEDULED")

	query, err := queries.NewGetScheduleBoardQuery(day.Add(12 * time.Hour))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(earlyID, result[0].ScheduleID)
	suite.Equal(int64(42), result[0].OrderID)
	suite.Equal("박배달", result[0].EmployeeName)
	suite.Equal("서울 강남구 역삼동 12", result[0].DeliveryAddress)
	suite.Equal("IN_PROGRESS", result[0].Status)

	suite.Equal(lateID, result[1].ScheduleID)
	suite.Equal("김기사", result[1].EmployeeName)
	suite.Equal("SCHEDULED", result[1].Status)
}

func (suite *GetScheduleBoardQueryHandlerTestSuite) TestHandle_EmptyDay_ReturnsEmptySlice() {
	query, err := queries.NewGetScheduleBoardQuery(time.Date(2027, 3, 2, 12, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetScheduleBoardQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetScheduleBoardQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetScheduleBoardQuery constructor")
}

func TestGetScheduleBoardQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetScheduleBoardQueryHandlerTestSuite))
}
