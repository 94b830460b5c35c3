package cmd

import (
	"log/slog"

	httpadapter "dinner/internal/adapters/in/http"
	"dinner/internal/adapters/out/payment"
	"dinner/internal/adapters/out/sqlite"
	"dinner/internal/adapters/out/sqlite/accountrepo"
	"dinner/internal/adapters/out/sqlite/catalogrepo"
	"dinner/internal/adapters/out/sqlite/orderrepo"
	"dinner/internal/core/application/usecases/commands"
	"dinner/internal/core/application/usecases/queries"
	"dinner/internal/core/domain/services"
	"dinner/internal/jobs"
	"dinner/internal/pkg/usergate"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *sqlite.GormUnitOfWorkFactory

	catalog   *catalogrepo.GormCatalogRepository
	employees *accountrepo.GormEmployeeRepository

	pricing *services.PricingService
	gate    *usergate.Gate
	payment *payment.Gateway
	logger  *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	catalog := catalogrepo.NewGormCatalogRepository(gormDB)

	// Pricing reads order history outside the command transactions, so it
	// gets repositories bound to the base connection.
	pricing, err := services.NewPricingService(
		catalog,
		orderrepo.NewGormOrderRepository(gormDB, noopTracker{}),
		accountrepo.NewGormUserRepository(gormDB),
	)
	if err != nil {
		return nil, err
	}

	gateway, err := payment.NewGateway(logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: sqlite.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalog,
		employees:  accountrepo.NewGormEmployeeRepository(gormDB),
		pricing:    pricing,
		gate:       usergate.NewGate(config.OrderGateInterval, config.OrderGateMaxUsers),
		payment:    gateway,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.catalog, c.pricing, c.gate, c.logger)
}

func (c *CompositionRoot) CreateModifyOrderCommandHandler() commands.ModifyOrderCommandHandler {
	return commands.NewModifyOrderCommandHandler(c.uowFactory, c.catalog, c.pricing)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uowFactory, c.catalog, c.employees, c.logger)
}

func (c *CompositionRoot) CreateReviewOrderCommandHandler() commands.ReviewOrderCommandHandler {
	return commands.NewReviewOrderCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.uowFactory, c.catalog)
}

func (c *CompositionRoot) CreateScheduleDeliveryCommandHandler() commands.ScheduleDeliveryCommandHandler {
	return commands.NewScheduleDeliveryCommandHandler(c.uowFactory, c.employees)
}

func (c *CompositionRoot) CreateUpdateScheduleStatusCommandHandler() commands.UpdateScheduleStatusCommandHandler {
	return commands.NewUpdateScheduleStatusCommandHandler(c.uowFactory, c.employees)
}

func (c *CompositionRoot) CreateCreateChangeRequestCommandHandler() commands.CreateChangeRequestCommandHandler {
	return commands.NewCreateChangeRequestCommandHandler(c.uowFactory, c.catalog, c.employees, c.pricing, c.payment)
}

func (c *CompositionRoot) CreateApproveChangeRequestCommandHandler() commands.ApproveChangeRequestCommandHandler {
	return commands.NewApproveChangeRequestCommandHandler(c.uowFactory, c.catalog, c.employees, c.pricing, c.payment)
}

func (c *CompositionRoot) CreateRejectChangeRequestCommandHandler() commands.RejectChangeRequestCommandHandler {
	return commands.NewRejectChangeRequestCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateRestockInventoryCommandHandler() commands.RestockInventoryCommandHandler {
	return commands.NewRestockInventoryCommandHandler(c.uowFactory, c.catalog)
}

func (c *CompositionRoot) CreateRunMaintenanceCommandHandler() commands.RunMaintenanceCommandHandler {
	return commands.NewRunMaintenanceCommandHandler(c.uowFactory, c.catalog, c.logger)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetChangeRequestsQueryHandler() queries.GetChangeRequestsQueryHandler {
	return queries.NewGetChangeRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetScheduleBoardQueryHandler() queries.GetScheduleBoardQueryHandler {
	return queries.NewGetScheduleBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInventorySnapshotQueryHandler() queries.GetInventorySnapshotQueryHandler {
	return queries.NewGetInventorySnapshotQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ModifyOrder:          c.CreateModifyOrderCommandHandler(),
		CancelOrder:          c.CreateCancelOrderCommandHandler(),
		ReviewOrder:          c.CreateReviewOrderCommandHandler(),
		UpdateOrderStatus:    c.CreateUpdateOrderStatusCommandHandler(),
		ScheduleDelivery:     c.CreateScheduleDeliveryCommandHandler(),
		UpdateScheduleStatus: c.CreateUpdateScheduleStatusCommandHandler(),
		CreateChangeRequest:  c.CreateCreateChangeRequestCommandHandler(),
		ApproveChangeRequest: c.CreateApproveChangeRequestCommandHandler(),
		RejectChangeRequest:  c.CreateRejectChangeRequestCommandHandler(),
		RestockInventory:     c.CreateRestockInventoryCommandHandler(),
		GetUserOrders:        c.CreateGetUserOrdersQueryHandler(),
		GetChangeRequests:    c.CreateGetChangeRequestsQueryHandler(),
		GetScheduleBoard:     c.CreateGetScheduleBoardQueryHandler(),
		GetInventorySnapshot: c.CreateGetInventorySnapshotQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRunMaintenanceCommandHandler(), c.logger)
}

// noopTracker satisfies the repository tracker requirement for repositories
// used outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(int64, any) {}
