// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
//
// Handlers open a unit of work and construct the domain services over its
// transaction-bound repositories, so an order, its item lines, its capacity
// reservations and its delivery schedule commit or roll back together.
package commands

import (
	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/domain/services"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
)

// ItemLine is one requested menu item line as it arrives from the outside.
type ItemLine struct {
	MenuItemID int64
	Quantity   int
}

func toOrderItems(lines []ItemLine) ([]order.Item, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(line.MenuItemID, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ledgerFor builds a CapacityLedger over the transaction's repositories.
// Catalog data is read-only reference data and stays outside the transaction.
func ledgerFor(uow ports.UnitOfWork, catalog ports.CatalogRepository) (*services.CapacityLedger, error) {
	return services.NewCapacityLedger(uow.StockRepository(), uow.ReservationRepository(), catalog)
}

// plannerFor builds an AssignmentPlanner over the transaction's schedule
// repository.
func plannerFor(uow ports.UnitOfWork, employees ports.EmployeeRepository) (*services.AssignmentPlanner, error) {
	return services.NewAssignmentPlanner(uow.ScheduleRepository(), employees, services.NewTravelEstimator())
}

// quoteEngineFor builds a QuoteEngine whose mutations all land in the
// transaction.
func quoteEngineFor(
	uow ports.UnitOfWork,
	catalog ports.CatalogRepository,
	employees ports.EmployeeRepository,
	pricing *services.PricingService,
	payment ports.PaymentGateway,
) (*services.QuoteEngine, error) {
	ledger, err := ledgerFor(uow, catalog)
	if err != nil {
		return nil, err
	}
	planner, err := plannerFor(uow, employees)
	if err != nil {
		return nil, err
	}
	return services.NewQuoteEngine(
		uow.OrderRepository(), uow.OrderItemRepository(), uow.ChangeRequestRepository(),
		ledger, planner, pricing, catalog, payment)
}
