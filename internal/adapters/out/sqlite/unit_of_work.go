// Package sqlite provides the GORM-based implementation of the Unit of Work
// pattern over SQLite. The Unit of Work maintains a list of aggregates
// affected by a business transaction and coordinates writing out changes so
// an order, its lines, its reservations and its stock deductions commit or
// roll back as one.
//
// Key Features:
//   - Transaction management across multiple repositories
//   - Aggregate tracking for domain event processing
//   - Proper isolation between concurrent operations
//   - Contention surfaced as a retryable error for the command layer
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// SQLite allows a single writer at a time. When two transactions collide the
// driver reports a busy database; Begin and Commit translate that into a
// storage contention error so command handlers can retry with backoff
// instead of failing the request.
package sqlite

import (
	"context"

	"dinner/internal/adapters/out/sqlite/changereqrepo"
	"dinner/internal/adapters/out/sqlite/inventoryrepo"
	"dinner/internal/adapters/out/sqlite/orderrepo"
	"dinner/internal/adapters/out/sqlite/schedulerepo"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        int64
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a GORM database
// connection. The factory ensures each business operation gets a fresh unit
// of work instance with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all created
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Implements the Unit of Work pattern using
// GORM's transaction capabilities.
//
// The unit of work tracks all aggregates modified during the transaction,
// enabling patterns like domain event publishing after successful commits.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create
// nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return translateBusy(err)
	}

	return nil
}

// Commit finalizes all changes made within the current transaction. After
// commit the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return translateBusy(err)
}

// Rollback discards all changes made within the current transaction. After
// rollback the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence within the unit of
// work. Operations execute within the current transaction if one is active,
// otherwise they use the main database connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OrderItemRepository provides access to order line persistence within the
// unit of work.
func (uow *GormUnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	return orderrepo.NewGormOrderItemRepository(uow.conn())
}

// StockRepository provides access to item stock persistence within the unit
// of work.
func (uow *GormUnitOfWork) StockRepository() ports.StockRepository {
	return inventoryrepo.NewGormStockRepository(uow.conn(), uow)
}

// ReservationRepository provides access to reservation persistence within
// the unit of work.
func (uow *GormUnitOfWork) ReservationRepository() ports.ReservationRepository {
	return inventoryrepo.NewGormReservationRepository(uow.conn(), uow)
}

// ScheduleRepository provides access to delivery run persistence within the
// unit of work.
func (uow *GormUnitOfWork) ScheduleRepository() ports.ScheduleRepository {
	return schedulerepo.NewGormScheduleRepository(uow.conn(), uow)
}

// ChangeRequestRepository provides access to change request persistence
// within the unit of work.
func (uow *GormUnitOfWork) ChangeRequestRepository() ports.ChangeRequestRepository {
	return changereqrepo.NewGormChangeRequestRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. This method is typically called by repository implementations
// when aggregates are added or updated.
func (uow *GormUnitOfWork) TrackAggregate(id int64, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// translateBusy maps the SQLite single-writer lock error onto the storage
// contention sentinel so callers can distinguish a retryable collision from
// a real failure.
func translateBusy(err error) error {
	if err == nil {
		return nil
	}
	if errs.IsStorageContention(err) {
		return errs.NewStorageContentionError(err)
	}
	return err
}
