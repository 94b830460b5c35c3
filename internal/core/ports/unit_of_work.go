package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out repositories bound to the
// transaction, so an order, its lines, its reservations and its stock
// deductions commit or roll back as one.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// OrderItemRepository returns an OrderItemRepository bound to the current transaction.
	OrderItemRepository() OrderItemRepository

	// StockRepository returns a StockRepository bound to the current transaction.
	StockRepository() StockRepository

	// ReservationRepository returns a ReservationRepository bound to the current transaction.
	ReservationRepository() ReservationRepository

	// ScheduleRepository returns a ScheduleRepository bound to the current transaction.
	ScheduleRepository() ScheduleRepository

	// ChangeRequestRepository returns a ChangeRequestRepository bound to the current transaction.
	ChangeRequestRepository() ChangeRequestRepository
}
