// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// GetUserOrdersQuery retrieves a customer's reservations, newest first.
//
// Example:
//
//	query, err := NewGetUserOrdersQuery(userID)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetUserOrdersQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a query for one customer's order history.
func NewGetUserOrdersQuery(userID int64) (GetUserOrdersQuery, error) {
	if userID <= 0 {
		return GetUserOrdersQuery{}, errs.NewValueIsRequiredError("user id")
	}
	return GetUserOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// UserID returns the customer whose orders are listed.
func (q GetUserOrdersQuery) UserID() int64 { return q.userID }

// GetUserOrdersQueryResponse is one reservation in the customer's history.
type GetUserOrdersQueryResponse struct {
	OrderID         int64
	DinnerTypeID    int64
	DinnerTypeName  string
	ServingStyle    string
	DeliveryTime    time.Time
	DeliveryAddress string
	TotalPrice      int
	Status          string
	ApprovalStatus  string
	CreatedAt       time.Time
}
