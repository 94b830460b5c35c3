package queries

import (
	"errors"
	"time"

	"dinner/internal/core/domain/model/changereq"
	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

// ErrGetChangeRequestsQueryIsNotConstructed indicates improper query creation.
var ErrGetChangeRequestsQueryIsNotConstructed = errors.New(
	"GetChangeRequestsQuery must be created via NewGetChangeRequestsQuery constructor",
)

// GetChangeRequestsQuery lists change requests, optionally narrowed to one
// customer or one status. A zero user ID means all customers and an empty
// status means all statuses.
type GetChangeRequestsQuery struct {
	userID int64
	status string

	guard guard.ConstructorGuard
}

// NewGetChangeRequestsQuery creates a validated change request listing query.
// The status filter, when set, must name a known change request status.
func NewGetChangeRequestsQuery(userID int64, status string) (GetChangeRequestsQuery, error) {
	if userID < 0 {
		return GetChangeRequestsQuery{}, errs.NewValueIsInvalidError("user id")
	}
	if status != "" {
		if _, err := changereq.ParseStatus(status); err != nil {
			return GetChangeRequestsQuery{}, err
		}
	}

	return GetChangeRequestsQuery{
		userID: userID,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the query was properly constructed.
func (q GetChangeRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetChangeRequestsQueryIsNotConstructed)
}

// UserID returns the customer filter, zero when listing all customers.
func (q GetChangeRequestsQuery) UserID() int64 { return q.userID }

// Status returns the status filter, empty when listing all statuses.
func (q GetChangeRequestsQuery) Status() string { return q.status }

// GetChangeRequestsQueryResponse is the read model for one change request,
// with the settlement amounts the quote implies already worked out.
type GetChangeRequestsQueryResponse struct {
	RequestID          int64
	OrderID            int64
	UserID             int64
	NewDinnerTypeID    int64
	NewServingStyle    string
	NewDeliveryTime    time.Time
	NewDeliveryAddress string

	AlreadyPaid               int
	NewTotal                  int
	ChangeFee                 int
	ExtraCharge               int
	ExpectedRefundAmount      int
	RequiresAdditionalPayment bool
	RequiresRefund            bool

	Status       string
	AdminComment string
	CreatedAt    time.Time
}
