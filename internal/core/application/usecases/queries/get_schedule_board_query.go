package queries

import (
	"errors"
	"time"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

// ErrGetScheduleBoardQueryIsNotConstructed indicates improper query creation.
var ErrGetScheduleBoardQueryIsNotConstructed = errors.New(
	"GetScheduleBoardQuery must be created via NewGetScheduleBoardQuery constructor",
)

// GetScheduleBoardQuery lists the delivery runs planned for one calendar day.
type GetScheduleBoardQuery struct {
	day time.Time

	guard guard.ConstructorGuard
}

// NewGetScheduleBoardQuery creates a validated schedule board query for the
// day containing the given time.
func NewGetScheduleBoardQuery(day time.Time) (GetScheduleBoardQuery, error) {
	if day.IsZero() {
		return GetScheduleBoardQuery{}, errs.NewValueIsRequiredError("day")
	}

	return GetScheduleBoardQuery{
		day:   day,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the query was properly constructed.
func (q GetScheduleBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetScheduleBoardQueryIsNotConstructed)
}

// Day returns the day whose runs are listed.
func (q GetScheduleBoardQuery) Day() time.Time { return q.day }

// GetScheduleBoardQueryResponse is the read model for one planned delivery
// run on the board.
type GetScheduleBoardQueryResponse struct {
	ScheduleID          int64
	OrderID             int64
	EmployeeID          int64
	EmployeeName        string
	DeliveryAddress     string
	DepartureTime       time.Time
	EstimatedReturnTime time.Time
	Status              string
}
