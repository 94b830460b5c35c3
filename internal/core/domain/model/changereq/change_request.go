package changereq

import (
	"errors"
	"fmt"
	"time"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/pkg/errs"
)

var (
	// ErrChangeRequestIsNotConstructed is returned when a ChangeRequest
	// instance was not created through NewChangeRequest or
	// RestoreChangeRequest.
	ErrChangeRequestIsNotConstructed = errors.New("ChangeRequest must be created via NewChangeRequest constructor")
)

// Item is one requested line of the changed order.
type Item struct {
	ID              int64
	ChangeRequestID int64
	MenuItemID      int64
	Quantity        int
}

// ChangeRequest records a customer's wish to change an existing reservation:
// the requested new details, the quoted money movement and the settlement
// state. At most one active request exists per order; resubmitting while one
// is active amends it instead of opening another.
type ChangeRequest struct {
	id      int64
	orderID int64
	userID  int64

	newDinnerTypeID    int64
	newServingStyle    menu.ServingStyle
	newDeliveryTime    time.Time
	newDeliveryAddress string
	items              []Item

	quote Quote

	status       Status
	adminComment string
	createdAt    time.Time

	isConstructed bool
}

// NewChangeRequest opens a change request with the requested details, their
// quote and the requested item lines.
func NewChangeRequest(
	orderID int64,
	userID int64,
	newDinnerTypeID int64,
	newServingStyle menu.ServingStyle,
	newDeliveryTime time.Time,
	newDeliveryAddress string,
	items []Item,
	quote Quote,
	now time.Time,
) (*ChangeRequest, error) {
	r := &ChangeRequest{
		items:         items,
		quote:         quote,
		status:        StatusRequested,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setOrderID(orderID),
		r.setUserID(userID),
		r.setNewDetails(newDinnerTypeID, newServingStyle, newDeliveryTime, newDeliveryAddress),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreChangeRequest reconstructs a change request from persistence.
func RestoreChangeRequest(
	id int64,
	orderID int64,
	userID int64,
	newDinnerTypeID int64,
	newServingStyle menu.ServingStyle,
	newDeliveryTime time.Time,
	newDeliveryAddress string,
	items []Item,
	quote Quote,
	status Status,
	adminComment string,
	createdAt time.Time,
) (*ChangeRequest, error) {
	r := &ChangeRequest{
		id:            id,
		items:         items,
		quote:         quote,
		adminComment:  adminComment,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setOrderID(orderID),
		r.setUserID(userID),
		r.setNewDetails(newDinnerTypeID, newServingStyle, newDeliveryTime, newDeliveryAddress),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	r.status = status

	return r, nil
}

// Validate ensures the ChangeRequest was properly constructed.
func (r *ChangeRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrChangeRequestIsNotConstructed
	}
	return nil
}

// ID returns the request identifier (zero until persisted).
func (r *ChangeRequest) ID() int64 { return r.id }

// SetID records the identifier assigned by the store.
func (r *ChangeRequest) SetID(id int64) error {
	if r.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("change request id is already set to %d", r.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not a valid change request id", id))
	}
	r.id = id
	return nil
}

// OrderID returns the order being changed.
func (r *ChangeRequest) OrderID() int64 { return r.orderID }

// UserID returns the requesting customer.
func (r *ChangeRequest) UserID() int64 { return r.userID }

// NewDinnerTypeID returns the requested dinner type.
func (r *ChangeRequest) NewDinnerTypeID() int64 { return r.newDinnerTypeID }

// NewServingStyle returns the requested serving style.
func (r *ChangeRequest) NewServingStyle() menu.ServingStyle { return r.newServingStyle }

// NewDeliveryTime returns the requested delivery time.
func (r *ChangeRequest) NewDeliveryTime() time.Time { return r.newDeliveryTime }

// NewDeliveryAddress returns the requested delivery address.
func (r *ChangeRequest) NewDeliveryAddress() string { return r.newDeliveryAddress }

// Items returns the requested item lines.
func (r *ChangeRequest) Items() []Item { return r.items }

// Quote returns the priced outcome of the change.
func (r *ChangeRequest) Quote() Quote { return r.quote }

// Status returns the settlement state of the request.
func (r *ChangeRequest) Status() Status { return r.status }

// AdminComment returns the reviewing admin's note, set on rejection or a
// parked failure.
func (r *ChangeRequest) AdminComment() string { return r.adminComment }

// CreatedAt returns when the request was opened.
func (r *ChangeRequest) CreatedAt() time.Time { return r.createdAt }

// IsActive reports whether the request still holds its order.
func (r *ChangeRequest) IsActive() bool { return r.status.IsActive() }

// Amend overwrites the requested details and quote while the request is
// still active. Resubmitting a change is idempotent-by-intent: the open
// request absorbs the new wish instead of a second one being created.
func (r *ChangeRequest) Amend(
	newDinnerTypeID int64,
	newServingStyle menu.ServingStyle,
	newDeliveryTime time.Time,
	newDeliveryAddress string,
	items []Item,
	quote Quote,
) error {
	if !r.IsActive() {
		return errs.NewBusinessRuleError("change request amend",
			fmt.Sprintf("cannot amend a %s request", r.status))
	}

	if err := r.setNewDetails(newDinnerTypeID, newServingStyle, newDeliveryTime, newDeliveryAddress); err != nil {
		return err
	}
	r.items = items
	r.quote = quote
	return nil
}

// Approve marks the request as settled and applied.
func (r *ChangeRequest) Approve() error {
	next, err := r.status.TransitionTo(StatusApproved)
	if err != nil {
		return err
	}
	r.status = next
	return nil
}

// Reject marks the request as declined with the reviewing admin's comment.
func (r *ChangeRequest) Reject(comment string) error {
	next, err := r.status.TransitionTo(StatusRejected)
	if err != nil {
		return err
	}
	r.status = next
	r.adminComment = comment
	return nil
}

// MarkPaymentFailed parks the request after a failed extra charge.
func (r *ChangeRequest) MarkPaymentFailed(reason string) error {
	next, err := r.status.TransitionTo(StatusPaymentFailed)
	if err != nil {
		return err
	}
	r.status = next
	r.adminComment = reason
	return nil
}

// MarkRefundFailed parks the request after a failed refund.
func (r *ChangeRequest) MarkRefundFailed(reason string) error {
	next, err := r.status.TransitionTo(StatusRefundFailed)
	if err != nil {
		return err
	}
	r.status = next
	r.adminComment = reason
	return nil
}

func (r *ChangeRequest) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not a valid order id", orderID))
	}
	r.orderID = orderID
	return nil
}

func (r *ChangeRequest) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id",
			fmt.Errorf("%d is not a valid user id", userID))
	}
	r.userID = userID
	return nil
}

func (r *ChangeRequest) setNewDetails(
	dinnerTypeID int64,
	style menu.ServingStyle,
	deliveryTime time.Time,
	address string,
) error {
	if dinnerTypeID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dinner type id",
			fmt.Errorf("%d is not a valid dinner type id", dinnerTypeID))
	}
	if err := style.Validate(); err != nil {
		return err
	}
	if deliveryTime.IsZero() {
		return errs.NewValueIsRequiredError("delivery time")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}

	r.newDinnerTypeID = dinnerTypeID
	r.newServingStyle = style
	r.newDeliveryTime = deliveryTime
	r.newDeliveryAddress = address
	return nil
}
