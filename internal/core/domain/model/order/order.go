package order

import (
	"errors"
	"fmt"
	"time"

	"dinner/internal/core/domain/model/menu"
	"dinner/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// minModificationLead is the minimum time before delivery at which an order
// may still be modified in place.
const minModificationLead = 3 * time.Hour

// ChangeFeeAmount is the flat fee charged when a reservation change request
// lands inside the late-change window.
const ChangeFeeAmount = 30000

// SameDayModificationFee is the flat fee charged when an order is modified on
// its own delivery day.
const SameDayModificationFee = 10000

// Order represents a dinner reservation. It is the aggregate root that
// manages the order from placement through kitchen fulfillment to delivery
// or cancellation, and carries the policy for when and at what cost the
// reservation may still be changed.
//
// Order follows these invariants:
//   - Must reference a customer, a dinner type and a serving style
//   - Delivery time and address must be set
//   - Total price cannot be negative
//   - Status and approval transitions follow the defined state machines
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           int64
	userID       int64
	dinnerTypeID int64
	servingStyle menu.ServingStyle

	deliveryTime    time.Time
	deliveryAddress string

	totalPrice    int
	paymentMethod string

	status         Status
	approvalStatus ApprovalStatus

	// employees handling the order (nil until assigned)
	cookingEmployeeID  *int64
	deliveryEmployeeID *int64

	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order with validation. The order starts Pending
// with approval awaiting review.
func NewOrder(
	userID int64,
	dinnerTypeID int64,
	servingStyle menu.ServingStyle,
	deliveryTime time.Time,
	deliveryAddress string,
	totalPrice int,
	paymentMethod string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:         StatusPending,
		approvalStatus: ApprovalPending,
		createdAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setDinnerTypeID(dinnerTypeID),
		o.setServingStyle(servingStyle),
		o.setDeliveryTime(deliveryTime),
		o.setDeliveryAddress(deliveryAddress),
		o.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}
	o.paymentMethod = paymentMethod

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without applying the
// creation defaults. Field validation still runs so corrupt rows surface as
// errors instead of invalid aggregates.
func RestoreOrder(
	id int64,
	userID int64,
	dinnerTypeID int64,
	servingStyle menu.ServingStyle,
	deliveryTime time.Time,
	deliveryAddress string,
	totalPrice int,
	paymentMethod string,
	status Status,
	approvalStatus ApprovalStatus,
	cookingEmployeeID *int64,
	deliveryEmployeeID *int64,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		id:                 id,
		paymentMethod:      paymentMethod,
		cookingEmployeeID:  cookingEmployeeID,
		deliveryEmployeeID: deliveryEmployeeID,
		createdAt:          createdAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setDinnerTypeID(dinnerTypeID),
		o.setServingStyle(servingStyle),
		o.setDeliveryTime(deliveryTime),
		o.setDeliveryAddress(deliveryAddress),
		o.setTotalPrice(totalPrice),
		status.Validate(),
		approvalStatus.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status
	o.approvalStatus = approvalStatus

	return o, nil
}

// Validate ensures the Order was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

// ID returns the order's identifier (zero until persisted).
func (o *Order) ID() int64 { return o.id }

// SetID records the identifier assigned by the store. It can be set once.
func (o *Order) SetID(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("order id is already set to %d", o.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not a valid order id", id))
	}
	o.id = id
	return nil
}

// UserID returns the owning customer's identifier.
func (o *Order) UserID() int64 { return o.userID }

// DinnerTypeID returns the ordered dinner type.
func (o *Order) DinnerTypeID() int64 { return o.dinnerTypeID }

// ServingStyle returns the ordered serving style.
func (o *Order) ServingStyle() menu.ServingStyle { return o.servingStyle }

// DeliveryTime returns the requested delivery time.
func (o *Order) DeliveryTime() time.Time { return o.deliveryTime }

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// TotalPrice returns the amount charged for the order.
func (o *Order) TotalPrice() int { return o.totalPrice }

// PaymentMethod returns the payment method the order was placed with.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// Status returns the kitchen lifecycle status.
func (o *Order) Status() Status { return o.status }

// ApprovalStatus returns the admin review status.
func (o *Order) ApprovalStatus() ApprovalStatus { return o.approvalStatus }

// CookingEmployeeID returns the kitchen employee handling the order, nil
// until cooking starts.
func (o *Order) CookingEmployeeID() *int64 { return o.cookingEmployeeID }

// DeliveryEmployeeID returns the courier assigned to the order, nil until
// scheduled.
func (o *Order) DeliveryEmployeeID() *int64 { return o.deliveryEmployeeID }

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ReservationDate returns the calendar date of the delivery, midnight in the
// delivery time's location. Change-fee and cutoff policy compares dates, not
// clock times.
func (o *Order) ReservationDate() time.Time {
	t := o.deliveryTime
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartCooking moves the order into Cooking and records the kitchen employee.
func (o *Order) StartCooking(employeeID int64) error {
	if employeeID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("employee id",
			fmt.Errorf("%d is not a valid employee id", employeeID))
	}

	newStatus, err := o.status.TransitionTo(StatusCooking)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cookingEmployeeID = &employeeID
	return nil
}

// MarkReady moves the order from Cooking to Ready.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.TransitionTo(StatusReady)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// StartDelivery moves the order to OutForDelivery with the courier taking it.
func (o *Order) StartDelivery(employeeID int64) error {
	if employeeID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("employee id",
			fmt.Errorf("%d is not a valid employee id", employeeID))
	}

	newStatus, err := o.status.TransitionTo(StatusOutForDelivery)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryEmployeeID = &employeeID
	return nil
}

// MarkDelivered marks the order as delivered. Calling it on an already
// delivered order is a no-op, so retried admin requests stay idempotent.
// Cancelled orders cannot be delivered.
func (o *Order) MarkDelivered() error {
	if o.status == StatusDelivered {
		return nil
	}

	newStatus, err := o.status.TransitionTo(StatusDelivered)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel cancels the order. Delivered orders cannot be cancelled and
// cancelling twice is rejected. A rejected approval is preserved so the
// review outcome stays on record.
func (o *Order) Cancel() error {
	newStatus, err := o.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}
	o.status = newStatus

	if o.approvalStatus.CanTransitionTo(ApprovalCancelled) {
		o.approvalStatus, _ = o.approvalStatus.TransitionTo(ApprovalCancelled)
	}
	return nil
}

// Approve marks the order as accepted by an admin.
func (o *Order) Approve() error {
	newStatus, err := o.approvalStatus.TransitionTo(ApprovalApproved)
	if err != nil {
		return err
	}
	o.approvalStatus = newStatus
	return nil
}

// Reject marks the order as declined by an admin.
func (o *Order) Reject() error {
	newStatus, err := o.approvalStatus.TransitionTo(ApprovalRejected)
	if err != nil {
		return err
	}
	o.approvalStatus = newStatus
	return nil
}

// AssignDeliveryEmployee pins a courier to the order without changing status,
// used when a delivery schedule is planned ahead of pickup.
func (o *Order) AssignDeliveryEmployee(employeeID int64) error {
	if employeeID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("employee id",
			fmt.Errorf("%d is not a valid employee id", employeeID))
	}
	o.deliveryEmployeeID = &employeeID
	return nil
}

// CanModify reports whether the order may still be modified in place at the
// given moment. Modification requires at least three hours before delivery
// and a live, not yet cooking order.
func (o *Order) CanModify(now time.Time) bool {
	if o.status != StatusPending {
		return false
	}
	return o.deliveryTime.Sub(now) >= minModificationLead
}

// IsSameDayModification reports whether a modification at the given moment
// happens on the delivery day itself, which carries a flat surcharge.
func (o *Order) IsSameDayModification(now time.Time) bool {
	res := o.ReservationDate()
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return nowDate.Equal(res)
}

// CanRequestChange reports whether a reservation change request may still be
// opened. Changes close one day before the reservation date: the request day
// must fall strictly before reservation date minus one day.
func (o *Order) CanRequestChange(today time.Time) bool {
	if o.status.IsFinal() {
		return false
	}
	cutoff := o.ReservationDate().AddDate(0, 0, -1)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return todayDate.Before(cutoff)
}

// RequiresChangeFee reports whether a change request opened today incurs the
// flat change fee. The fee window is strictly between three days and one day
// before the reservation date, both ends exclusive.
func (o *Order) RequiresChangeFee(today time.Time) bool {
	res := o.ReservationDate()
	lower := res.AddDate(0, 0, -3)
	upper := res.AddDate(0, 0, -1)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return todayDate.After(lower) && todayDate.Before(upper)
}

// ApplyChange overwrites the reservation details after an approved change
// request completes. The courier assignment is cleared because the delivery
// plan no longer matches.
func (o *Order) ApplyChange(
	dinnerTypeID int64,
	servingStyle menu.ServingStyle,
	deliveryTime time.Time,
	deliveryAddress string,
	newTotalPrice int,
) error {
	if o.status.IsFinal() {
		return errs.NewBusinessRuleError("order change",
			fmt.Sprintf("cannot change a %s order", o.status))
	}

	if err := errors.Join(
		o.setDinnerTypeID(dinnerTypeID),
		o.setServingStyle(servingStyle),
		o.setDeliveryTime(deliveryTime),
		o.setDeliveryAddress(deliveryAddress),
		o.setTotalPrice(newTotalPrice),
	); err != nil {
		return err
	}

	o.deliveryEmployeeID = nil
	return nil
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id",
			fmt.Errorf("%d is not a valid user id", userID))
	}
	o.userID = userID
	return nil
}

func (o *Order) setDinnerTypeID(dinnerTypeID int64) error {
	if dinnerTypeID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dinner type id",
			fmt.Errorf("%d is not a valid dinner type id", dinnerTypeID))
	}
	o.dinnerTypeID = dinnerTypeID
	return nil
}

func (o *Order) setServingStyle(style menu.ServingStyle) error {
	if err := style.Validate(); err != nil {
		return err
	}
	o.servingStyle = style
	return nil
}

func (o *Order) setDeliveryTime(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("delivery time")
	}
	o.deliveryTime = t
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setTotalPrice(price int) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total price",
			fmt.Errorf("%d is negative", price))
	}
	o.totalPrice = price
	return nil
}
