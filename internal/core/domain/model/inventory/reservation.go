package inventory

import (
	"errors"
	"fmt"
	"time"

	"dinner/internal/core/domain/model/kernel"
	"dinner/internal/pkg/errs"
)

// reservationTTL is how long after the delivery time a perishable
// reservation stays valid before the expiry sweep may purge it.
const reservationTTL = 72 * time.Hour

var (
	// ErrReservationIsNotConstructed is returned when a Reservation instance
	// was not created through NewReservation or RestoreReservation.
	ErrReservationIsNotConstructed = errors.New("Reservation must be created via NewReservation constructor")

	// ErrReservationAlreadyConsumed is returned when consuming a reservation
	// that was already consumed.
	ErrReservationAlreadyConsumed = errors.New("reservation is already consumed")
)

// Reservation holds quantity of a menu item against its delivery-day window
// on behalf of an order. Reservations are consumed when cooking starts and
// released when the order is cancelled before cooking. Perishable items
// carry an expiry after which the nightly sweep purges unconsumed holds;
// alcohol and beverages never expire.
type Reservation struct {
	id         int64
	orderID    int64
	menuItemID int64
	quantity   int

	window       kernel.Window
	deliveryTime time.Time

	consumed  bool
	expiresAt *time.Time

	isConstructed bool
}

// NewReservation creates a hold for quantity of an item in the delivery
// day's window. Non-perishable items (alcohol, beverages) get no expiry.
func NewReservation(
	orderID int64,
	menuItemID int64,
	quantity int,
	deliveryTime time.Time,
	perishable bool,
) (*Reservation, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not a valid order id", orderID))
	}
	if menuItemID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("menu item id",
			fmt.Errorf("%d is not a valid menu item id", menuItemID))
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	window, err := kernel.NewWindowForTime(deliveryTime)
	if err != nil {
		return nil, err
	}

	r := &Reservation{
		orderID:       orderID,
		menuItemID:    menuItemID,
		quantity:      quantity,
		window:        window,
		deliveryTime:  deliveryTime,
		isConstructed: true,
	}

	if perishable {
		expiry := deliveryTime.Add(reservationTTL)
		r.expiresAt = &expiry
	}

	return r, nil
}

// RestoreReservation reconstructs a reservation from persistence.
func RestoreReservation(
	id int64,
	orderID int64,
	menuItemID int64,
	quantity int,
	deliveryTime time.Time,
	consumed bool,
	expiresAt *time.Time,
) (*Reservation, error) {
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	window, err := kernel.NewWindowForTime(deliveryTime)
	if err != nil {
		return nil, err
	}

	return &Reservation{
		id:            id,
		orderID:       orderID,
		menuItemID:    menuItemID,
		quantity:      quantity,
		window:        window,
		deliveryTime:  deliveryTime,
		consumed:      consumed,
		expiresAt:     expiresAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Reservation was properly constructed.
func (r *Reservation) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReservationIsNotConstructed
	}
	return nil
}

// ID returns the reservation identifier (zero until persisted).
func (r *Reservation) ID() int64 { return r.id }

// SetID records the identifier assigned by the store.
func (r *Reservation) SetID(id int64) error {
	if r.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("reservation id is already set to %d", r.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not a valid reservation id", id))
	}
	r.id = id
	return nil
}

// OrderID returns the order holding the reservation.
func (r *Reservation) OrderID() int64 { return r.orderID }

// MenuItemID returns the reserved item.
func (r *Reservation) MenuItemID() int64 { return r.menuItemID }

// Quantity returns the held quantity.
func (r *Reservation) Quantity() int { return r.quantity }

// Window returns the delivery-day window the hold counts against.
func (r *Reservation) Window() kernel.Window { return r.window }

// DeliveryTime returns the delivery time the hold was made for.
func (r *Reservation) DeliveryTime() time.Time { return r.deliveryTime }

// IsConsumed reports whether cooking already used up the hold.
func (r *Reservation) IsConsumed() bool { return r.consumed }

// ExpiresAt returns the purge deadline, nil for non-perishable items.
func (r *Reservation) ExpiresAt() *time.Time { return r.expiresAt }

// IsExpired reports whether the hold passed its purge deadline.
func (r *Reservation) IsExpired(now time.Time) bool {
	return r.expiresAt != nil && now.After(*r.expiresAt)
}

// Consume marks the hold as used by the kitchen. Consuming twice is rejected
// so repeated cooking starts cannot double-deduct capacity.
func (r *Reservation) Consume() error {
	if r.consumed {
		return ErrReservationAlreadyConsumed
	}
	r.consumed = true
	return nil
}
