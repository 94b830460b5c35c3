package schedule

import (
	"errors"
	"fmt"
	"time"

	"dinner/internal/pkg/errs"
)

// Couriers work a fixed evening shift. Runs must depart and return inside it.
const (
	ShiftStartHour = 15
	ShiftEndHour   = 22
)

var (
	// ErrScheduleIsNotConstructed is returned when a DeliverySchedule instance
	// was not created through NewDeliverySchedule or RestoreDeliverySchedule.
	ErrScheduleIsNotConstructed = errors.New("DeliverySchedule must be created via NewDeliverySchedule constructor")
)

// DeliverySchedule is a planned delivery run: one courier leaving for one
// order and coming back. Runs for the same courier must not overlap while
// active, and must fit inside the evening shift.
type DeliverySchedule struct {
	id         int64
	orderID    int64
	employeeID int64

	departureTime       time.Time
	arrivalTime         time.Time
	estimatedReturnTime time.Time
	oneWayMinutes       int

	status Status

	isConstructed bool
}

// NewDeliverySchedule plans a run for an order. The run starts Scheduled and
// must fit the courier's shift.
func NewDeliverySchedule(
	orderID int64,
	employeeID int64,
	departureTime time.Time,
	arrivalTime time.Time,
	estimatedReturnTime time.Time,
	oneWayMinutes int,
) (*DeliverySchedule, error) {
	s := &DeliverySchedule{
		status:        StatusScheduled,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setOrderID(orderID),
		s.setEmployeeID(employeeID),
		s.setRun(departureTime, arrivalTime, estimatedReturnTime, oneWayMinutes),
	); err != nil {
		return nil, err
	}

	if err := s.validateShift(); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreDeliverySchedule reconstructs a run from persistence. Shift bounds
// are not re-checked so historical rows planned under older shift rules
// still load.
func RestoreDeliverySchedule(
	id int64,
	orderID int64,
	employeeID int64,
	departureTime time.Time,
	arrivalTime time.Time,
	estimatedReturnTime time.Time,
	oneWayMinutes int,
	status Status,
) (*DeliverySchedule, error) {
	s := &DeliverySchedule{
		id:            id,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setOrderID(orderID),
		s.setEmployeeID(employeeID),
		s.setRun(departureTime, arrivalTime, estimatedReturnTime, oneWayMinutes),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	s.status = status

	return s, nil
}

// Validate ensures the DeliverySchedule was properly constructed.
func (s *DeliverySchedule) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrScheduleIsNotConstructed
	}
	return nil
}

// ID returns the schedule identifier (zero until persisted).
func (s *DeliverySchedule) ID() int64 { return s.id }

// SetID records the identifier assigned by the store.
func (s *DeliverySchedule) SetID(id int64) error {
	if s.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("schedule id is already set to %d", s.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not a valid schedule id", id))
	}
	s.id = id
	return nil
}

// OrderID returns the order the run delivers.
func (s *DeliverySchedule) OrderID() int64 { return s.orderID }

// EmployeeID returns the courier on the run.
func (s *DeliverySchedule) EmployeeID() int64 { return s.employeeID }

// DepartureTime returns when the courier leaves.
func (s *DeliverySchedule) DepartureTime() time.Time { return s.departureTime }

// ArrivalTime returns when the dinner reaches the customer.
func (s *DeliverySchedule) ArrivalTime() time.Time { return s.arrivalTime }

// EstimatedReturnTime returns when the courier is expected back.
func (s *DeliverySchedule) EstimatedReturnTime() time.Time { return s.estimatedReturnTime }

// OneWayMinutes returns the travel estimate the run was planned with.
func (s *DeliverySchedule) OneWayMinutes() int { return s.oneWayMinutes }

// Status returns the run's lifecycle status.
func (s *DeliverySchedule) Status() Status { return s.status }

// Overlaps reports whether two runs occupy overlapping time: this run's
// return falls after the other's departure and its departure before the
// other's return.
func (s *DeliverySchedule) Overlaps(other *DeliverySchedule) bool {
	if other == nil {
		return false
	}
	return s.estimatedReturnTime.After(other.departureTime) &&
		s.departureTime.Before(other.estimatedReturnTime)
}

// OverlapsInterval reports whether the run overlaps the given time interval.
func (s *DeliverySchedule) OverlapsInterval(departure, estimatedReturn time.Time) bool {
	return s.estimatedReturnTime.After(departure) &&
		s.departureTime.Before(estimatedReturn)
}

// Replan moves the run to new times while it is still Scheduled.
func (s *DeliverySchedule) Replan(departureTime, arrivalTime, estimatedReturnTime time.Time, oneWayMinutes int) error {
	if s.status != StatusScheduled {
		return errs.NewBusinessRuleError("schedule replan",
			fmt.Sprintf("cannot replan a %s run", s.status))
	}
	if err := s.setRun(departureTime, arrivalTime, estimatedReturnTime, oneWayMinutes); err != nil {
		return err
	}
	return s.validateShift()
}

// Reassign moves the run to a new courier and new times while preserving its
// current status. Used by the assignment upsert: planning over a cancelled
// run updates its record without resurrecting it.
func (s *DeliverySchedule) Reassign(
	employeeID int64,
	departureTime, arrivalTime, estimatedReturnTime time.Time,
	oneWayMinutes int,
) error {
	if s.status == StatusCompleted {
		return errs.NewBusinessRuleError("schedule reassign",
			"cannot reassign a completed run")
	}
	if err := s.setEmployeeID(employeeID); err != nil {
		return err
	}
	if err := s.setRun(departureTime, arrivalTime, estimatedReturnTime, oneWayMinutes); err != nil {
		return err
	}
	return s.validateShift()
}

// Start marks the run as departed.
func (s *DeliverySchedule) Start() error {
	next, err := s.status.TransitionTo(StatusInProgress)
	if err != nil {
		return err
	}
	s.status = next
	return nil
}

// Complete marks the run as returned.
func (s *DeliverySchedule) Complete() error {
	next, err := s.status.TransitionTo(StatusCompleted)
	if err != nil {
		return err
	}
	s.status = next
	return nil
}

// Cancel calls the run off, freeing the courier's slot.
func (s *DeliverySchedule) Cancel() error {
	next, err := s.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}
	s.status = next
	return nil
}

func (s *DeliverySchedule) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not a valid order id", orderID))
	}
	s.orderID = orderID
	return nil
}

func (s *DeliverySchedule) setEmployeeID(employeeID int64) error {
	if employeeID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("employee id",
			fmt.Errorf("%d is not a valid employee id", employeeID))
	}
	s.employeeID = employeeID
	return nil
}

func (s *DeliverySchedule) setRun(departure, arrival, estimatedReturn time.Time, oneWayMinutes int) error {
	if departure.IsZero() {
		return errs.NewValueIsRequiredError("departure time")
	}
	if arrival.IsZero() {
		return errs.NewValueIsRequiredError("arrival time")
	}
	if estimatedReturn.IsZero() {
		return errs.NewValueIsRequiredError("estimated return time")
	}
	if arrival.Before(departure) {
		return errs.NewValueIsInvalidErrorWithCause("arrival time",
			fmt.Errorf("arrival %s is before departure %s", arrival, departure))
	}
	if !estimatedReturn.After(arrival) {
		return errs.NewValueIsInvalidErrorWithCause("estimated return time",
			fmt.Errorf("return %s is not after arrival %s", estimatedReturn, arrival))
	}
	if oneWayMinutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("one way minutes",
			fmt.Errorf("%d is not a valid travel estimate", oneWayMinutes))
	}
	s.departureTime = departure
	s.arrivalTime = arrival
	s.estimatedReturnTime = estimatedReturn
	s.oneWayMinutes = oneWayMinutes
	return nil
}

func (s *DeliverySchedule) validateShift() error {
	t := s.departureTime
	shiftStart := time.Date(t.Year(), t.Month(), t.Day(), ShiftStartHour, 0, 0, 0, t.Location())
	shiftEnd := time.Date(t.Year(), t.Month(), t.Day(), ShiftEndHour, 0, 0, 0, t.Location())

	if s.departureTime.Before(shiftStart) || s.estimatedReturnTime.After(shiftEnd) {
		return errs.NewBusinessRuleError("delivery shift",
			fmt.Sprintf("run %s to %s does not fit the %02d:00 to %02d:00 shift",
				s.departureTime.Format("15:04"), s.estimatedReturnTime.Format("15:04"),
				ShiftStartHour, ShiftEndHour))
	}
	return nil
}
