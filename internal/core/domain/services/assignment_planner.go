package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"dinner/internal/core/domain/model/kernel"
	"dinner/internal/core/domain/model/schedule"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
)

// ErrNoCourierAvailable is returned when every courier is either loaded with
// an overlapping run or off shift for the requested delivery.
var ErrNoCourierAvailable = errors.New("no courier available")

// Assignment is a planned courier run: who goes out, when they leave, when
// the customer is reached and when the courier is expected back.
type Assignment struct {
	EmployeeID          int64
	DepartureTime       time.Time
	ArrivalTime         time.Time
	EstimatedReturnTime time.Time
	OneWayMinutes       int
}

// AssignmentPlanner is a domain service that plans delivery runs: it derives
// departure and return times from the travel estimate, keeps runs inside the
// courier shift, and balances load by ranking couriers by their same-day run
// count.
type AssignmentPlanner struct {
	schedules ports.ScheduleRepository
	employees ports.EmployeeRepository
	estimator TravelEstimator
}

// NewAssignmentPlanner creates an AssignmentPlanner over the given
// repositories.
func NewAssignmentPlanner(
	schedules ports.ScheduleRepository,
	employees ports.EmployeeRepository,
	estimator TravelEstimator,
) (*AssignmentPlanner, error) {
	if schedules == nil {
		return nil, errs.NewValueIsRequiredError("schedules")
	}
	if employees == nil {
		return nil, errs.NewValueIsRequiredError("employees")
	}
	return &AssignmentPlanner{
		schedules: schedules,
		employees: employees,
		estimator: estimator,
	}, nil
}

// PrepareAssignment plans a run for delivering to address at arrivalTime
// without writing anything: departure is one travel leg before arrival,
// return one leg after. The least-loaded courier without an overlapping run
// is picked; ties break by ascending employee id.
func (p *AssignmentPlanner) PrepareAssignment(
	ctx context.Context,
	address string,
	arrivalTime time.Time,
) (Assignment, error) {
	departure, estimatedReturn, oneWay, err := p.computeRunTimes(address, arrivalTime)
	if err != nil {
		return Assignment{}, err
	}

	window, err := kernel.NewWindowForTime(arrivalTime)
	if err != nil {
		return Assignment{}, err
	}

	candidates, err := p.rankCouriers(ctx, window)
	if err != nil {
		return Assignment{}, err
	}

	for _, candidate := range candidates {
		free, err := p.isFree(ctx, candidate, window, departure, estimatedReturn, 0)
		if err != nil {
			return Assignment{}, err
		}
		if free {
			return Assignment{
				EmployeeID:          candidate,
				DepartureTime:       departure,
				ArrivalTime:         arrivalTime,
				EstimatedReturnTime: estimatedReturn,
				OneWayMinutes:       oneWay,
			}, nil
		}
	}

	return Assignment{}, ErrNoCourierAvailable
}

// CommitAssignmentForOrder recomputes the run times, re-validates them and
// upserts the order's schedule row. An existing live run is moved to the new
// courier and times; a cancelled run is updated in place but stays
// cancelled, so planning over it does not resurrect it.
func (p *AssignmentPlanner) CommitAssignmentForOrder(
	ctx context.Context,
	orderID int64,
	employeeID int64,
	deliveryTime time.Time,
	address string,
) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}

	departure, estimatedReturn, oneWay, err := p.computeRunTimes(address, deliveryTime)
	if err != nil {
		return err
	}

	window, err := kernel.NewWindowForTime(deliveryTime)
	if err != nil {
		return err
	}

	existing, err := p.schedules.GetLatestByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	ownID := int64(0)
	if existing != nil {
		ownID = existing.ID()
	}

	free, err := p.isFree(ctx, employeeID, window, departure, estimatedReturn, ownID)
	if err != nil {
		return err
	}
	if !free {
		return errs.NewBusinessRuleError("courier overlap",
			fmt.Sprintf("employee %d already has a run overlapping %s to %s",
				employeeID, departure.Format("15:04"), estimatedReturn.Format("15:04")))
	}

	if existing != nil {
		if err := existing.Reassign(employeeID, departure, deliveryTime, estimatedReturn, oneWay); err != nil {
			return err
		}
		return p.schedules.Update(ctx, existing)
	}

	run, err := schedule.NewDeliverySchedule(orderID, employeeID, departure, deliveryTime, estimatedReturn, oneWay)
	if err != nil {
		return err
	}
	return p.schedules.Add(ctx, run)
}

// CancelScheduleForOrder soft-cancels the order's live run. A missing or
// already-cancelled schedule is a no-op, not an error.
func (p *AssignmentPlanner) CancelScheduleForOrder(ctx context.Context, orderID int64) error {
	run, err := p.schedules.GetActiveByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if err := run.Cancel(); err != nil {
		return err
	}
	return p.schedules.Update(ctx, run)
}

// UpdateStatus transitions a run's lifecycle. Only the assigned courier or
// an admin may transition a run.
func (p *AssignmentPlanner) UpdateStatus(
	ctx context.Context,
	scheduleID int64,
	target schedule.Status,
	requesterID int64,
	isAdmin bool,
) error {
	run, err := p.schedules.Get(ctx, scheduleID)
	if err != nil {
		return err
	}

	if !isAdmin && run.EmployeeID() != requesterID {
		return errs.NewBusinessRuleError("schedule access",
			fmt.Sprintf("employee %d is not assigned to run %d", requesterID, scheduleID))
	}

	switch target {
	case schedule.StatusInProgress:
		err = run.Start()
	case schedule.StatusCompleted:
		err = run.Complete()
	case schedule.StatusCancelled:
		err = run.Cancel()
	default:
		err = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid target status", target))
	}
	if err != nil {
		return err
	}

	return p.schedules.Update(ctx, run)
}

// EstimateOneWayMinutes exposes the travel estimate for quoting and display.
func (p *AssignmentPlanner) EstimateOneWayMinutes(address string, deliveryTime time.Time) (int, error) {
	return p.estimator.EstimateOneWayMinutes(address, deliveryTime)
}

func (p *AssignmentPlanner) computeRunTimes(address string, arrivalTime time.Time) (time.Time, time.Time, int, error) {
	oneWay, err := p.estimator.EstimateOneWayMinutes(address, arrivalTime)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}

	departure := arrivalTime.Add(-time.Duration(oneWay) * time.Minute)
	estimatedReturn := arrivalTime.Add(time.Duration(oneWay) * time.Minute)

	if err := validateShiftBounds(departure, estimatedReturn); err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	return departure, estimatedReturn, oneWay, nil
}

// rankCouriers orders couriers by ascending same-day run count, breaking
// ties by employee id.
func (p *AssignmentPlanner) rankCouriers(ctx context.Context, window kernel.Window) ([]int64, error) {
	couriers, err := p.employees.GetCouriers(ctx)
	if err != nil {
		return nil, err
	}
	if len(couriers) == 0 {
		return nil, ErrNoCourierAvailable
	}

	type load struct {
		id    int64
		count int
	}
	loads := make([]load, 0, len(couriers))
	for _, courier := range couriers {
		count, err := p.schedules.CountActiveByEmployeeInWindow(ctx, courier.ID, window)
		if err != nil {
			return nil, err
		}
		loads = append(loads, load{id: courier.ID, count: count})
	}

	sort.Slice(loads, func(i, j int) bool {
		if loads[i].count != loads[j].count {
			return loads[i].count < loads[j].count
		}
		return loads[i].id < loads[j].id
	})

	ranked := make([]int64, len(loads))
	for i, l := range loads {
		ranked[i] = l.id
	}
	return ranked, nil
}

// isFree reports whether the courier has no live run overlapping the
// interval. A run with id ownScheduleID is ignored so an order's own row
// does not block its re-assignment.
func (p *AssignmentPlanner) isFree(
	ctx context.Context,
	employeeID int64,
	window kernel.Window,
	departure time.Time,
	estimatedReturn time.Time,
	ownScheduleID int64,
) (bool, error) {
	runs, err := p.schedules.GetActiveByEmployeeInWindow(ctx, employeeID, window)
	if err != nil {
		return false, err
	}

	for _, run := range runs {
		if ownScheduleID != 0 && run.ID() == ownScheduleID {
			continue
		}
		if run.OverlapsInterval(departure, estimatedReturn) {
			return false, nil
		}
	}
	return true, nil
}

func validateShiftBounds(departure, estimatedReturn time.Time) error {
	t := departure
	shiftStart := time.Date(t.Year(), t.Month(), t.Day(), schedule.ShiftStartHour, 0, 0, 0, t.Location())
	shiftEnd := time.Date(t.Year(), t.Month(), t.Day(), schedule.ShiftEndHour, 0, 0, 0, t.Location())

	if departure.Before(shiftStart) || estimatedReturn.After(shiftEnd) {
		return errs.NewBusinessRuleError("delivery shift",
			fmt.Sprintf("run %s to %s does not fit the %02d:00 to %02d:00 shift",
				departure.Format("15:04"), estimatedReturn.Format("15:04"),
				schedule.ShiftStartHour, schedule.ShiftEndHour))
	}
	return nil
}
