package schedule

import (
	"fmt"

	"dinner/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery schedule.
//
// State transitions:
//
//	Scheduled ──> InProgress ──> Completed
//	    │             │
//	    └─────────────┴──> Cancelled
//
// Completed and Cancelled are final states.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusScheduled means the run is planned but the courier has not left.
	StatusScheduled

	// StatusInProgress means the courier is out on the run.
	StatusInProgress

	// StatusCompleted means the courier returned. Final state.
	StatusCompleted

	// StatusCancelled means the run was called off. Final state.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusScheduled:  "SCHEDULED",
		StatusInProgress: "IN_PROGRESS",
		StatusCompleted:  "COMPLETED",
		StatusCancelled:  "CANCELLED",
	}
}

func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusScheduled:  {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusCancelled},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}
}

// ParseStatus converts a persisted string into a Status.
func ParseStatus(raw string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == raw && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid schedule status", raw))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid schedule status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the run still occupies the courier's shift.
// Cancelled runs free their slot; completed runs already happened.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusInProgress
}

// TransitionTo moves to the next status, rejecting transitions that are not
// in the table.
func (s Status) TransitionTo(next Status) (Status, error) {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == next {
			return next, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"status transition",
		fmt.Errorf("cannot transition schedule from %s to %s", s, next),
	)
}
