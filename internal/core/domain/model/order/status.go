package order

import (
	"fmt"

	"dinner/internal/pkg/errs"
)

// Status represents the kitchen lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Cooking ──> Ready ──> OutForDelivery ──> Delivered
//	   │           │          │              │
//	   └───────────┴──────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are final states. An admin may also mark any
// non-final order as Delivered directly when the forward steps were not
// recorded.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first placed.
	StatusPending

	// StatusCooking indicates the kitchen has started preparing the order.
	// Starting cooking consumes the order's ingredient reservations.
	StatusCooking

	// StatusReady indicates the order is cooked and waiting for a courier.
	StatusReady

	// StatusOutForDelivery indicates a courier has picked up the order.
	StatusOutForDelivery

	// StatusDelivered indicates the order reached the customer. Final state.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled. Final state.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their persisted string
// representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusPending:        "pending",
		StatusCooking:        "cooking",
		StatusReady:          "ready",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
	}
}

// getStatusTransitions returns the legal transition table. A status not
// present as a key, or a target not present in the key's list, is an illegal
// transition.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusCooking, StatusDelivered, StatusCancelled},
		StatusCooking:        {StatusReady, StatusDelivered, StatusCancelled},
		StatusReady:          {StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusOutForDelivery: {StatusDelivered, StatusCancelled},
		StatusDelivered:      {},
		StatusCancelled:      {},
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
		fmt.Errorf("%q is not a valid order status", raw))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the persisted name of the status, implementing fmt.Stringer.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the transition table allows moving from
// the current status to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves to the next status, rejecting transitions that are not
// in the table.
//
// Returns:
//   - (next, nil) on a legal transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("cannot transition order from %s to %s", s, next),
		)
	}
	return next, nil
}
