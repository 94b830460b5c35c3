package changereq

import (
	"fmt"

	"dinner/internal/pkg/errs"
)

// Status represents the lifecycle state of a reservation change request.
//
// State transitions:
//
//	Requested ──┬──> Approved
//	            ├──> Rejected
//	            ├──> PaymentFailed ──┬──> Approved
//	            │                    └──> Rejected
//	            └──> RefundFailed ───┬──> Approved
//	                                 └──> Rejected
//
// A request parked in PaymentFailed or RefundFailed still counts as active:
// the money side is unresolved and an admin may retry the approval. Only one
// active request may exist per order at a time.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusRequested means the change was opened and awaits admin review.
	StatusRequested

	// StatusApproved means payment settled and the order was rewritten.
	// Final state.
	StatusApproved

	// StatusRejected means an admin declined the change. Final state.
	StatusRejected

	// StatusPaymentFailed means the extra charge could not be collected.
	// The request stays parked for a retried approval or a rejection.
	StatusPaymentFailed

	// StatusRefundFailed means the refund of the price difference failed.
	// The request stays parked for a retried approval or a rejection.
	StatusRefundFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:       "UNKNOWN",
		StatusRequested:     "REQUESTED",
		StatusApproved:      "APPROVED",
		StatusRejected:      "REJECTED",
		StatusPaymentFailed: "PAYMENT_FAILED",
		StatusRefundFailed:  "REFUND_FAILED",
	}
}

func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusRequested:     {StatusApproved, StatusRejected, StatusPaymentFailed, StatusRefundFailed},
		StatusPaymentFailed: {StatusApproved, StatusRejected, StatusRefundFailed},
		StatusRefundFailed:  {StatusApproved, StatusRejected, StatusPaymentFailed},
		StatusApproved:      {},
		StatusRejected:      {},
	}
}

// ActiveStatuses returns the statuses that block opening another change
// request for the same order.
func ActiveStatuses() []Status {
	return []Status{StatusRequested, StatusPaymentFailed, StatusRefundFailed}
}

// ParseStatus converts a persisted string into a Status.
func ParseStatus(raw string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == raw && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid change request status", raw))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid change request status", s))
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

// IsActive reports whether the request still holds its order: awaiting
// review, or parked on a failed money movement.
func (s Status) IsActive() bool {
	for _, active := range ActiveStatuses() {
		if s == active {
			return true
		}
	}
	return false
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
		fmt.Errorf("cannot transition change request from %s to %s", s, next),
	)
}
