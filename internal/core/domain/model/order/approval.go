package order

import (
	"fmt"

	"dinner/internal/pkg/errs"
)

// ApprovalStatus tracks the admin review track of an order, independent of
// the kitchen lifecycle.
//
// State transitions:
//
//	ApprovalPending ──┬──> ApprovalApproved ──> ApprovalCancelled
//	                  ├──> ApprovalRejected
//	                  └──> ApprovalCancelled
//
// A rejected order keeps its rejection even when the order is later
// cancelled, so the audit trail records why it never shipped.
type ApprovalStatus int

const (
	// ApprovalUnknown represents an invalid or undefined approval status.
	ApprovalUnknown ApprovalStatus = iota

	// ApprovalPending means the order awaits admin review.
	ApprovalPending

	// ApprovalApproved means an admin accepted the order for fulfillment.
	ApprovalApproved

	// ApprovalRejected means an admin declined the order. Final state.
	ApprovalRejected

	// ApprovalCancelled means the order was withdrawn before or after
	// approval. Final state.
	ApprovalCancelled
)

func getApprovalStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		ApprovalUnknown:   "UNKNOWN",
		ApprovalPending:   "PENDING",
		ApprovalApproved:  "APPROVED",
		ApprovalRejected:  "REJECTED",
		ApprovalCancelled: "CANCELLED",
	}
}

func getApprovalTransitions() map[ApprovalStatus][]ApprovalStatus {
	return map[ApprovalStatus][]ApprovalStatus{
		ApprovalPending:   {ApprovalApproved, ApprovalRejected, ApprovalCancelled},
		ApprovalApproved:  {ApprovalCancelled},
		ApprovalRejected:  {},
		ApprovalCancelled: {},
	}
}

// ParseApprovalStatus converts a persisted string into an ApprovalStatus.
func ParseApprovalStatus(raw string) (ApprovalStatus, error) {
	for status, str := range getApprovalStrings() {
		if str == raw && status != ApprovalUnknown {
			return status, nil
		}
	}
	return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause("approval status",
		fmt.Errorf("%q is not a valid approval status", raw))
}

// Validate checks if the ApprovalStatus value is valid.
func (s ApprovalStatus) Validate() error {
	if _, ok := getApprovalTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("approval status",
			fmt.Errorf("%d is not a valid approval status", s))
	}
	return nil
}

// String returns the persisted name of the approval status.
func (s ApprovalStatus) String() string {
	if str, ok := getApprovalStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether the transition table allows moving from
// the current approval status to next.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	for _, allowed := range getApprovalTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves to the next approval status, rejecting transitions that
// are not in the table.
func (s ApprovalStatus) TransitionTo(next ApprovalStatus) (ApprovalStatus, error) {
	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"approval status transition",
			fmt.Errorf("cannot transition approval from %s to %s", s, next),
		)
	}
	return next, nil
}
