package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBusinessRuleViolated is the sentinel error for domain rules that a
	// syntactically valid request still breaks. Callers must change the
	// request (or wait), retrying as-is will not help.
	ErrBusinessRuleViolated = errors.New("business rule violated")

	// ErrCapacityExceeded is the sentinel error for reservation requests that
	// would overflow an item's daily capacity window.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrStorageContention is the sentinel error for transient lock/busy
	// failures of the single-writer store. Safe to retry.
	ErrStorageContention = errors.New("storage is busy")

	// ErrPaymentFailed is the sentinel error for charge/refund failures
	// reported by the payment gateway.
	ErrPaymentFailed = errors.New("payment failed")
)

// BusinessRuleError reports a violated domain rule. Rule is a stable
// machine-readable name, Message the human-readable detail.
type BusinessRuleError struct {
	Rule    string
	Message string
}

// NewBusinessRuleError creates a BusinessRuleError for the named rule.
func NewBusinessRuleError(rule, message string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message}
}

func (e *BusinessRuleError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrBusinessRuleViolated, e.Rule, e.Message))
}

func (e *BusinessRuleError) Unwrap() error {
	return ErrBusinessRuleViolated
}

// CapacityExceededError reports that a reservation request does not fit the
// item's capacity window, naming the item and the quantities involved.
type CapacityExceededError struct {
	ItemName  string
	Requested int
	Reserved  int
	Max       int
}

// NewCapacityExceededError creates a CapacityExceededError for the named item.
func NewCapacityExceededError(itemName string, requested, reserved, maxCapacity int) *CapacityExceededError {
	return &CapacityExceededError{
		ItemName:  itemName,
		Requested: requested,
		Reserved:  reserved,
		Max:       maxCapacity,
	}
}

func (e *CapacityExceededError) Error() string {
	return sanitize(fmt.Sprintf("%s: insufficient stock for %s (requested: %d, reserved: %d, max: %d)",
		ErrCapacityExceeded, e.ItemName, e.Requested, e.Reserved, e.Max))
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// StorageContentionError wraps a lock/busy error of the underlying store.
type StorageContentionError struct {
	Cause error
}

// NewStorageContentionError creates a StorageContentionError wrapping the
// underlying driver error.
func NewStorageContentionError(cause error) *StorageContentionError {
	return &StorageContentionError{Cause: cause}
}

func (e *StorageContentionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (cause: %s)", ErrStorageContention, e.Cause))
	}
	return ErrStorageContention.Error()
}

func (e *StorageContentionError) Unwrap() error {
	return ErrStorageContention
}

// IsStorageContention reports whether err is a transient lock/busy failure of
// the single-writer store, either already classified or still carrying the
// raw driver message.
func IsStorageContention(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStorageContention) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "database is locked") ||
		strings.Contains(message, "database table is locked") ||
		strings.Contains(message, "sqlite_busy")
}

// PaymentError reports a failed charge or refund. Op is "charge" or "refund".
type PaymentError struct {
	Op      string
	Message string
	Cause   error
}

// NewPaymentError creates a PaymentError for the given operation.
func NewPaymentError(op, message string) *PaymentError {
	return &PaymentError{Op: op, Message: message}
}

// NewPaymentErrorWithCause creates a PaymentError wrapping the gateway error.
func NewPaymentErrorWithCause(op, message string, cause error) *PaymentError {
	return &PaymentError{Op: op, Message: message, Cause: cause}
}

func (e *PaymentError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s: %s (cause: %s)", ErrPaymentFailed, e.Op, e.Message, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrPaymentFailed, e.Op, e.Message))
}

func (e *PaymentError) Unwrap() error {
	return ErrPaymentFailed
}
