package ports

import "context"

// PaymentGateway defines the contract for moving money. Implementations
// must treat non-positive amounts as settled no-ops so zero-difference
// quotes complete without a gateway round trip.
type PaymentGateway interface {
	// Charge collects amount from the customer through the given payment
	// method. Returns a transaction reference on success.
	Charge(ctx context.Context, userID int64, amount int, method string) (string, error)

	// Refund returns amount to the customer through the given payment
	// method. Returns a transaction reference on success.
	Refund(ctx context.Context, userID int64, amount int, method string) (string, error)
}
