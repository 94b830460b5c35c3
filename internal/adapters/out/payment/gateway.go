// Package payment provides the in-process payment gateway. The restaurant
// settles cards through a batch terminal at closing, so charges and refunds
// here only validate the request and mint a transaction reference for the
// ledger.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"dinner/internal/pkg/errs"

	"github.com/google/uuid"
)

// Gateway implements ports.PaymentGateway.
type Gateway struct {
	logger *slog.Logger
}

// NewGateway creates the gateway.
func NewGateway(logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Gateway{
		logger: logger.With("component", "payment_gateway"),
	}, nil
}

// Charge collects amount from the customer. Non-positive amounts settle as
// no-ops so zero-difference quotes complete without a terminal round trip.
func (g *Gateway) Charge(ctx context.Context, userID int64, amount int, method string) (string, error) {
	return g.settle(ctx, "charge", userID, amount, method)
}

// Refund returns amount to the customer.
func (g *Gateway) Refund(ctx context.Context, userID int64, amount int, method string) (string, error) {
	return g.settle(ctx, "refund", userID, amount, method)
}

func (g *Gateway) settle(ctx context.Context, op string, userID int64, amount int, method string) (string, error) {
	if amount <= 0 {
		return "", nil
	}

	if method == "" {
		return "", errs.NewPaymentError(op,
			fmt.Sprintf("no payment method on file for user %d", userID))
	}

	ref := uuid.NewString()
	g.logger.InfoContext(ctx, "payment settled",
		"operation", op,
		"user_id", userID,
		"amount", amount,
		"method", method,
		"transaction_ref", ref,
	)

	return ref, nil
}
