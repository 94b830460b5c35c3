package changereq

import (
	"fmt"

	"dinner/internal/pkg/errs"
)

// Quote is the priced outcome of a requested change: the recalculated order
// total, the change fee, and the money that has to move to settle the
// difference against what the customer already paid.
type Quote struct {
	alreadyPaid       int
	recalculatedTotal int
	changeFee         int
}

// NewQuote builds a quote from the amount already paid, the recalculated
// total of the changed order and the applicable change fee.
func NewQuote(alreadyPaid, recalculatedTotal, changeFee int) (Quote, error) {
	if alreadyPaid < 0 {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("already paid",
			fmt.Errorf("%d is negative", alreadyPaid))
	}
	if recalculatedTotal < 0 {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("recalculated total",
			fmt.Errorf("%d is negative", recalculatedTotal))
	}
	if changeFee < 0 {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("change fee",
			fmt.Errorf("%d is negative", changeFee))
	}

	return Quote{
		alreadyPaid:       alreadyPaid,
		recalculatedTotal: recalculatedTotal,
		changeFee:         changeFee,
	}, nil
}

// AlreadyPaid returns what the customer paid for the original order.
func (q Quote) AlreadyPaid() int { return q.alreadyPaid }

// ChangeFee returns the flat fee applied to the change.
func (q Quote) ChangeFee() int { return q.changeFee }

// NewTotal returns the price of the changed order including the fee.
func (q Quote) NewTotal() int {
	return q.recalculatedTotal + q.changeFee
}

// ExtraCharge returns the signed difference the customer owes: positive
// means an additional payment, negative a refund.
func (q Quote) ExtraCharge() int {
	return q.NewTotal() - q.alreadyPaid
}

// RequiresAdditionalPayment reports whether the customer owes money.
func (q Quote) RequiresAdditionalPayment() bool {
	return q.ExtraCharge() > 0
}

// RequiresRefund reports whether the restaurant owes money back.
func (q Quote) RequiresRefund() bool {
	return q.ExtraCharge() < 0
}

// ExpectedRefund returns the refund amount, zero when nothing is owed back.
func (q Quote) ExpectedRefund() int {
	if extra := q.ExtraCharge(); extra < 0 {
		return -extra
	}
	return 0
}
