package domain

import "time"

// Payment is an amount reducing an account's outstanding debt.
type Payment struct {
	ID        string
	AccountID string
	Amount    Money
	CreatedAt time.Time
}

// NewPayment validates and builds a payment under the given account.
// Zero or negative payments are rejected.
func NewPayment(id, accountID string, amount Money, now time.Time) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositivePayment
	}

	return &Payment{
		ID:        id,
		AccountID: accountID,
		Amount:    amount,
		CreatedAt: now,
	}, nil
}
