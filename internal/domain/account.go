package domain

import (
	"strings"
	"time"
)

// Status describes whether an account still has outstanding debt.
type Status string

const (
	StatusOpen    Status = "open"
	StatusSettled Status = "settled"
)

// Account is a customer ledger aggregating items (debits) and payments
// (credits). AccountTotal and PaidAmount are derived columns: they always
// equal the sum of the live item subtotals and payment amounts, and are
// recomputed inside the same transaction as any item or payment mutation.
type Account struct {
	ID           string
	Owner        string
	AccountTotal Money
	PaidAmount   Money
	Items        []*Item
	Payments     []*Payment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount validates and builds a fresh account with zero totals.
func NewAccount(id, owner string, now time.Time) (*Account, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrEmptyOwner
	}

	return &Account{
		ID:           id,
		Owner:        owner,
		AccountTotal: Zero,
		PaidAmount:   Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Balance returns the outstanding debt: account_total - paid_amount.
// Negative means the account was overpaid.
func (a *Account) Balance() Money {
	return a.AccountTotal.Sub(a.PaidAmount)
}

// Status derives the settlement state. Overpayment still counts as settled.
func (a *Account) Status() Status {
	if a.Balance().IsPositive() {
		return StatusOpen
	}

	return StatusSettled
}
