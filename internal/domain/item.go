package domain

import (
	"strings"
	"time"
)

// Item is a priced line entry increasing an account's debt. The account
// reference is a plain id, never a live object, so ownership stays one-way.
type Item struct {
	ID        string
	AccountID string
	ProductID *string
	Name      string
	Quantity  int
	Price     Money
	Notes     string
	CreatedAt time.Time
}

// NewItem validates and builds an item under the given account.
func NewItem(id, accountID, name string, quantity int, price Money, notes string, now time.Time) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyItemName
	}

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if price.IsNegative() {
		return nil, ErrNegativeAmount
	}

	return &Item{
		ID:        id,
		AccountID: accountID,
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		Notes:     notes,
		CreatedAt: now,
	}, nil
}

// Subtotal returns quantity * price.
func (i *Item) Subtotal() Money {
	return i.Price.MulInt(i.Quantity)
}
