package domain

import (
	"strings"
	"time"
)

// Product is a catalog entry items can be created from. Items keep their own
// snapshot of name and price, so editing or deleting a product never touches
// existing ledger state.
type Product struct {
	ID        string
	Name      string
	Price     Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct validates and builds a product.
func NewProduct(id, name string, price Money, now time.Time) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyProductName
	}

	if price.IsNegative() {
		return nil, ErrNegativeAmount
	}

	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
