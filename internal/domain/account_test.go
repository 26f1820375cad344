package domain

import (
	"testing"
	"time"
)

func money(t *testing.T, s string) Money {
	t.Helper()

	m, err := MoneyFromString(s)
	if err != nil {
		t.Fatalf("bad money literal %q: %v", s, err)
	}

	return m
}

func TestNewAccount(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name        string
		owner       string
		expectError bool
	}{
		{name: "valid owner", owner: "Maria"},
		{name: "empty owner", owner: "", expectError: true},
		{name: "whitespace owner", owner: "   ", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := NewAccount("acc-1", tt.owner, now)

			if tt.expectError {
				if err != ErrEmptyOwner {
					t.Errorf("expected ErrEmptyOwner, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !account.AccountTotal.IsZero() || !account.PaidAmount.IsZero() {
				t.Errorf("expected zero totals, got total=%s paid=%s", account.AccountTotal, account.PaidAmount)
			}

			if account.Status() != StatusSettled {
				t.Errorf("fresh account should be settled, got %s", account.Status())
			}
		})
	}
}

func TestAccount_Status(t *testing.T) {
	tests := []struct {
		name  string
		total string
		paid  string
		want  Status
	}{
		{name: "fully paid", total: "100.00", paid: "100.00", want: StatusSettled},
		{name: "one cent short", total: "100.00", paid: "99.99", want: StatusOpen},
		{name: "overpaid", total: "100.00", paid: "150.00", want: StatusSettled},
		{name: "nothing paid", total: "100.00", paid: "0.00", want: StatusOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &Account{
				AccountTotal: money(t, tt.total),
				PaidAmount:   money(t, tt.paid),
			}

			if got := account.Status(); got != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAccount_Balance(t *testing.T) {
	account := &Account{
		AccountTotal: money(t, "100.00"),
		PaidAmount:   money(t, "150.00"),
	}

	if got := account.Balance().String(); got != "-50.00" {
		t.Errorf("expected balance -50.00, got %s", got)
	}
}

func TestNewItem(t *testing.T) {
	now := time.Now().UTC()
	price := money(t, "2.50")

	tests := []struct {
		name        string
		itemName    string
		quantity    int
		expectError error
	}{
		{name: "valid item", itemName: "Soap", quantity: 3},
		{name: "empty name", itemName: "", quantity: 1, expectError: ErrEmptyItemName},
		{name: "zero quantity", itemName: "Soap", quantity: 0, expectError: ErrInvalidQuantity},
		{name: "negative quantity", itemName: "Soap", quantity: -2, expectError: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewItem("item-1", "acc-1", tt.itemName, tt.quantity, price, "", now)

			if tt.expectError != nil {
				if err != tt.expectError {
					t.Errorf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := price.MulInt(tt.quantity)
			if !item.Subtotal().Equal(want) {
				t.Errorf("expected subtotal %s, got %s", want, item.Subtotal())
			}
		})
	}
}

func TestNewPayment(t *testing.T) {
	now := time.Now().UTC()

	if _, err := NewPayment("pay-1", "acc-1", Zero, now); err != ErrNonPositivePayment {
		t.Errorf("expected ErrNonPositivePayment for zero amount, got %v", err)
	}

	payment, err := NewPayment("pay-1", "acc-1", money(t, "7.50"), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Amount.String() != "7.50" {
		t.Errorf("expected amount 7.50, got %s", payment.Amount)
	}
}

func TestNewProduct(t *testing.T) {
	now := time.Now().UTC()

	if _, err := NewProduct("prod-1", "", money(t, "1.00"), now); err != ErrEmptyProductName {
		t.Errorf("expected ErrEmptyProductName, got %v", err)
	}

	product, err := NewProduct("prod-1", "Soap", money(t, "2.50"), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if product.Name != "Soap" {
		t.Errorf("expected name Soap, got %s", product.Name)
	}
}
