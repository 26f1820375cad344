package command

import (
	"time"

	"github.com/mfcastro/contas/internal/domain"
)

// AccountPayload is the wire form of an account on the command surface.
// Monetary fields serialize as bare two-fraction-digit numbers, timestamps
// as RFC 3339 strings.
type AccountPayload struct {
	ID           string            `json:"id"`
	Owner        string            `json:"owner"`
	AccountTotal domain.Money      `json:"account_total"`
	PaidAmount   domain.Money      `json:"paid_amount"`
	Balance      domain.Money      `json:"balance"`
	Status       string            `json:"status"`
	Items        []*ItemPayload    `json:"items"`
	Payments     []*PaymentPayload `json:"payments"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

// ItemPayload is the wire form of an item.
type ItemPayload struct {
	ID        string       `json:"id"`
	AccountID string       `json:"account_id"`
	ProductID *string      `json:"product_id,omitempty"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	Price     domain.Money `json:"price"`
	Subtotal  domain.Money `json:"subtotal"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt string       `json:"created_at"`
}

// PaymentPayload is the wire form of a payment.
type PaymentPayload struct {
	ID        string       `json:"id"`
	AccountID string       `json:"account_id"`
	Amount    domain.Money `json:"amount"`
	CreatedAt string       `json:"created_at"`
}

// ProductPayload is the wire form of a catalog product.
type ProductPayload struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

func accountToPayload(a *domain.Account) *AccountPayload {
	items := make([]*ItemPayload, len(a.Items))
	for i, item := range a.Items {
		items[i] = itemToPayload(item)
	}

	payments := make([]*PaymentPayload, len(a.Payments))
	for i, payment := range a.Payments {
		payments[i] = paymentToPayload(payment)
	}

	return &AccountPayload{
		ID:           a.ID,
		Owner:        a.Owner,
		AccountTotal: a.AccountTotal,
		PaidAmount:   a.PaidAmount,
		Balance:      a.Balance(),
		Status:       string(a.Status()),
		Items:        items,
		Payments:     payments,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

func accountsToPayload(accounts []*domain.Account) []*AccountPayload {
	result := make([]*AccountPayload, len(accounts))
	for i, a := range accounts {
		result[i] = accountToPayload(a)
	}
	return result
}

func itemToPayload(item *domain.Item) *ItemPayload {
	return &ItemPayload{
		ID:        item.ID,
		AccountID: item.AccountID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Subtotal:  item.Subtotal(),
		Notes:     item.Notes,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
}

func paymentToPayload(payment *domain.Payment) *PaymentPayload {
	return &PaymentPayload{
		ID:        payment.ID,
		AccountID: payment.AccountID,
		Amount:    payment.Amount,
		CreatedAt: payment.CreatedAt.Format(time.RFC3339),
	}
}

func productToPayload(product *domain.Product) *ProductPayload {
	return &ProductPayload{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		CreatedAt: product.CreatedAt.Format(time.RFC3339),
		UpdatedAt: product.UpdatedAt.Format(time.RFC3339),
	}
}

func productsToPayload(products []*domain.Product) []*ProductPayload {
	result := make([]*ProductPayload, len(products))
	for i, p := range products {
		result[i] = productToPayload(p)
	}
	return result
}
