package dto

import (
	"time"

	"github.com/mfcastro/contas/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID           string             `json:"id"`
	Owner        string             `json:"owner"`
	AccountTotal domain.Money       `json:"account_total"`
	PaidAmount   domain.Money       `json:"paid_amount"`
	Balance      domain.Money       `json:"balance"`
	Status       string             `json:"status"`
	Items        []*ItemResponse    `json:"items"`
	Payments     []*PaymentResponse `json:"payments"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	items := make([]*ItemResponse, len(a.Items))
	for i, item := range a.Items {
		items[i] = ItemFromDomain(item)
	}

	payments := make([]*PaymentResponse, len(a.Payments))
	for i, payment := range a.Payments {
		payments[i] = PaymentFromDomain(payment)
	}

	return &AccountResponse{
		ID:           a.ID,
		Owner:        a.Owner,
		AccountTotal: a.AccountTotal,
		PaidAmount:   a.PaidAmount,
		Balance:      a.Balance(),
		Status:       string(a.Status()),
		Items:        items,
		Payments:     payments,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps the account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ItemResponse represents an item in API responses.
type ItemResponse struct {
	ID        string       `json:"id"`
	AccountID string       `json:"account_id"`
	ProductID *string      `json:"product_id,omitempty"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	Price     domain.Money `json:"price"`
	Subtotal  domain.Money `json:"subtotal"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// ItemFromDomain converts a domain item to a response.
func ItemFromDomain(item *domain.Item) *ItemResponse {
	return &ItemResponse{
		ID:        item.ID,
		AccountID: item.AccountID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Subtotal:  item.Subtotal(),
		Notes:     item.Notes,
		CreatedAt: item.CreatedAt,
	}
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID        string       `json:"id"`
	AccountID string       `json:"account_id"`
	Amount    domain.Money `json:"amount"`
	CreatedAt time.Time    `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(payment *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        payment.ID,
		AccountID: payment.AccountID,
		Amount:    payment.Amount,
		CreatedAt: payment.CreatedAt,
	}
}

// ProductResponse represents a catalog product in API responses.
type ProductResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ProductFromDomain converts a domain product to a response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, len(products))
	for i, p := range products {
		result[i] = ProductFromDomain(p)
	}
	return result
}

// CommandResponse wraps a successful command result.
type CommandResponse struct {
	Result any `json:"result"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
