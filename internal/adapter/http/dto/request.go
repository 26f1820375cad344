package dto

import (
	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	Owner string `json:"owner"`
}

// AddItemRequest represents a request to add an item to an account.
type AddItemRequest struct {
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	Price     domain.Money `json:"price"`
	Notes     string       `json:"notes,omitempty"`
	ProductID *string      `json:"product_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddItemRequest) ToUseCaseInput(accountID string) usecase.AddItemInput {
	return usecase.AddItemInput{
		AccountID: accountID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		Price:     r.Price,
		Notes:     r.Notes,
		ProductID: r.ProductID,
	}
}

// UpdateItemRequest represents a partial item update. Absent fields are left
// untouched.
type UpdateItemRequest struct {
	Name     *string       `json:"name,omitempty"`
	Quantity *int          `json:"quantity,omitempty"`
	Price    *domain.Money `json:"price,omitempty"`
	Notes    *string       `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateItemRequest) ToUseCaseInput(itemID string) usecase.UpdateItemInput {
	return usecase.UpdateItemInput{
		ItemID:   itemID,
		Name:     r.Name,
		Quantity: r.Quantity,
		Price:    r.Price,
		Notes:    r.Notes,
	}
}

// AddPaymentRequest represents a request to record a payment.
type AddPaymentRequest struct {
	Amount domain.Money `json:"amount"`
}

// UpdatePaymentRequest represents a payment amount correction.
type UpdatePaymentRequest struct {
	Amount domain.Money `json:"amount"`
}

// CreateProductRequest represents a request to add a catalog product.
type CreateProductRequest struct {
	Name  string       `json:"name"`
	Price domain.Money `json:"price"`
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name  *string       `json:"name,omitempty"`
	Price *domain.Money `json:"price,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateProductRequest) ToUseCaseInput(productID string) usecase.UpdateProductInput {
	return usecase.UpdateProductInput{
		ProductID: productID,
		Name:      r.Name,
		Price:     r.Price,
	}
}

// CommandRequest represents a command surface invocation.
type CommandRequest struct {
	Command string         `json:"command"`
	Args    map[string]any `json:"args"`
}
