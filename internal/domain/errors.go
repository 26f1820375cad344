package domain

import "errors"

var (
	// Not-found errors
	ErrAccountNotFound = errors.New("account not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrProductNotFound = errors.New("product not found")

	// Validation errors
	ErrEmptyOwner         = errors.New("account owner cannot be empty")
	ErrEmptyItemName      = errors.New("item name cannot be empty")
	ErrEmptyProductName   = errors.New("product name cannot be empty")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrInvalidAmount      = errors.New("invalid monetary amount")
	ErrNonPositivePayment = errors.New("payment amount must be positive")
)

// IsNotFound reports whether err means a referenced entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsValidation reports whether err means malformed or out-of-range input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyOwner) ||
		errors.Is(err, ErrEmptyItemName) ||
		errors.Is(err, ErrEmptyProductName) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNonPositivePayment)
}
