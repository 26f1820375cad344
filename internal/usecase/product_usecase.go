package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/mfcastro/contas/internal/domain"
)

// ProductUseCase handles the product catalog. Products never touch ledger
// state: items snapshot name and price at creation time. Partial updates are
// serialized per product so two edits cannot revert each other's fields.
type ProductUseCase struct {
	productRepo ProductRepository
	locks       *KeyedLocks
	idGen       IDGenerator
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository, idGen IDGenerator) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		locks:       NewKeyedLocks(),
		idGen:       idGen,
	}
}

// CreateProduct adds a catalog entry.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, name string, price domain.Money) (*domain.Product, error) {
	product, err := domain.NewProduct(uc.idGen.Generate(), name, price, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// ListProducts lists the catalog in creation order.
func (uc *ProductUseCase) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return uc.productRepo.List(ctx)
}

// UpdateProductInput represents a partial product update.
type UpdateProductInput struct {
	ProductID string
	Name      *string
	Price     *domain.Money
}

// UpdateProduct edits a product's name or price. The read and the write
// happen under the product's lock.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domain.ErrEmptyProductName
	}

	if input.Price != nil && input.Price.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	uc.locks.Lock(input.ProductID)
	defer uc.locks.Unlock(input.ProductID)

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}

	if input.Price != nil {
		product.Price = *input.Price
	}

	product.UpdatedAt = time.Now().UTC()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a catalog entry. Existing items keep their snapshot.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.productRepo.Delete(ctx, id)
}
