package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/mfcastro/contas/internal/domain"
)

// ItemUseCase handles item mutations. Every mutation recomputes the owning
// account's account_total inside the same transaction, so derived totals are
// consistent before the operation returns.
type ItemUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	itemRepo    ItemRepository
	locks       *KeyedLocks
	cache       accountCache
	retrier     Retrier
	idGen       IDGenerator
}

// NewItemUseCase creates a new ItemUseCase.
func NewItemUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	itemRepo ItemRepository,
	locks *KeyedLocks,
	cache Cache,
	cacheTTL time.Duration,
	retrier Retrier,
	idGen IDGenerator,
) *ItemUseCase {
	return &ItemUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		itemRepo:    itemRepo,
		locks:       locks,
		cache:       newAccountCache(cache, cacheTTL),
		retrier:     retrier,
		idGen:       idGen,
	}
}

// AddItemInput represents input for adding an item to an account.
type AddItemInput struct {
	AccountID string
	Name      string
	Quantity  int
	Price     domain.Money
	Notes     string
	ProductID *string
}

// AddItem appends a priced line entry to the account.
func (uc *ItemUseCase) AddItem(ctx context.Context, input AddItemInput) (*domain.Item, error) {
	item, err := domain.NewItem(
		uc.idGen.Generate(),
		input.AccountID,
		input.Name,
		input.Quantity,
		input.Price,
		input.Notes,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	item.ProductID = input.ProductID

	uc.locks.Lock(input.AccountID)
	defer uc.locks.Unlock(input.AccountID)

	err = uc.mutate(ctx, input.AccountID, func(tx Transaction) error {
		return uc.itemRepo.Create(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItemInput represents a partial item update. Nil fields are left
// untouched.
type UpdateItemInput struct {
	ItemID   string
	Name     *string
	Quantity *int
	Price    *domain.Money
	Notes    *string
}

// UpdateItem edits an item's name, quantity, price, or notes.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, input UpdateItemInput) (*domain.Item, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domain.ErrEmptyItemName
	}

	if input.Quantity != nil && *input.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	if input.Price != nil && input.Price.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	// The lookup before the lock only resolves the owning account. The row
	// is read again under the lock, so a concurrent update committed in
	// between cannot be reverted by this write.
	ref, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	uc.locks.Lock(ref.AccountID)
	defer uc.locks.Unlock(ref.AccountID)

	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}

	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}

	if input.Price != nil {
		item.Price = *input.Price
	}

	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	err = uc.mutate(ctx, item.AccountID, func(tx Transaction) error {
		return uc.itemRepo.Update(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item and recomputes the owning account's total.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, itemID string) error {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	uc.locks.Lock(item.AccountID)
	defer uc.locks.Unlock(item.AccountID)

	return uc.mutate(ctx, item.AccountID, func(tx Transaction) error {
		return uc.itemRepo.Delete(ctx, tx, itemID)
	})
}

// mutate runs op and the total recomputation in one transaction, retrying
// on transient storage errors, then invalidates the account's cache entry.
// Callers must hold the account's lock.
func (uc *ItemUseCase) mutate(ctx context.Context, accountID string, op func(tx Transaction) error) error {
	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID); err != nil {
			return err
		}

		if err := op(tx); err != nil {
			return err
		}

		if err := uc.accountRepo.RecomputeTotals(ctx, tx, accountID, time.Now().UTC()); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.cache.invalidate(ctx, accountID)

	return nil
}

func (uc *ItemUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}
