package usecase

import (
	"context"
	"time"

	"github.com/mfcastro/contas/internal/domain"
)

// AccountUseCase handles account lifecycle and aggregate reads.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	itemRepo    ItemRepository
	paymentRepo PaymentRepository
	locks       *KeyedLocks
	cache       accountCache
	retrier     Retrier
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase. Cache and retrier may be
// nil; the use case then reads straight from the repositories and runs each
// transaction exactly once.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	itemRepo ItemRepository,
	paymentRepo PaymentRepository,
	locks *KeyedLocks,
	cache Cache,
	cacheTTL time.Duration,
	retrier Retrier,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		itemRepo:    itemRepo,
		paymentRepo: paymentRepo,
		locks:       locks,
		cache:       newAccountCache(cache, cacheTTL),
		retrier:     retrier,
		idGen:       idGen,
	}
}

// CreateAccount creates an account with zero totals for the given owner.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, owner string) (*domain.Account, error) {
	account, err := domain.NewAccount(uc.idGen.Generate(), owner, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account with items and payments populated. On a
// cache miss the load and the cache fill happen under the account's lock:
// mutations hold the same lock across commit and invalidation, so a fill can
// never store an aggregate that a concurrent mutation already invalidated.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if account, ok := uc.cache.get(ctx, id); ok {
		return account, nil
	}

	uc.locks.Lock(id)
	defer uc.locks.Unlock(id)

	// A mutation may have filled or refreshed the entry while we waited.
	if account, ok := uc.cache.get(ctx, id); ok {
		return account, nil
	}

	account, err := uc.loadAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cache.set(ctx, account)

	return account, nil
}

// ListAccounts returns all accounts in creation order, each with its items
// and payments populated. All rows come from one snapshot transaction, so a
// mutation committing mid-read cannot produce an account whose stored totals
// disagree with its embedded items. Either every account comes back
// consistent or the whole call fails.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	tx, err := uc.txManager.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.List(ctx, tx)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return accounts, nil
	}

	ids := make([]string, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}

	items, err := uc.itemRepo.ListByAccountIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByAccountIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	itemsByAccount := make(map[string][]*domain.Item)
	for _, item := range items {
		itemsByAccount[item.AccountID] = append(itemsByAccount[item.AccountID], item)
	}

	paymentsByAccount := make(map[string][]*domain.Payment)
	for _, payment := range payments {
		paymentsByAccount[payment.AccountID] = append(paymentsByAccount[payment.AccountID], payment)
	}

	for _, a := range accounts {
		a.Items = itemsByAccount[a.ID]
		a.Payments = paymentsByAccount[a.ID]
	}

	return accounts, nil
}

// DeleteAccount removes an account together with all its items and payments
// as one atomic cascade. The account's lock is held for the full duration.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	uc.locks.Lock(id)
	defer uc.locks.Unlock(id)

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}

		if err := uc.paymentRepo.DeleteByAccount(ctx, tx, id); err != nil {
			return err
		}

		if err := uc.itemRepo.DeleteByAccount(ctx, tx, id); err != nil {
			return err
		}

		if err := uc.accountRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.cache.invalidate(ctx, id)

	return nil
}

// loadAccount assembles the aggregate from one snapshot transaction.
func (uc *AccountUseCase) loadAccount(ctx context.Context, id string) (*domain.Account, error) {
	tx, err := uc.txManager.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.ListByAccount(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByAccount(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	account.Items = items
	account.Payments = payments

	return account, nil
}

func (uc *AccountUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}
