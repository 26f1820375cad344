package usecase

import (
	"context"
	"time"

	"github.com/mfcastro/contas/internal/domain"
)

// PaymentUseCase handles payment mutations. Every mutation recomputes the
// owning account's paid_amount inside the same transaction.
type PaymentUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	paymentRepo PaymentRepository
	locks       *KeyedLocks
	cache       accountCache
	retrier     Retrier
	idGen       IDGenerator
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	paymentRepo PaymentRepository,
	locks *KeyedLocks,
	cache Cache,
	cacheTTL time.Duration,
	retrier Retrier,
	idGen IDGenerator,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		locks:       locks,
		cache:       newAccountCache(cache, cacheTTL),
		retrier:     retrier,
		idGen:       idGen,
	}
}

// AddPayment records a payment against the account. Zero or negative
// amounts are rejected before anything is persisted.
func (uc *PaymentUseCase) AddPayment(ctx context.Context, accountID string, amount domain.Money) (*domain.Payment, error) {
	payment, err := domain.NewPayment(uc.idGen.Generate(), accountID, amount, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uc.locks.Lock(accountID)
	defer uc.locks.Unlock(accountID)

	err = uc.mutate(ctx, accountID, func(tx Transaction) error {
		return uc.paymentRepo.Create(ctx, tx, payment)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// UpdatePaymentAmount changes a payment's amount and recomputes paid_amount.
func (uc *PaymentUseCase) UpdatePaymentAmount(ctx context.Context, paymentID string, amount domain.Money) (*domain.Payment, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrNonPositivePayment
	}

	ref, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	uc.locks.Lock(ref.AccountID)
	defer uc.locks.Unlock(ref.AccountID)

	// Re-read under the lock so the returned payment reflects the current
	// row, not the pre-lock lookup.
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	err = uc.mutate(ctx, payment.AccountID, func(tx Transaction) error {
		return uc.paymentRepo.UpdateAmount(ctx, tx, paymentID, amount)
	})
	if err != nil {
		return nil, err
	}

	payment.Amount = amount

	return payment, nil
}

// DeletePayment removes a payment and recomputes the owning account's
// paid_amount.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, paymentID string) error {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	uc.locks.Lock(payment.AccountID)
	defer uc.locks.Unlock(payment.AccountID)

	return uc.mutate(ctx, payment.AccountID, func(tx Transaction) error {
		return uc.paymentRepo.Delete(ctx, tx, paymentID)
	})
}

func (uc *PaymentUseCase) mutate(ctx context.Context, accountID string, op func(tx Transaction) error) error {
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

func (uc *PaymentUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}
