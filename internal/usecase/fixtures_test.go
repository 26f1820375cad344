package usecase_test

import (
	"testing"

	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
	"github.com/mfcastro/contas/internal/usecase/mocks"
)

// fixture wires the ledger use cases against a shared in-memory store, the
// same way cmd/server wires them against postgres.
type fixture struct {
	store       *mocks.Store
	cache       *mocks.MockCache
	locks       *usecase.KeyedLocks
	accountRepo *mocks.MockAccountRepository
	itemRepo    *mocks.MockItemRepository
	paymentRepo *mocks.MockPaymentRepository
	accounts    *usecase.AccountUseCase
	items       *usecase.ItemUseCase
	payments    *usecase.PaymentUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := mocks.NewStore()
	accountRepo := mocks.NewMockAccountRepository(store)
	itemRepo := mocks.NewMockItemRepository(store)
	paymentRepo := mocks.NewMockPaymentRepository(store)
	txManager := mocks.NewMockTxManager(store)
	cache := mocks.NewMockCache()
	locks := usecase.NewKeyedLocks()
	idGen := mocks.NewMockIDGenerator()

	return &fixture{
		store:       store,
		cache:       cache,
		locks:       locks,
		accountRepo: accountRepo,
		itemRepo:    itemRepo,
		paymentRepo: paymentRepo,
		accounts: usecase.NewAccountUseCase(
			txManager, accountRepo, itemRepo, paymentRepo, locks, cache, 0, nil, idGen,
		),
		items: usecase.NewItemUseCase(
			txManager, accountRepo, itemRepo, locks, cache, 0, nil, idGen,
		),
		payments: usecase.NewPaymentUseCase(
			txManager, accountRepo, paymentRepo, locks, cache, 0, nil, idGen,
		),
	}
}

func money(t *testing.T, s string) domain.Money {
	t.Helper()

	m, err := domain.MoneyFromString(s)
	if err != nil {
		t.Fatalf("bad money literal %q: %v", s, err)
	}

	return m
}
