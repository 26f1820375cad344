package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/mfcastro/contas/internal/domain"
)

// AccountRepository defines data access for accounts. GetByID and List
// return account rows with their stored derived totals; items and payments
// are attached by the use cases. Reads take the snapshot transaction so the
// row and its children come from one consistent view.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	List(ctx context.Context, tx Transaction) ([]*domain.Account, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	// RecomputeTotals rewrites account_total and paid_amount from the live
	// item and payment rows. Must run in the same transaction as the
	// mutation that made them stale.
	RecomputeTotals(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
}

// ItemRepository defines data access for items.
type ItemRepository interface {
	Create(ctx context.Context, tx Transaction, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, tx Transaction, item *domain.Item) error
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteByAccount(ctx context.Context, tx Transaction, accountID string) error
	ListByAccount(ctx context.Context, tx Transaction, accountID string) ([]*domain.Item, error)
	ListByAccountIDs(ctx context.Context, tx Transaction, accountIDs []string) ([]*domain.Item, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	UpdateAmount(ctx context.Context, tx Transaction, id string, amount domain.Money) error
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteByAccount(ctx context.Context, tx Transaction, accountID string) error
	ListByAccount(ctx context.Context, tx Transaction, accountID string) ([]*domain.Payment, error)
	ListByAccountIDs(ctx context.Context, tx Transaction, accountIDs []string) ([]*domain.Payment, error)
}

// ProductRepository defines data access for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle. BeginSnapshot starts a
// read-only repeatable-read transaction, so a multi-query aggregate read sees
// one consistent view of the account and its children.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
	BeginSnapshot(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines caching operations. Implementations translate their own
// not-found value into ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
