package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, owner, account_total, paid_amount, created_at, updated_at`

// Create inserts an account row.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	total, err := moneyToNumeric(account.AccountTotal)
	if err != nil {
		return err
	}

	paid, err := moneyToNumeric(account.PaidAmount)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO accounts (id, owner, account_total, paid_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID,
		account.Owner,
		total,
		paid,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByID retrieves an account row by ID inside the caller's transaction.
func (r *AccountRepository) GetByID(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	row := pgxTx(tx).QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	row := pgxTx(tx).QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)

	return scanAccount(row)
}

// List returns all account rows in creation order inside the caller's
// transaction.
func (r *AccountRepository) List(ctx context.Context, tx usecase.Transaction) ([]*domain.Account, error) {
	rows, err := pgxTx(tx).Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Delete removes an account row. Item and payment rows must already be gone.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := pgxTx(tx).Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// RecomputeTotals rewrites account_total and paid_amount from the live item
// and payment rows.
func (r *AccountRepository) RecomputeTotals(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	tag, err := pgxTx(tx).Exec(ctx, `
		UPDATE accounts SET
			account_total = COALESCE((SELECT SUM(price * quantity) FROM items WHERE account_id = $1), 0),
			paid_amount   = COALESCE((SELECT SUM(amount) FROM payments WHERE account_id = $1), 0),
			updated_at    = $2
		WHERE id = $1`,
		id,
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		total     pgtype.Numeric
		paid      pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&account.ID, &account.Owner, &total, &paid, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	if account.AccountTotal, err = numericToMoney(total); err != nil {
		return nil, err
	}
	if account.PaidAmount, err = numericToMoney(paid); err != nil {
		return nil, err
	}

	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
