package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `id, account_id, amount, created_at`

// Create inserts a payment row inside the given transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	amount, err := moneyToNumeric(payment.Amount)
	if err != nil {
		return err
	}

	_, err = pgxTx(tx).Exec(ctx, `
		INSERT INTO payments (id, account_id, amount, created_at)
		VALUES ($1, $2, $3, $4)`,
		payment.ID,
		payment.AccountID,
		amount,
		timeToPgTimestamptz(payment.CreatedAt),
	)

	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)

	return scanPayment(row)
}

// UpdateAmount rewrites a payment's amount inside the given transaction.
func (r *PaymentRepository) UpdateAmount(ctx context.Context, tx usecase.Transaction, id string, amount domain.Money) error {
	value, err := moneyToNumeric(amount)
	if err != nil {
		return err
	}

	tag, err := pgxTx(tx).Exec(ctx, `UPDATE payments SET amount = $2 WHERE id = $1`, id, value)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// Delete removes a payment row inside the given transaction.
func (r *PaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := pgxTx(tx).Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// DeleteByAccount removes all payment rows of an account inside the given
// transaction. Deleting zero rows is fine.
func (r *PaymentRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, accountID string) error {
	_, err := pgxTx(tx).Exec(ctx, `DELETE FROM payments WHERE account_id = $1`, accountID)

	return err
}

// ListByAccount returns an account's payments in creation order inside the
// caller's transaction.
func (r *PaymentRepository) ListByAccount(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Payment, error) {
	rows, err := pgxTx(tx).Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE account_id = $1 ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

// ListByAccountIDs returns payments of multiple accounts in one round trip
// inside the caller's transaction.
func (r *PaymentRepository) ListByAccountIDs(ctx context.Context, tx usecase.Transaction, accountIDs []string) ([]*domain.Payment, error) {
	rows, err := pgxTx(tx).Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE account_id = ANY($1) ORDER BY created_at, id`, accountIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

func collectPayments(rows pgx.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment   domain.Payment
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&payment.ID, &payment.AccountID, &amount, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	if payment.Amount, err = numericToMoney(amount); err != nil {
		return nil, err
	}

	payment.CreatedAt = createdAt.Time

	return &payment, nil
}
