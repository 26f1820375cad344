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

// ItemRepository implements usecase.ItemRepository.
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = `id, account_id, product_id, name, quantity, price, notes, created_at`

// Create inserts an item row inside the given transaction.
func (r *ItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.Item) error {
	price, err := moneyToNumeric(item.Price)
	if err != nil {
		return err
	}

	_, err = pgxTx(tx).Exec(ctx, `
		INSERT INTO items (id, account_id, product_id, name, quantity, price, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID,
		item.AccountID,
		textOrNull(item.ProductID),
		item.Name,
		item.Quantity,
		price,
		item.Notes,
		timeToPgTimestamptz(item.CreatedAt),
	)

	return err
}

// GetByID retrieves an item by ID.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)

	return scanItem(row)
}

// Update rewrites an item's mutable fields inside the given transaction.
func (r *ItemRepository) Update(ctx context.Context, tx usecase.Transaction, item *domain.Item) error {
	price, err := moneyToNumeric(item.Price)
	if err != nil {
		return err
	}

	tag, err := pgxTx(tx).Exec(ctx, `
		UPDATE items SET name = $2, quantity = $3, price = $4, notes = $5
		WHERE id = $1`,
		item.ID,
		item.Name,
		item.Quantity,
		price,
		item.Notes,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

// Delete removes an item row inside the given transaction.
func (r *ItemRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := pgxTx(tx).Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

// DeleteByAccount removes all item rows of an account inside the given
// transaction. Deleting zero rows is fine.
func (r *ItemRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, accountID string) error {
	_, err := pgxTx(tx).Exec(ctx, `DELETE FROM items WHERE account_id = $1`, accountID)

	return err
}

// ListByAccount returns an account's items in creation order inside the
// caller's transaction.
func (r *ItemRepository) ListByAccount(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Item, error) {
	rows, err := pgxTx(tx).Query(ctx, `SELECT `+itemColumns+` FROM items WHERE account_id = $1 ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListByAccountIDs returns items of multiple accounts in one round trip
// inside the caller's transaction.
func (r *ItemRepository) ListByAccountIDs(ctx context.Context, tx usecase.Transaction, accountIDs []string) ([]*domain.Item, error) {
	rows, err := pgxTx(tx).Query(ctx, `SELECT `+itemColumns+` FROM items WHERE account_id = ANY($1) ORDER BY created_at, id`, accountIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]*domain.Item, error) {
	items := make([]*domain.Item, 0)

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		item      domain.Item
		productID pgtype.Text
		price     pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&item.ID, &item.AccountID, &productID, &item.Name, &item.Quantity, &price, &item.Notes, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}

		return nil, err
	}

	if item.Price, err = numericToMoney(price); err != nil {
		return nil, err
	}

	item.ProductID = textToPtr(productID)
	item.CreatedAt = createdAt.Time

	return &item, nil
}
