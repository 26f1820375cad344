package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
)

func pgxTx(tx usecase.Transaction) pgx.Tx {
	return tx.(*Tx).PgxTx()
}

func moneyToNumeric(m domain.Money) (pgtype.Numeric, error) {
	var n pgtype.Numeric

	if err := n.Scan(m.String()); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("money %q to numeric: %w", m, err)
	}

	return n, nil
}

func numericToMoney(n pgtype.Numeric) (domain.Money, error) {
	if !n.Valid {
		return domain.Zero, nil
	}

	d, err := decimal.NewFromString(n.Int.String())
	if err != nil {
		return domain.Zero, err
	}
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return domain.NewMoney(d)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func textToPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	s := t.String

	return &s
}
