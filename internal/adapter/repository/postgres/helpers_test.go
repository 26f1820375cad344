package postgres

import (
	"testing"

	"github.com/mfcastro/contas/internal/domain"
)

func TestMoneyNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0.00", "7.50", "199.99"} {
		m, err := domain.MoneyFromString(s)
		if err != nil {
			t.Fatalf("bad money literal %q: %v", s, err)
		}

		n, err := moneyToNumeric(m)
		if err != nil {
			t.Fatalf("moneyToNumeric(%s): %v", s, err)
		}

		back, err := numericToMoney(n)
		if err != nil {
			t.Fatalf("numericToMoney(%s): %v", s, err)
		}

		if !back.Equal(m) {
			t.Errorf("round trip changed %s to %s", m, back)
		}
	}
}
