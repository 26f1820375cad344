package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		expectError bool
	}{
		{name: "two fraction digits kept", input: "2.50", want: "2.50"},
		{name: "integer padded", input: "7", want: "7.00"},
		{name: "rounds half up", input: "2.005", want: "2.01"},
		{name: "rounds down below half", input: "2.004", want: "2.00"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "negative rejected", input: "-0.01", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)

			m, err := NewMoney(d)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrNegativeAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	price, err := MoneyFromString("2.50")
	require.NoError(t, err)

	subtotal := price.MulInt(3)
	assert.Equal(t, "7.50", subtotal.String())

	paid, err := MoneyFromString("7.50")
	require.NoError(t, err)

	assert.True(t, subtotal.Sub(paid).IsZero())

	// Sub below zero is allowed for derived balances.
	balance := Zero.Sub(paid)
	assert.True(t, balance.IsNegative())
	assert.Equal(t, "-7.50", balance.String())
}

func TestMoney_AdditionIsExact(t *testing.T) {
	// 0.1 + 0.2 drifts under float64; Money must stay exact.
	a, _ := MoneyFromString("0.10")
	b, _ := MoneyFromString("0.20")

	assert.Equal(t, "0.30", a.Add(b).String())
}

func TestMoney_JSON(t *testing.T) {
	m, err := MoneyFromString("7.5")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "7.50", string(data))

	var back Money
	require.NoError(t, json.Unmarshal([]byte("7.50"), &back))
	assert.True(t, back.Equal(m))
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := MoneyFromFloat(2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.String() != "2.50" {
		t.Errorf("expected 2.50, got %s", m.String())
	}

	if _, err := MoneyFromFloat(-1); err == nil {
		t.Error("expected error for negative input, got nil")
	}
}
