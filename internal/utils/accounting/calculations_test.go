package accounting_test

import (
	"testing"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLineItem(t *testing.T) {
	tests := []struct {
		name                  string
		qty, price, rate      string
		subtotal, tax, total  string
	}{
		{"standard rate", "2", "10.00", "20", "20", "4", "24"},
		{"fractional quantity reduced rate", "0.5", "10.00", "5.5", "5", "0.275", "5.275"},
		{"zero rate", "3", "7.5", "0", "22.5", "0", "22.5"},
		{"zero quantity", "0", "99", "20", "0", "0", "0"},
		{"full precision kept", "3", "0.333", "20", "0.999", "0.1998", "1.1988"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.ComputeLineItem(d(tt.qty), d(tt.price), d(tt.rate))
			require.NoError(t, err)
			assert.True(t, d(tt.subtotal).Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, d(tt.tax).Equal(got.TaxAmount), "tax %s", got.TaxAmount)
			assert.True(t, d(tt.total).Equal(got.Total), "total %s", got.Total)
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.TaxAmount)))
		})
	}
}

func TestComputeLineItem_Invalid(t *testing.T) {
	_, err := accounting.ComputeLineItem(d("-1"), d("10"), d("20"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.ComputeLineItem(d("1"), d("-10"), d("20"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.ComputeLineItem(d("1"), d("10"), d("100.01"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.ComputeLineItem(d("1"), d("10"), d("-0.1"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateCents(t *testing.T) {
	for _, ok := range []string{"0", "10", "10.5", "10.50", "10.500", "999999999999.99"} {
		assert.NoError(t, accounting.ValidateCents("amount", d(ok)), ok)
	}
	for _, bad := range []string{"0.001", "10.005", "1000000000000"} {
		assert.ErrorIs(t, accounting.ValidateCents("amount", d(bad)), apperrors.ErrValidation, bad)
	}
}

func TestValidatePositiveCents(t *testing.T) {
	amt := d("12.34")
	assert.NoError(t, accounting.ValidatePositiveCents("amount", &amt))

	assert.ErrorIs(t, accounting.ValidatePositiveCents("amount", nil), apperrors.ErrValidation)
	for _, bad := range []string{"0", "-1", "0.001"} {
		v := d(bad)
		assert.ErrorIs(t, accounting.ValidatePositiveCents("amount", &v), apperrors.ErrValidation, bad)
	}
}

func TestRoundForDisplay(t *testing.T) {
	assert.Equal(t, "29.28", accounting.RoundForDisplay(d("29.275")))
	assert.Equal(t, "4.00", accounting.RoundForDisplay(d("4")))
}
