package accounting

import (
	"fmt"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CentsScale is the number of decimal places ledger, budget and reimbursement amounts are stored with.
const CentsScale = 2

var (
	hundred    = decimal.NewFromInt(100)
	maxTaxRate = hundred
	// NUMERIC(14, 2) holds at most 12 integer digits.
	maxCentsAmount = decimal.New(1, 12)
)

// LineAmounts holds the computed amounts of one invoice line. Invoice totals are
// their pointwise sums, see domain.Invoice.SetItems.
type LineAmounts struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeLineItem returns subtotal = quantity*unitPrice, tax = subtotal*rate/100
// and total = subtotal+tax. No rounding is applied.
func ComputeLineItem(quantity, unitPrice, taxRatePercent decimal.Decimal) (LineAmounts, error) {
	if quantity.IsNegative() {
		return LineAmounts{}, fmt.Errorf("%w: quantity must not be negative (got %s)", apperrors.ErrValidation, quantity)
	}
	if unitPrice.IsNegative() {
		return LineAmounts{}, fmt.Errorf("%w: unit price must not be negative (got %s)", apperrors.ErrValidation, unitPrice)
	}
	if taxRatePercent.IsNegative() || taxRatePercent.GreaterThan(maxTaxRate) {
		return LineAmounts{}, fmt.Errorf("%w: tax rate must be between 0 and 100 (got %s)", apperrors.ErrValidation, taxRatePercent)
	}

	subtotal := quantity.Mul(unitPrice)
	tax := subtotal.Mul(taxRatePercent).Div(hundred)
	return LineAmounts{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}, nil
}

// ValidateCents rejects amounts a cents column could not store as given.
// Extra decimal places are an error, never rounded away.
func ValidateCents(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(CentsScale)) {
		return fmt.Errorf("%w: %s must have at most %d decimal places (got %s)", apperrors.ErrValidation, field, CentsScale, amount)
	}
	if amount.Abs().GreaterThanOrEqual(maxCentsAmount) {
		return fmt.Errorf("%w: %s is too large (got %s)", apperrors.ErrValidation, field, amount)
	}
	return nil
}

// ValidatePositiveCents requires a present amount greater than zero that ValidateCents accepts.
func ValidatePositiveCents(field string, amount *decimal.Decimal) error {
	if amount == nil || !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	return ValidateCents(field, *amount)
}

// RoundForDisplay rounds an amount to cents. Stored values keep full precision.
func RoundForDisplay(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
