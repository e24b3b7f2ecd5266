package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/models"
	"github.com/SscSPs/nexkeep/internal/utils/accounting"
	"github.com/SscSPs/nexkeep/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelUser_PasswordAndProvider(t *testing.T) {
	m := mapping.ToModelUser(domain.User{UserID: "u1", Email: "a@b.io"})
	assert.Nil(t, m.PasswordHash)
	assert.Equal(t, string(domain.ProviderLocal), m.AuthProvider)

	m = mapping.ToModelUser(domain.User{UserID: "u1", PasswordHash: "hash", AuthProvider: domain.ProviderGoogle})
	if assert.NotNil(t, m.PasswordHash) {
		assert.Equal(t, "hash", *m.PasswordHash)
	}
	assert.Equal(t, "google", m.AuthProvider)
}

func TestToDomainTransaction_KeepsType(t *testing.T) {
	d := mapping.ToDomainTransaction(models.Transaction{
		TransactionID:   "t1",
		Amount:          decimal.NewFromInt(42),
		TransactionType: "expense",
	})
	assert.Equal(t, domain.Expense, d.Type)
	assert.True(t, decimal.NewFromInt(-42).Equal(d.SignedAmount()))
}

func TestToDomainAuditFields_UTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, paris)

	d := mapping.ToDomainAuditFields(models.AuditFields{CreatedAt: created, CreatedBy: "u1", LastUpdatedAt: created, LastUpdatedBy: "u2"})

	assert.Equal(t, time.UTC, d.CreatedAt.Location())
	assert.True(t, created.Equal(d.CreatedAt))
	assert.Equal(t, "u2", d.LastUpdatedBy)
	assert.Equal(t, d, mapping.ToDomainAuditFields(mapping.ToModelAuditFields(d)))
}

// stored mimics an unconstrained NUMERIC column: the exact decimal text comes back.
func stored(v decimal.Decimal) decimal.Decimal {
	return decimal.RequireFromString(v.String())
}

func TestInvoiceRoundTrip_KeepsItemSumEqualToTotals(t *testing.T) {
	var items []domain.InvoiceItem
	for _, rate := range []string{"5.5", "5.555"} {
		a, err := accounting.ComputeLineItem(decimal.NewFromInt(1), decimal.RequireFromString("19.99"), decimal.RequireFromString(rate))
		require.NoError(t, err)
		items = append(items, domain.InvoiceItem{
			ItemID: "item-" + rate, Description: "Conseil", Quantity: decimal.NewFromInt(1),
			UnitPrice: decimal.RequireFromString("19.99"), TaxRate: decimal.RequireFromString(rate),
			Subtotal: a.Subtotal, TaxAmount: a.TaxAmount, Total: a.Total,
		})
	}
	inv := domain.Invoice{InvoiceID: "inv-1", Number: "FAC-0001"}
	inv.SetItems(items)

	header := mapping.ToModelInvoice(inv)
	header.Subtotal, header.TaxAmount, header.Total = stored(header.Subtotal), stored(header.TaxAmount), stored(header.Total)
	back := mapping.ToDomainInvoice(header)

	sumTax, sumTotal := decimal.Zero, decimal.Zero
	for _, it := range inv.Items {
		m := mapping.ToModelInvoiceItem(it)
		m.TaxRate, m.TaxAmount, m.Total = stored(m.TaxRate), stored(m.TaxAmount), stored(m.Total)
		got := mapping.ToDomainInvoiceItem(m)
		sumTax = sumTax.Add(got.TaxAmount)
		sumTotal = sumTotal.Add(got.Total)
		back.Items = append(back.Items, got)
	}

	assert.True(t, sumTax.Equal(back.TaxAmount), "items %s invoice %s", sumTax, back.TaxAmount)
	assert.True(t, sumTotal.Equal(back.Total))
	assert.True(t, decimal.RequireFromString("2.2098945").Equal(back.TaxAmount), "tax %s", back.TaxAmount)
	assert.True(t, decimal.RequireFromString("5.555").Equal(back.Items[1].TaxRate))
}
