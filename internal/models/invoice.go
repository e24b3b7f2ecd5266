package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	UserID         string          `db:"user_id"`
	Number         string          `db:"number"`
	OrganisationID string          `db:"organisation_id"`
	ClientID       string          `db:"client_id"`
	InvoiceDate    time.Time       `db:"invoice_date"`
	DueDate        time.Time       `db:"due_date"`
	Status         string          `db:"status"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	Total          decimal.Decimal `db:"total"`
	Notes          *string         `db:"notes"`
	PaymentTerms   *string         `db:"payment_terms"`
	AuditFields
}

// InvoiceItem is the invoice_items table row.
type InvoiceItem struct {
	ItemID      string          `db:"item_id"`
	InvoiceID   string          `db:"invoice_id"`
	ArticleID   *string         `db:"article_id"`
	Position    int             `db:"position"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	TaxAmount   decimal.Decimal `db:"tax_amount"`
	Total       decimal.Decimal `db:"total"`
}
