package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is a free label; any status can be set by an update.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice is a numbered bill from one of the owner's organisations to one of the owner's clients.
// Subtotal, TaxAmount and Total are the sums of the corresponding item amounts.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	UserID         string          `json:"userID"`
	Number         string          `json:"number"`
	OrganisationID string          `json:"organisationID"`
	ClientID       string          `json:"clientID"`
	Date           time.Time       `json:"date"`
	DueDate        time.Time       `json:"dueDate"`
	Status         InvoiceStatus   `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tvaAmount"`
	Total          decimal.Decimal `json:"total"`
	Notes          *string         `json:"notes,omitempty"`
	PaymentTerms   *string         `json:"paymentTerms,omitempty"`
	Items          []InvoiceItem   `json:"items,omitempty"`
	AuditFields
}

// InvoiceItem is a line of an invoice. Its values are a snapshot: later edits
// of the referenced article do not change it.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	ArticleID   *string         `json:"articleID,omitempty"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"tvaRate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tvaAmount"`
	Total       decimal.Decimal `json:"total"`
}

// SetItems replaces the item set and recomputes the invoice totals from the item amounts.
func (inv *Invoice) SetItems(items []InvoiceItem) {
	subtotal, tax, total := decimal.Zero, decimal.Zero, decimal.Zero
	for i := range items {
		items[i].InvoiceID = inv.InvoiceID
		items[i].Position = i
		subtotal = subtotal.Add(items[i].Subtotal)
		tax = tax.Add(items[i].TaxAmount)
		total = total.Add(items[i].Total)
	}
	inv.Items = items
	inv.Subtotal = subtotal
	inv.TaxAmount = tax
	inv.Total = total
}

// InvoiceDocument bundles what is needed to render an invoice.
type InvoiceDocument struct {
	Invoice      Invoice
	Organisation Organisation
	Client       Client
}
