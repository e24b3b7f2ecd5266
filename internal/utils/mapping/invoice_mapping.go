package mapping

import (
	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/models"
)

// ToModelInvoice converts the invoice header. Items are mapped separately.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		UserID:         d.UserID,
		Number:         d.Number,
		OrganisationID: d.OrganisationID,
		ClientID:       d.ClientID,
		InvoiceDate:    d.Date,
		DueDate:        d.DueDate,
		Status:         string(d.Status),
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		Total:          d.Total,
		Notes:          d.Notes,
		PaymentTerms:   d.PaymentTerms,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:      m.InvoiceID,
		UserID:         m.UserID,
		Number:         m.Number,
		OrganisationID: m.OrganisationID,
		ClientID:       m.ClientID,
		Date:           m.InvoiceDate,
		DueDate:        m.DueDate,
		Status:         domain.InvoiceStatus(m.Status),
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		Total:          m.Total,
		Notes:          m.Notes,
		PaymentTerms:   m.PaymentTerms,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:      d.ItemID,
		InvoiceID:   d.InvoiceID,
		ArticleID:   d.ArticleID,
		Position:    d.Position,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		TaxRate:     d.TaxRate,
		Subtotal:    d.Subtotal,
		TaxAmount:   d.TaxAmount,
		Total:       d.Total,
	}
}

func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:      m.ItemID,
		InvoiceID:   m.InvoiceID,
		ArticleID:   m.ArticleID,
		Position:    m.Position,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TaxRate:     m.TaxRate,
		Subtotal:    m.Subtotal,
		TaxAmount:   m.TaxAmount,
		Total:       m.Total,
	}
}
