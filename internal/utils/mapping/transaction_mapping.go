package mapping

import (
	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/models"
)

func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		Name:            d.Name,
		Amount:          d.Amount,
		TransactionType: string(d.Type),
		Description:     d.Description,
		Category:        d.Category,
		TransactionDate: d.Date,
		ReimbursementID: d.ReimbursementID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		Name:            m.Name,
		Amount:          m.Amount,
		Type:            domain.TransactionType(m.TransactionType),
		Description:     m.Description,
		Category:        m.Category,
		Date:            m.TransactionDate,
		ReimbursementID: m.ReimbursementID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:   d.CategoryID,
		Name:         d.Name,
		CategoryType: string(d.Type),
		Color:        d.Color,
		Icon:         d.Icon,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Type:        domain.TransactionType(m.CategoryType),
		Color:       m.Color,
		Icon:        m.Icon,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
