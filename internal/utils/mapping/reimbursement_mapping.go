package mapping

import (
	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/models"
)

func ToModelReimbursementRequest(d domain.ReimbursementRequest) models.ReimbursementRequest {
	return models.ReimbursementRequest{
		RequestID:       d.RequestID,
		UserID:          d.UserID,
		RequesterName:   d.RequesterName,
		RequesterEmail:  d.RequesterEmail,
		Amount:          d.Amount,
		Description:     d.Description,
		ReceiptURL:      d.ReceiptURL,
		RibURL:          d.RibURL,
		Notes:           d.Notes,
		Status:          string(d.Status),
		IsPublicRequest: d.IsPublicRequest,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainReimbursementRequest(m models.ReimbursementRequest) domain.ReimbursementRequest {
	return domain.ReimbursementRequest{
		RequestID:       m.RequestID,
		UserID:          m.UserID,
		RequesterName:   m.RequesterName,
		RequesterEmail:  m.RequesterEmail,
		Amount:          m.Amount,
		Description:     m.Description,
		ReceiptURL:      m.ReceiptURL,
		RibURL:          m.RibURL,
		Notes:           m.Notes,
		Status:          domain.ReimbursementStatus(m.Status),
		IsPublicRequest: m.IsPublicRequest,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelReimbursement(d domain.Reimbursement) models.Reimbursement {
	return models.Reimbursement{
		ReimbursementID: d.ReimbursementID,
		RequestID:       d.RequestID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		Method:          string(d.Method),
		TransferDate:    d.TransferDate,
		Reference:       d.Reference,
		Notes:           d.Notes,
		TransactionID:   d.TransactionID,
		CreatedAt:       d.CreatedAt,
	}
}

func ToDomainReimbursement(m models.Reimbursement) domain.Reimbursement {
	return domain.Reimbursement{
		ReimbursementID: m.ReimbursementID,
		RequestID:       m.RequestID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		Method:          domain.PaymentMethod(m.Method),
		TransferDate:    m.TransferDate,
		Reference:       m.Reference,
		Notes:           m.Notes,
		TransactionID:   m.TransactionID,
		CreatedAt:       m.CreatedAt,
	}
}
