package mapping

import (
	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/models"
)

// ToModelAuditFields converts domain audit fields to their column form.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

// ToDomainAuditFields converts audit columns to domain audit fields, normalising timestamps to UTC.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	d := domain.AuditFields(m)
	d.CreatedAt = d.CreatedAt.UTC()
	d.LastUpdatedAt = d.LastUpdatedAt.UTC()
	return d
}
