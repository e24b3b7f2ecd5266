package mapping

import (
	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:         d.UserID,
		Email:          d.Email,
		Name:           d.Name,
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: d.ProviderUserID,
		EmailVerified:  d.EmailVerified,
		BudgetInitial:  d.BudgetInitial,
		ShareToken:     d.ShareToken,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.PasswordHash != "" {
		hash := d.PasswordHash
		m.PasswordHash = &hash
	}
	if m.AuthProvider == "" {
		m.AuthProvider = string(domain.ProviderLocal)
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:         m.UserID,
		Email:          m.Email,
		Name:           m.Name,
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: m.ProviderUserID,
		EmailVerified:  m.EmailVerified,
		BudgetInitial:  m.BudgetInitial,
		ShareToken:     m.ShareToken,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.PasswordHash != nil {
		d.PasswordHash = *m.PasswordHash
	}
	return d
}
