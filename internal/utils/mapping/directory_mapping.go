package mapping

import (
	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/models"
)

func ToModelOrganisation(d domain.Organisation) models.Organisation {
	return models.Organisation{
		OrganisationID: d.OrganisationID,
		UserID:         d.UserID,
		Name:           d.Name,
		Address:        d.Address,
		City:           d.City,
		PostalCode:     d.PostalCode,
		Country:        d.Country,
		Siret:          d.Siret,
		TaxNumber:      d.TaxNumber,
		Phone:          d.Phone,
		Email:          d.Email,
		Website:        d.Website,
		Logo:           d.Logo,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainOrganisation(m models.Organisation) domain.Organisation {
	return domain.Organisation{
		OrganisationID: m.OrganisationID,
		UserID:         m.UserID,
		Name:           m.Name,
		Address:        m.Address,
		City:           m.City,
		PostalCode:     m.PostalCode,
		Country:        m.Country,
		Siret:          m.Siret,
		TaxNumber:      m.TaxNumber,
		Phone:          m.Phone,
		Email:          m.Email,
		Website:        m.Website,
		Logo:           m.Logo,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		UserID:      d.UserID,
		Name:        d.Name,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Company:     d.Company,
		Address:     d.Address,
		City:        d.City,
		PostalCode:  d.PostalCode,
		Country:     d.Country,
		Email:       d.Email,
		Phone:       d.Phone,
		Siret:       d.Siret,
		TaxNumber:   d.TaxNumber,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		UserID:      m.UserID,
		Name:        m.Name,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Company:     m.Company,
		Address:     m.Address,
		City:        m.City,
		PostalCode:  m.PostalCode,
		Country:     m.Country,
		Email:       m.Email,
		Phone:       m.Phone,
		Siret:       m.Siret,
		TaxNumber:   m.TaxNumber,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelArticle(d domain.Article) models.Article {
	return models.Article{
		ArticleID:   d.ArticleID,
		UserID:      d.UserID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		TaxRate:     d.TaxRate,
		Unit:        d.Unit,
		Category:    d.Category,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainArticle(m models.Article) domain.Article {
	return domain.Article{
		ArticleID:   m.ArticleID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		TaxRate:     m.TaxRate,
		Unit:        m.Unit,
		Category:    m.Category,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
