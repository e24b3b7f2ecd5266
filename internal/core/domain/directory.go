package domain

import "github.com/shopspring/decimal"

// Organisation is an issuing entity owned by a user; it appears as the seller on invoices.
type Organisation struct {
	OrganisationID string  `json:"organisationID"`
	UserID         string  `json:"userID"`
	Name           string  `json:"name"`
	Address        *string `json:"address,omitempty"`
	City           *string `json:"city,omitempty"`
	PostalCode     *string `json:"postalCode,omitempty"`
	Country        *string `json:"country,omitempty"`
	Siret          *string `json:"siret,omitempty"`
	TaxNumber      *string `json:"tvaNumber,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	Website        *string `json:"website,omitempty"`
	Logo           *string `json:"logo,omitempty"`
	AuditFields
}

// Client is a customer billed on invoices.
type Client struct {
	ClientID   string  `json:"clientID"`
	UserID     string  `json:"userID"`
	Name       string  `json:"name"`
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Company    *string `json:"company,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Siret      *string `json:"siret,omitempty"`
	TaxNumber  *string `json:"tvaNumber,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	AuditFields
}

// Article is a catalog entry used as a template for invoice lines.
type Article struct {
	ArticleID   string          `json:"articleID"`
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tvaRate"`
	Unit        *string         `json:"unit,omitempty"`
	Category    *string         `json:"category,omitempty"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// LineDescription returns the text an invoice line copies from the article.
func (a Article) LineDescription() string {
	if a.Description != nil && *a.Description != "" {
		return *a.Description
	}
	return a.Name
}
