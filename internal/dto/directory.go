package dto

import "github.com/shopspring/decimal"

// OrganisationRequest creates or replaces an organisation.
type OrganisationRequest struct {
	Name       string  `json:"name" binding:"required"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
	Siret      *string `json:"siret"`
	TaxNumber  *string `json:"tvaNumber"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Website    *string `json:"website"`
	Logo       *string `json:"logo"`
}

// ClientRequest creates or replaces a client.
type ClientRequest struct {
	Name       string  `json:"name" binding:"required"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Company    *string `json:"company"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone"`
	Siret      *string `json:"siret"`
	TaxNumber  *string `json:"tvaNumber"`
	Notes      *string `json:"notes"`
}

// ArticleRequest creates or replaces an article. TaxRate defaults to 20.
type ArticleRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	TaxRate     *decimal.Decimal `json:"tvaRate"`
	Unit        *string          `json:"unit"`
	Category    *string          `json:"category"`
	IsActive    *bool            `json:"isActive"`
}

// ListArticlesParams filters the article catalog.
type ListArticlesParams struct {
	IncludeInactive bool `form:"includeInactive"`
}
