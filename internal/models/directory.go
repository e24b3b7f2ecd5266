package models

import "github.com/shopspring/decimal"

// Organisation is the organisations table row.
type Organisation struct {
	OrganisationID string  `db:"organisation_id"`
	UserID         string  `db:"user_id"`
	Name           string  `db:"name"`
	Address        *string `db:"address"`
	City           *string `db:"city"`
	PostalCode     *string `db:"postal_code"`
	Country        *string `db:"country"`
	Siret          *string `db:"siret"`
	TaxNumber      *string `db:"tax_number"`
	Phone          *string `db:"phone"`
	Email          *string `db:"email"`
	Website        *string `db:"website"`
	Logo           *string `db:"logo"`
	AuditFields
}

// Client is the clients table row.
type Client struct {
	ClientID   string  `db:"client_id"`
	UserID     string  `db:"user_id"`
	Name       string  `db:"name"`
	FirstName  *string `db:"first_name"`
	LastName   *string `db:"last_name"`
	Company    *string `db:"company"`
	Address    *string `db:"address"`
	City       *string `db:"city"`
	PostalCode *string `db:"postal_code"`
	Country    *string `db:"country"`
	Email      *string `db:"email"`
	Phone      *string `db:"phone"`
	Siret      *string `db:"siret"`
	TaxNumber  *string `db:"tax_number"`
	Notes      *string `db:"notes"`
	AuditFields
}

// Article is the articles table row.
type Article struct {
	ArticleID   string          `db:"article_id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	Unit        *string         `db:"unit"`
	Category    *string         `db:"category"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
