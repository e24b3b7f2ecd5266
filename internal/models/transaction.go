package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row. Amount is stored positive.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType string          `db:"transaction_type"`
	Description     *string         `db:"description"`
	Category        *string         `db:"category"`
	TransactionDate time.Time       `db:"transaction_date"`
	ReimbursementID *string         `db:"reimbursement_id"`
	AuditFields
}

// Category is the categories table row.
type Category struct {
	CategoryID   string  `db:"category_id"`
	Name         string  `db:"name"`
	CategoryType string  `db:"category_type"`
	Color        *string `db:"color"`
	Icon         *string `db:"icon"`
	AuditFields
}
