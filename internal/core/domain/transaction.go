package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a budget movement adds to or subtracts from the budget.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// ReimbursementCategory is the category attached to expenses recorded when a reimbursement is paid.
const ReimbursementCategory = "Remboursements"

// Transaction is one entry of a user's budget log. Amount is always positive;
// the direction is given by Type.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type"`
	Description     *string         `json:"description,omitempty"`
	Category        *string         `json:"category,omitempty"`
	Date            time.Time       `json:"date"`
	ReimbursementID *string         `json:"reimbursementID,omitempty"`
	AuditFields
}

// SignedAmount returns the effect of the transaction on the budget.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// LedgerEntry is a transaction together with the budget right after it was applied.
type LedgerEntry struct {
	Transaction
	BudgetAfter decimal.Decimal `json:"budgetAfter"`
}

// Budget is a user's budget. Current is always BudgetInitial plus the signed sum of the transaction log.
type Budget struct {
	UserID        string          `json:"userID"`
	BudgetInitial decimal.Decimal `json:"budgetInitial"`
	Current       decimal.Decimal `json:"budget"`
}

// ApplyTo returns the budget value after applying txns to initial, in order.
func ApplyTo(initial decimal.Decimal, txns []Transaction) decimal.Decimal {
	total := initial
	for _, t := range txns {
		total = total.Add(t.SignedAmount())
	}
	return total
}
