package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryType is the direction a transaction category applies to a balance.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// ValidCategoryType returns true if t is a recognized category type.
func ValidCategoryType(t CategoryType) bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Reserved category IDs for transactions the system synthesizes itself:
// opening balances on asset creation and manual balance corrections.
const (
	CategoryOpeningBalance   = "system.opening-balance"
	CategoryAdjustmentIn     = "system.adjustment-in"
	CategoryAdjustmentOut    = "system.adjustment-out"
)

// TransactionCategory classifies transactions and carries the type that
// resolves a transaction's signed effect. Read-only input to the balance
// engine, which never mutates categories.
type TransactionCategory struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// Transaction is a single ledger event against one asset. Amount is an
// unsigned magnitude; the signed effect on the balance is derived from the
// category type (income adds, expense deducts) and is never stored.
type Transaction struct {
	ID                  string          `json:"id"`
	AssetID             string          `json:"asset_id" badgerhold:"index"`
	CategoryID          string          `json:"category_id"`
	Amount              decimal.Decimal `json:"amount"`
	Date                time.Time       `json:"date" badgerhold:"index"`
	Description         string          `json:"description,omitempty"`
	ExcludedFromReports bool            `json:"excluded_from_reports,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// SignedAmount resolves the transaction's effect on a balance given its
// category: +Amount for income, -Amount for expense.
func (t *Transaction) SignedAmount(category *TransactionCategory) decimal.Decimal {
	if category != nil && category.Type == CategoryExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
