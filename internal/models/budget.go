package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending target for one category over a date range. Repeating
// budgets are renewed by inserting a new record for the next period; the
// expired record is kept untouched as history.
type Budget struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id" badgerhold:"index"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	IsRepeating bool            `json:"is_repeating"`
	StartDate   time.Time       `json:"start_date,omitempty"`
	EndDate     time.Time       `json:"end_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HasPeriod returns true if both period bounds are set.
func (b *Budget) HasPeriod() bool {
	return !b.StartDate.IsZero() && !b.EndDate.IsZero()
}

// BudgetPeriod classifies a budget's date range and carries the derived next
// period. A monthly period always advances by exactly one calendar month; a
// fixed-length one advances by its own day span.
type BudgetPeriod struct {
	IsMonthly  bool      `json:"is_monthly"`
	PeriodDays int       `json:"period_days"`
	NextStart  time.Time `json:"next_start"`
	NextEnd    time.Time `json:"next_end"`
}

// BudgetRenewal pairs an expired budget with its replacement.
type BudgetRenewal struct {
	OriginalID string `json:"original_id"`
	NewID      string `json:"new_id"`
}

// BudgetRenewalFailure records one budget that could not be renewed.
type BudgetRenewalFailure struct {
	BudgetID string `json:"budget_id"`
	Error    string `json:"error"`
}

// BudgetRenewalReport is the outcome of a batch renewal run. One bad budget
// never blocks renewal of the others.
type BudgetRenewalReport struct {
	Renewed []BudgetRenewal        `json:"renewed"`
	Failed  []BudgetRenewalFailure `json:"failed"`
}
