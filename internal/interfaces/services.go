package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adithyaharun/wallette/internal/models"
)

// BalanceService maintains each asset's running balance and its per-day
// snapshot history. It is the only writer of Asset.Balance and of snapshot
// rows; every transaction mutation must be paired with one of its calls.
type BalanceService interface {
	// AddAmount increases the asset's balance by amount as of date, updating
	// the day's snapshot and propagating the delta to any later snapshots
	// that already exist.
	AddAmount(ctx context.Context, assetID string, amount decimal.Decimal, date time.Time) error

	// DeductAmount is AddAmount with the sign inverted at every step.
	DeductAmount(ctx context.Context, assetID string, amount decimal.Decimal, date time.Time) error

	// ResetAndRecalculate rebuilds the asset's snapshot history and balance
	// authoritatively by replaying its transactions through upTo (end of
	// day, inclusive).
	ResetAndRecalculate(ctx context.Context, assetID string, upTo time.Time) (*models.RecalculationResult, error)
}

// AssetService manages assets and their balance-affecting edits.
type AssetService interface {
	// CreateAsset stores a new asset; a nonzero initial balance synthesizes
	// an opening transaction and snapshot through the balance engine.
	CreateAsset(ctx context.Context, req CreateAssetRequest) (*models.Asset, error)

	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	ListAssets(ctx context.Context) ([]*models.Asset, error)

	// UpdateAsset renames or recategorizes the asset; when NewBalance is set,
	// the difference is applied as a manual correction backed by a synthetic
	// adjustment transaction.
	UpdateAsset(ctx context.Context, id string, req UpdateAssetRequest) (*models.Asset, error)

	// DeleteAsset removes the asset with all its transactions and snapshots.
	DeleteAsset(ctx context.Context, id string) error
}

// CreateAssetRequest holds the fields for a new asset.
type CreateAssetRequest struct {
	Name           string          `json:"name"`
	CategoryID     string          `json:"category_id,omitempty"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// UpdateAssetRequest holds an asset edit. Nil fields are left unchanged.
type UpdateAssetRequest struct {
	Name       *string          `json:"name,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
	NewBalance *decimal.Decimal `json:"new_balance,omitempty"`
}

// TransactionService manages ledger transactions, keeping the balance engine
// in step with every mutation.
type TransactionService interface {
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, assetID string, until time.Time) ([]models.Transaction, error)

	// Categories (reference data consumed by transaction forms)
	CreateCategory(ctx context.Context, name string, categoryType models.CategoryType) (*models.TransactionCategory, error)
	ListCategories(ctx context.Context) ([]*models.TransactionCategory, error)
}

// CreateTransactionRequest holds the fields for a new transaction.
type CreateTransactionRequest struct {
	AssetID             string          `json:"asset_id"`
	CategoryID          string          `json:"category_id"`
	Amount              decimal.Decimal `json:"amount"`
	Date                time.Time       `json:"date"`
	Description         string          `json:"description,omitempty"`
	ExcludedFromReports bool            `json:"excluded_from_reports,omitempty"`
}

// UpdateTransactionRequest holds a transaction edit. Nil fields are left
// unchanged.
type UpdateTransactionRequest struct {
	CategoryID          *string          `json:"category_id,omitempty"`
	Amount              *decimal.Decimal `json:"amount,omitempty"`
	Date                *time.Time       `json:"date,omitempty"`
	Description         *string          `json:"description,omitempty"`
	ExcludedFromReports *bool            `json:"excluded_from_reports,omitempty"`
}

// BudgetService manages budgets and their period lifecycle.
type BudgetService interface {
	CreateBudget(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	GetBudget(ctx context.Context, id string) (*models.Budget, error)
	ListBudgets(ctx context.Context) ([]*models.Budget, error)
	DeleteBudget(ctx context.Context, id string) error

	// Renew inserts a follow-up budget covering the next period and returns
	// its id. The original record is left untouched.
	Renew(ctx context.Context, budget *models.Budget) (string, error)

	// RenewAllExpired renews every repeating, expired budget independently,
	// collecting per-item successes and failures without aborting the batch.
	RenewAllExpired(ctx context.Context) (*models.BudgetRenewalReport, error)
}
