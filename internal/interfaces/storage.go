// Package interfaces defines service and storage contracts for Wallette
package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adithyaharun/wallette/internal/models"
)

// StorageManager coordinates the storage backends.
type StorageManager interface {
	// Ledger returns the store holding assets, categories, transactions,
	// and balance snapshots.
	Ledger() LedgerStore

	// Budgets returns the budget store.
	Budgets() BudgetStore

	// DataPath returns the base data directory path.
	DataPath() string

	// Lifecycle
	Close() error
}

// LedgerStore is the durable, indexed store behind the balance engine.
// Snapshots are keyed per (asset, calendar day); range queries are bounded
// by day-truncated dates, inclusive on both ends unless stated otherwise.
type LedgerStore interface {
	// Assets
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	PutAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, id string) error
	ListAssets(ctx context.Context) ([]*models.Asset, error)
	// UpdateAssetBalance overwrites only the balance field (and UpdatedAt).
	UpdateAssetBalance(ctx context.Context, id string, balance decimal.Decimal) error

	// Transaction categories (read-mostly reference data)
	GetCategory(ctx context.Context, id string) (*models.TransactionCategory, error)
	PutCategory(ctx context.Context, category *models.TransactionCategory) error
	ListCategories(ctx context.Context) ([]*models.TransactionCategory, error)

	// Transactions
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	PutTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	// TransactionsByAsset returns the asset's transactions with date <= until,
	// sorted by date ascending, ties preserving insertion order.
	TransactionsByAsset(ctx context.Context, assetID string, until time.Time) ([]models.Transaction, error)
	// DeleteTransactionsByAsset removes all of an asset's transactions and
	// returns the count removed.
	DeleteTransactionsByAsset(ctx context.Context, assetID string) (int, error)

	// Balance snapshots
	// SnapshotOn returns the snapshot at (assetID, day), or
	// models.ErrSnapshotNotFound when the day has none.
	SnapshotOn(ctx context.Context, assetID string, day time.Time) (*models.AssetBalanceSnapshot, error)
	// LatestSnapshotBefore returns the most recent snapshot strictly before
	// day, or models.ErrSnapshotNotFound when none exists.
	LatestSnapshotBefore(ctx context.Context, assetID string, day time.Time) (*models.AssetBalanceSnapshot, error)
	// SnapshotsInRange returns snapshots with from <= date <= to, ascending.
	SnapshotsInRange(ctx context.Context, assetID string, from, to time.Time) ([]models.AssetBalanceSnapshot, error)
	// UpsertSnapshot inserts or overwrites the snapshot for its (asset, day).
	UpsertSnapshot(ctx context.Context, snap *models.AssetBalanceSnapshot) error
	// ReplaceSnapshots atomically wipes the asset's snapshot history, writes
	// the given snapshots, and sets the asset's balance, all in one store
	// transaction. A crash mid-recalculation can therefore never leave the
	// asset stripped of snapshots with a stale balance.
	ReplaceSnapshots(ctx context.Context, assetID string, snaps []models.AssetBalanceSnapshot, balance decimal.Decimal) error
	// DeleteSnapshotsByAsset removes all snapshots for an asset and returns
	// the count removed. Safe to call when none exist.
	DeleteSnapshotsByAsset(ctx context.Context, assetID string) (int, error)

	Close() error
}

// BudgetStore persists budgets.
type BudgetStore interface {
	GetBudget(ctx context.Context, id string) (*models.Budget, error)
	PutBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, id string) error
	ListBudgets(ctx context.Context) ([]*models.Budget, error)

	Close() error
}
