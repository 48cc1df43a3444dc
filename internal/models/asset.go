package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset represents a tracked store of value (bank account, cash wallet, etc.).
// Balance is the single authoritative current-balance figure; it is mutated
// only by the balance engine; callers must never compute or write it ad hoc.
type Asset struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AssetCategory groups assets for presentation purposes.
type AssetCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssetBalanceSnapshot records an asset's balance as of end of one calendar
// day. Snapshots are a derived cache keyed by (asset, day): the source of
// truth is the transaction log, and a full recalculation can always rebuild
// them. Only the balance engine creates or updates snapshot rows.
type AssetBalanceSnapshot struct {
	ID      string          `json:"id"`
	AssetID string          `json:"asset_id" badgerhold:"index"`
	Date    time.Time       `json:"date" badgerhold:"index"`
	Balance decimal.Decimal `json:"balance"`
}

// RecalculationResult reports the outcome of a full balance rebuild. Skipped
// transaction IDs identify rows whose category could not be resolved and
// therefore contributed nothing to the running total.
type RecalculationResult struct {
	Balance               decimal.Decimal `json:"balance"`
	SnapshotCount         int             `json:"snapshot_count"`
	SkippedTransactionIDs []string        `json:"skipped_transaction_ids,omitempty"`
}
