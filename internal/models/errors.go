package models

import "errors"

// Sentinel errors shared by the storage and service layers. Callers match
// with errors.Is; wrapped messages carry the offending identifiers.
var (
	ErrAssetNotFound       = errors.New("asset not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")

	// ErrSnapshotNotFound is an expected condition for point lookups on days
	// without a snapshot; the balance engine handles it inline.
	ErrSnapshotNotFound = errors.New("balance snapshot not found")

	// ErrInvalidPeriod indicates a budget operation whose date preconditions
	// are unmet (e.g. renewing a budget without a start or end date).
	ErrInvalidPeriod = errors.New("budget period is incomplete")
)
