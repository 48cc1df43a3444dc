// Package ledgerdb implements LedgerStore using BadgerHold. It holds the
// four ledger collections (assets, transaction categories, transactions,
// and balance snapshots) in one embedded, indexed, transactional store.
package ledgerdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/shopspring/decimal"
	"github.com/timshannon/badgerhold/v4"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerStore = (*Store)(nil)

// Store implements interfaces.LedgerStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (or creates) the ledger database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledgerdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledgerdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("LedgerDB opened")
	return &Store{db: db, logger: logger}, nil
}

// keySep is the composite key separator for snapshot keys. A null byte
// prevents collisions should an asset ID ever contain the date separator.
const keySep = "\x00"

// snapshotKey builds the storage key for the (asset, day) compound lookup.
func snapshotKey(assetID string, day time.Time) string {
	return assetID + keySep + models.DayString(day)
}

// --- Assets ---

func (s *Store) GetAsset(_ context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Get(id, &asset); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrAssetNotFound, id)
		}
		return nil, fmt.Errorf("failed to get asset '%s': %w", id, err)
	}
	return &asset, nil
}

func (s *Store) PutAsset(_ context.Context, asset *models.Asset) error {
	if err := s.db.Upsert(asset.ID, asset); err != nil {
		return fmt.Errorf("failed to put asset '%s': %w", asset.ID, err)
	}
	return nil
}

func (s *Store) DeleteAsset(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Asset{}); err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("failed to delete asset '%s': %w", id, err)
	}
	return nil
}

func (s *Store) ListAssets(_ context.Context) ([]*models.Asset, error) {
	var all []models.Asset
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	result := make([]*models.Asset, 0, len(all))
	for i := range all {
		result = append(result, &all[i])
	}
	return result, nil
}

func (s *Store) UpdateAssetBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return err
	}
	asset.Balance = balance
	asset.UpdatedAt = time.Now()
	if err := s.db.Upsert(id, asset); err != nil {
		return fmt.Errorf("failed to update balance of asset '%s': %w", id, err)
	}
	return nil
}

// --- Transaction categories ---

func (s *Store) GetCategory(_ context.Context, id string) (*models.TransactionCategory, error) {
	var category models.TransactionCategory
	if err := s.db.Get(id, &category); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrCategoryNotFound, id)
		}
		return nil, fmt.Errorf("failed to get category '%s': %w", id, err)
	}
	return &category, nil
}

func (s *Store) PutCategory(_ context.Context, category *models.TransactionCategory) error {
	if err := s.db.Upsert(category.ID, category); err != nil {
		return fmt.Errorf("failed to put category '%s': %w", category.ID, err)
	}
	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]*models.TransactionCategory, error) {
	var all []models.TransactionCategory
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	result := make([]*models.TransactionCategory, 0, len(all))
	for i := range all {
		result = append(result, &all[i])
	}
	return result, nil
}

// --- Transactions ---

func (s *Store) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Get(id, &tx); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get transaction '%s': %w", id, err)
	}
	return &tx, nil
}

func (s *Store) PutTransaction(_ context.Context, tx *models.Transaction) error {
	if err := s.db.Upsert(tx.ID, tx); err != nil {
		return fmt.Errorf("failed to put transaction '%s': %w", tx.ID, err)
	}
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Transaction{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("%w: %s", models.ErrTransactionNotFound, id)
		}
		return fmt.Errorf("failed to delete transaction '%s': %w", id, err)
	}
	return nil
}

func (s *Store) TransactionsByAsset(_ context.Context, assetID string, until time.Time) ([]models.Transaction, error) {
	cutoff := models.AddDays(until, 1) // end-of-day boundary, inclusive
	var txs []models.Transaction
	query := badgerhold.Where("AssetID").Eq(assetID).Index("AssetID").And("Date").Lt(cutoff)
	if err := s.db.Find(&txs, query); err != nil {
		return nil, fmt.Errorf("failed to query transactions for asset '%s': %w", assetID, err)
	}
	// Date ascending, insertion order (CreatedAt) for same-date ties.
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})
	return txs, nil
}

func (s *Store) DeleteTransactionsByAsset(_ context.Context, assetID string) (int, error) {
	query := badgerhold.Where("AssetID").Eq(assetID).Index("AssetID")
	count, err := s.db.Count(models.Transaction{}, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for asset '%s': %w", assetID, err)
	}
	if err := s.db.DeleteMatching(models.Transaction{}, query); err != nil {
		return 0, fmt.Errorf("failed to delete transactions for asset '%s': %w", assetID, err)
	}
	return int(count), nil
}

// --- Balance snapshots ---

func (s *Store) SnapshotOn(_ context.Context, assetID string, day time.Time) (*models.AssetBalanceSnapshot, error) {
	var snap models.AssetBalanceSnapshot
	if err := s.db.Get(snapshotKey(assetID, day), &snap); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: asset '%s' on %s", models.ErrSnapshotNotFound, assetID, models.DayString(day))
		}
		return nil, fmt.Errorf("failed to get snapshot for asset '%s': %w", assetID, err)
	}
	return &snap, nil
}

func (s *Store) LatestSnapshotBefore(_ context.Context, assetID string, day time.Time) (*models.AssetBalanceSnapshot, error) {
	var snaps []models.AssetBalanceSnapshot
	query := badgerhold.Where("AssetID").Eq(assetID).Index("AssetID").
		And("Date").Lt(models.Day(day)).
		SortBy("Date").Reverse().Limit(1)
	if err := s.db.Find(&snaps, query); err != nil {
		return nil, fmt.Errorf("failed to query snapshots for asset '%s': %w", assetID, err)
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("%w: asset '%s' before %s", models.ErrSnapshotNotFound, assetID, models.DayString(day))
	}
	return &snaps[0], nil
}

func (s *Store) SnapshotsInRange(_ context.Context, assetID string, from, to time.Time) ([]models.AssetBalanceSnapshot, error) {
	var snaps []models.AssetBalanceSnapshot
	query := badgerhold.Where("AssetID").Eq(assetID).Index("AssetID").
		And("Date").Ge(models.Day(from)).
		And("Date").Le(models.Day(to)).
		SortBy("Date")
	if err := s.db.Find(&snaps, query); err != nil {
		return nil, fmt.Errorf("failed to query snapshot range for asset '%s': %w", assetID, err)
	}
	return snaps, nil
}

func (s *Store) UpsertSnapshot(_ context.Context, snap *models.AssetBalanceSnapshot) error {
	snap.Date = models.Day(snap.Date)
	if err := s.db.Upsert(snapshotKey(snap.AssetID, snap.Date), snap); err != nil {
		return fmt.Errorf("failed to upsert snapshot for asset '%s': %w", snap.AssetID, err)
	}
	return nil
}

// ReplaceSnapshots wipes the asset's snapshot history, writes snaps, and sets
// the asset balance in a single Badger transaction.
func (s *Store) ReplaceSnapshots(_ context.Context, assetID string, snaps []models.AssetBalanceSnapshot, balance decimal.Decimal) error {
	err := s.db.Badger().Update(func(tx *badger.Txn) error {
		var asset models.Asset
		if err := s.db.TxGet(tx, assetID, &asset); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return fmt.Errorf("%w: %s", models.ErrAssetNotFound, assetID)
			}
			return err
		}

		query := badgerhold.Where("AssetID").Eq(assetID).Index("AssetID")
		if err := s.db.TxDeleteMatching(tx, models.AssetBalanceSnapshot{}, query); err != nil {
			return err
		}

		for i := range snaps {
			snaps[i].Date = models.Day(snaps[i].Date)
			if err := s.db.TxUpsert(tx, snapshotKey(assetID, snaps[i].Date), &snaps[i]); err != nil {
				return err
			}
		}

		asset.Balance = balance
		asset.UpdatedAt = time.Now()
		return s.db.TxUpsert(tx, assetID, &asset)
	})
	if err != nil {
		if errors.Is(err, models.ErrAssetNotFound) {
			return err
		}
		return fmt.Errorf("failed to replace snapshots for asset '%s': %w", assetID, err)
	}
	return nil
}

func (s *Store) DeleteSnapshotsByAsset(_ context.Context, assetID string) (int, error) {
	query := badgerhold.Where("AssetID").Eq(assetID).Index("AssetID")
	count, err := s.db.Count(models.AssetBalanceSnapshot{}, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots for asset '%s': %w", assetID, err)
	}
	if err := s.db.DeleteMatching(models.AssetBalanceSnapshot{}, query); err != nil {
		return 0, fmt.Errorf("failed to delete snapshots for asset '%s': %w", assetID, err)
	}
	return int(count), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
