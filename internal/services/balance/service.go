// Package balance maintains per-asset running balances and their daily
// snapshot history. It is the only writer of Asset.Balance and of snapshot
// rows: incremental adjustments for single-transaction edits, and a full
// recalculation that rebuilds everything from the transaction log.
package balance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/models"
)

// Compile-time interface check
var _ interfaces.BalanceService = (*Service)(nil)

// Service implements BalanceService.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	locks   assetLocks
}

// NewService creates a new balance service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// assetLocks serializes balance mutations per asset. Two writers on the same
// asset would otherwise interleave the read-adjust-write sequence and lose
// updates; unrelated assets never contend.
type assetLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (a *assetLocks) lock(assetID string) *sync.Mutex {
	a.mu.Lock()
	if a.locks == nil {
		a.locks = make(map[string]*sync.Mutex)
	}
	l, ok := a.locks[assetID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[assetID] = l
	}
	a.mu.Unlock()
	l.Lock()
	return l
}

// AddAmount increases the asset's balance by amount as of date. The day's
// snapshot absorbs the delta (falling back to the latest prior snapshot's
// balance when the day has none), and for back-dated amounts every later
// snapshot through today is shifted by the same delta. Days without a
// snapshot are not backfilled; only a full recalculation synthesizes them.
func (s *Service) AddAmount(ctx context.Context, assetID string, amount decimal.Decimal, date time.Time) error {
	return s.applyDelta(ctx, assetID, amount, date)
}

// DeductAmount is AddAmount with the sign inverted at every step.
func (s *Service) DeductAmount(ctx context.Context, assetID string, amount decimal.Decimal, date time.Time) error {
	return s.applyDelta(ctx, assetID, amount.Neg(), date)
}

func (s *Service) applyDelta(ctx context.Context, assetID string, delta decimal.Decimal, date time.Time) error {
	if date.IsZero() {
		date = models.Today()
	}
	day := models.Day(date)

	l := s.locks.lock(assetID)
	defer l.Unlock()

	ledger := s.storage.Ledger()

	asset, err := ledger.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}

	if err := ledger.UpdateAssetBalance(ctx, assetID, asset.Balance.Add(delta)); err != nil {
		return err
	}

	// Absorb the delta into the day's snapshot, creating it from the most
	// recent prior balance when the day has none yet.
	snap, err := ledger.SnapshotOn(ctx, assetID, day)
	switch {
	case err == nil:
		snap.Balance = snap.Balance.Add(delta)
		if err := ledger.UpsertSnapshot(ctx, snap); err != nil {
			return err
		}
	case errors.Is(err, models.ErrSnapshotNotFound):
		base := decimal.Zero
		prior, perr := ledger.LatestSnapshotBefore(ctx, assetID, day)
		if perr == nil {
			base = prior.Balance
		} else if !errors.Is(perr, models.ErrSnapshotNotFound) {
			return perr
		}
		created := &models.AssetBalanceSnapshot{
			ID:      uuid.NewString(),
			AssetID: assetID,
			Date:    day,
			Balance: base.Add(delta),
		}
		if err := ledger.UpsertSnapshot(ctx, created); err != nil {
			return err
		}
	default:
		return err
	}

	// Back-dated delta: shift every already-recorded snapshot from the day
	// after through today.
	today := models.Today()
	if day.Before(today) {
		future, err := ledger.SnapshotsInRange(ctx, assetID, models.AddDays(day, 1), today)
		if err != nil {
			return err
		}
		for i := range future {
			future[i].Balance = future[i].Balance.Add(delta)
			if err := ledger.UpsertSnapshot(ctx, &future[i]); err != nil {
				return err
			}
		}
	}

	s.logger.Debug().
		Str("asset_id", assetID).
		Str("delta", delta.String()).
		Str("date", models.DayString(day)).
		Msg("Applied balance delta")

	return nil
}

// ResetAndRecalculate rebuilds the asset's snapshot history and balance from
// its transaction log. Transactions through the end of upTo are replayed in
// date order, accumulating a signed running total per category type; one
// snapshot per distinct day records the end-of-day total. The write phase
// (wipe, insert, balance update) commits as a single store transaction.
//
// Transactions whose category cannot be resolved contribute nothing; their
// IDs are reported in the result rather than failing the rebuild.
func (s *Service) ResetAndRecalculate(ctx context.Context, assetID string, upTo time.Time) (*models.RecalculationResult, error) {
	if upTo.IsZero() {
		upTo = models.Today()
	}

	l := s.locks.lock(assetID)
	defer l.Unlock()

	ledger := s.storage.Ledger()

	if _, err := ledger.GetAsset(ctx, assetID); err != nil {
		return nil, err
	}

	txs, err := ledger.TransactionsByAsset(ctx, assetID, upTo)
	if err != nil {
		return nil, err
	}

	categories := make(map[string]*models.TransactionCategory)
	var skipped []string
	var snaps []models.AssetBalanceSnapshot
	running := decimal.Zero

	for i := range txs {
		tx := &txs[i]

		category, ok := categories[tx.CategoryID]
		if !ok {
			var cerr error
			category, cerr = ledger.GetCategory(ctx, tx.CategoryID)
			if cerr != nil {
				if !errors.Is(cerr, models.ErrCategoryNotFound) {
					return nil, cerr
				}
				category = nil
			}
			categories[tx.CategoryID] = category
		}
		if category == nil {
			skipped = append(skipped, tx.ID)
			continue
		}

		running = running.Add(tx.SignedAmount(category))

		// Later transactions on the same day overwrite the day's total, so
		// only the end-of-day balance survives.
		if n := len(snaps); n > 0 && models.SameDay(snaps[n-1].Date, tx.Date) {
			snaps[n-1].Balance = running
			continue
		}
		snaps = append(snaps, models.AssetBalanceSnapshot{
			ID:      uuid.NewString(),
			AssetID: assetID,
			Date:    models.Day(tx.Date),
			Balance: running,
		})
	}

	if err := ledger.ReplaceSnapshots(ctx, assetID, snaps, running); err != nil {
		return nil, fmt.Errorf("failed to commit recalculation for asset '%s': %w", assetID, err)
	}

	if len(skipped) > 0 {
		s.logger.Warn().
			Str("asset_id", assetID).
			Int("skipped", len(skipped)).
			Msg("Recalculation skipped transactions with unresolved categories")
	}

	s.logger.Info().
		Str("asset_id", assetID).
		Str("balance", running.String()).
		Int("snapshots", len(snaps)).
		Str("up_to", models.DayString(upTo)).
		Msg("Balance recalculated")

	return &models.RecalculationResult{
		Balance:               running,
		SnapshotCount:         len(snaps),
		SkippedTransactionIDs: skipped,
	}, nil
}
