// Package asset manages assets and the balance-affecting edits that reach
// the ledger through them: opening balances on creation and manual balance
// corrections, both backed by synthesized transactions so the transaction
// log stays the single source of truth.
package asset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/models"
)

// Compile-time interface check
var _ interfaces.AssetService = (*Service)(nil)

// Service implements AssetService.
type Service struct {
	storage interfaces.StorageManager
	balance interfaces.BalanceService
	logger  *common.Logger
}

// NewService creates a new asset service.
func NewService(storage interfaces.StorageManager, balance interfaces.BalanceService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		balance: balance,
		logger:  logger,
	}
}

// systemCategories are the reserved categories behind synthesized
// transactions. They are created on first use and never mutated afterwards.
var systemCategories = []models.TransactionCategory{
	{ID: models.CategoryOpeningBalance, Name: "Opening Balance", Type: models.CategoryIncome},
	{ID: models.CategoryAdjustmentIn, Name: "Balance Adjustment (up)", Type: models.CategoryIncome},
	{ID: models.CategoryAdjustmentOut, Name: "Balance Adjustment (down)", Type: models.CategoryExpense},
}

func (s *Service) ensureSystemCategories(ctx context.Context) error {
	ledger := s.storage.Ledger()
	for i := range systemCategories {
		c := systemCategories[i]
		_, err := ledger.GetCategory(ctx, c.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrCategoryNotFound) {
			return err
		}
		if err := ledger.PutCategory(ctx, &c); err != nil {
			return err
		}
	}
	return nil
}

// synthesizeAdjustment records a system transaction for delta and applies it
// through the balance engine. The categoryID must match the delta's sign.
func (s *Service) synthesizeAdjustment(ctx context.Context, assetID, categoryID, description string, delta decimal.Decimal) error {
	if err := s.ensureSystemCategories(ctx); err != nil {
		return err
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.NewString(),
		AssetID:     assetID,
		CategoryID:  categoryID,
		Amount:      delta.Abs(),
		Date:        models.Today(),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.storage.Ledger().PutTransaction(ctx, tx); err != nil {
		return err
	}

	if delta.IsNegative() {
		return s.balance.DeductAmount(ctx, assetID, delta.Abs(), tx.Date)
	}
	return s.balance.AddAmount(ctx, assetID, delta, tx.Date)
}

// CreateAsset stores a new asset. A nonzero initial balance is recorded as
// an opening-balance transaction and applied through the balance engine, so
// the initial snapshot and the transaction log agree from day one.
func (s *Service) CreateAsset(ctx context.Context, req interfaces.CreateAssetRequest) (*models.Asset, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("invalid asset: name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("invalid asset: name exceeds 100 characters")
	}

	now := time.Now()
	asset := &models.Asset{
		ID:         uuid.NewString(),
		Name:       name,
		CategoryID: req.CategoryID,
		Balance:    decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.storage.Ledger().PutAsset(ctx, asset); err != nil {
		return nil, err
	}

	if !req.InitialBalance.IsZero() {
		categoryID := models.CategoryOpeningBalance
		if req.InitialBalance.IsNegative() {
			categoryID = models.CategoryAdjustmentOut
		}
		if err := s.synthesizeAdjustment(ctx, asset.ID, categoryID, "Opening balance", req.InitialBalance); err != nil {
			return nil, fmt.Errorf("asset created but opening balance failed: %w", err)
		}
		asset.Balance = req.InitialBalance
	}

	s.logger.Info().
		Str("asset_id", asset.ID).
		Str("name", asset.Name).
		Str("initial_balance", req.InitialBalance.String()).
		Msg("Asset created")

	return asset, nil
}

// GetAsset retrieves one asset by id.
func (s *Service) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	return s.storage.Ledger().GetAsset(ctx, id)
}

// ListAssets returns all assets sorted by name.
func (s *Service) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	return s.storage.Ledger().ListAssets(ctx)
}

// UpdateAsset renames or recategorizes the asset. When NewBalance is set,
// the difference against the current balance is applied as a manual
// correction: a synthetic adjustment transaction plus the matching
// incremental add or deduct, never a direct overwrite of the balance field.
func (s *Service) UpdateAsset(ctx context.Context, id string, req interfaces.UpdateAssetRequest) (*models.Asset, error) {
	ledger := s.storage.Ledger()

	asset, err := ledger.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("invalid asset: name is required")
		}
		asset.Name = name
	}
	if req.CategoryID != nil {
		asset.CategoryID = *req.CategoryID
	}
	asset.UpdatedAt = time.Now()

	if err := ledger.PutAsset(ctx, asset); err != nil {
		return nil, err
	}

	if req.NewBalance != nil {
		diff := req.NewBalance.Sub(asset.Balance)
		if !diff.IsZero() {
			categoryID := models.CategoryAdjustmentIn
			if diff.IsNegative() {
				categoryID = models.CategoryAdjustmentOut
			}
			if err := s.synthesizeAdjustment(ctx, id, categoryID, "Manual balance correction", diff); err != nil {
				return nil, fmt.Errorf("asset updated but balance correction failed: %w", err)
			}
			asset.Balance = *req.NewBalance
		}
	}

	s.logger.Info().
		Str("asset_id", id).
		Msg("Asset updated")

	return asset, nil
}

// DeleteAsset removes the asset together with its transactions and
// snapshots.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	ledger := s.storage.Ledger()

	if _, err := ledger.GetAsset(ctx, id); err != nil {
		return err
	}

	txCount, err := ledger.DeleteTransactionsByAsset(ctx, id)
	if err != nil {
		return err
	}
	snapCount, err := ledger.DeleteSnapshotsByAsset(ctx, id)
	if err != nil {
		return err
	}
	if err := ledger.DeleteAsset(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("asset_id", id).
		Int("transactions", txCount).
		Int("snapshots", snapCount).
		Msg("Asset deleted")

	return nil
}
