// Package transaction manages ledger transactions and keeps the balance
// engine in step with every mutation: creates apply an incremental delta,
// edits and deletes trigger a full recalculation of the affected asset.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/models"
)

// Compile-time interface check
var _ interfaces.TransactionService = (*Service)(nil)

// Service implements TransactionService.
type Service struct {
	storage interfaces.StorageManager
	balance interfaces.BalanceService
	logger  *common.Logger
}

// NewService creates a new transaction service.
func NewService(storage interfaces.StorageManager, balance interfaces.BalanceService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		balance: balance,
		logger:  logger,
	}
}

func validateTransaction(req interfaces.CreateTransactionRequest) error {
	if strings.TrimSpace(req.AssetID) == "" {
		return fmt.Errorf("asset is required")
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		return fmt.Errorf("category is required")
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return fmt.Errorf("amount must be positive")
	}
	if req.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if len(req.Description) > 500 {
		return fmt.Errorf("description exceeds 500 characters")
	}
	return nil
}

// CreateTransaction validates and stores a new transaction, then applies its
// signed effect to the asset's balance and snapshot history incrementally.
func (s *Service) CreateTransaction(ctx context.Context, req interfaces.CreateTransactionRequest) (*models.Transaction, error) {
	if err := validateTransaction(req); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}

	ledger := s.storage.Ledger()

	if _, err := ledger.GetAsset(ctx, req.AssetID); err != nil {
		return nil, err
	}
	category, err := ledger.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:                  uuid.NewString(),
		AssetID:             req.AssetID,
		CategoryID:          req.CategoryID,
		Amount:              req.Amount,
		Date:                models.Day(req.Date),
		Description:         strings.TrimSpace(req.Description),
		ExcludedFromReports: req.ExcludedFromReports,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := ledger.PutTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if category.Type == models.CategoryExpense {
		err = s.balance.DeductAmount(ctx, tx.AssetID, tx.Amount, tx.Date)
	} else {
		err = s.balance.AddAmount(ctx, tx.AssetID, tx.Amount, tx.Date)
	}
	if err != nil {
		return nil, fmt.Errorf("transaction stored but balance adjustment failed: %w", err)
	}

	s.logger.Info().
		Str("transaction_id", tx.ID).
		Str("asset_id", tx.AssetID).
		Str("amount", tx.Amount.String()).
		Str("type", string(category.Type)).
		Str("date", models.DayString(tx.Date)).
		Msg("Transaction created")

	return tx, nil
}

// GetTransaction retrieves one transaction by id.
func (s *Service) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return s.storage.Ledger().GetTransaction(ctx, id)
}

// UpdateTransaction applies the edit and rebuilds the asset's balance from
// its transaction log. The incremental engine cannot safely reverse an
// arbitrary historical edit (the old and new rows may differ in date, sign,
// and magnitude at once), so edits always go through a full recalculation.
func (s *Service) UpdateTransaction(ctx context.Context, id string, req interfaces.UpdateTransactionRequest) (*models.Transaction, error) {
	ledger := s.storage.Ledger()

	tx, err := ledger.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := ledger.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		tx.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() || req.Amount.IsZero() {
			return nil, fmt.Errorf("invalid transaction: amount must be positive")
		}
		tx.Amount = *req.Amount
	}
	if req.Date != nil {
		tx.Date = models.Day(*req.Date)
	}
	if req.Description != nil {
		tx.Description = strings.TrimSpace(*req.Description)
	}
	if req.ExcludedFromReports != nil {
		tx.ExcludedFromReports = *req.ExcludedFromReports
	}
	tx.UpdatedAt = time.Now()

	if err := ledger.PutTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if _, err := s.balance.ResetAndRecalculate(ctx, tx.AssetID, time.Time{}); err != nil {
		return nil, fmt.Errorf("transaction updated but recalculation failed: %w", err)
	}

	s.logger.Info().
		Str("transaction_id", tx.ID).
		Str("asset_id", tx.AssetID).
		Msg("Transaction updated")

	return tx, nil
}

// DeleteTransaction removes the transaction and rebuilds the asset's balance
// from the remaining log.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	ledger := s.storage.Ledger()

	tx, err := ledger.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if err := ledger.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	if _, err := s.balance.ResetAndRecalculate(ctx, tx.AssetID, time.Time{}); err != nil {
		return fmt.Errorf("transaction deleted but recalculation failed: %w", err)
	}

	s.logger.Info().
		Str("transaction_id", id).
		Str("asset_id", tx.AssetID).
		Msg("Transaction deleted")

	return nil
}

// ListTransactions returns the asset's transactions through the end of
// until (today when zero), date ascending.
func (s *Service) ListTransactions(ctx context.Context, assetID string, until time.Time) ([]models.Transaction, error) {
	if until.IsZero() {
		until = models.Today()
	}
	return s.storage.Ledger().TransactionsByAsset(ctx, assetID, until)
}

// CreateCategory stores a new transaction category.
func (s *Service) CreateCategory(ctx context.Context, name string, categoryType models.CategoryType) (*models.TransactionCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("invalid category: name is required")
	}
	if !models.ValidCategoryType(categoryType) {
		return nil, fmt.Errorf("invalid category: type %q must be income or expense", categoryType)
	}

	category := &models.TransactionCategory{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		Type: categoryType,
	}
	if err := s.storage.Ledger().PutCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all transaction categories.
func (s *Service) ListCategories(ctx context.Context) ([]*models.TransactionCategory, error) {
	return s.storage.Ledger().ListCategories(ctx)
}
