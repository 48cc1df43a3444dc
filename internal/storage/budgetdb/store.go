// Package budgetdb implements BudgetStore using BadgerHold.
package budgetdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/models"
)

// Compile-time interface check
var _ interfaces.BudgetStore = (*Store)(nil)

// Store implements interfaces.BudgetStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (or creates) the budget database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create budgetdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open budgetdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("BudgetDB opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) GetBudget(_ context.Context, id string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Get(id, &budget); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrBudgetNotFound, id)
		}
		return nil, fmt.Errorf("failed to get budget '%s': %w", id, err)
	}
	return &budget, nil
}

func (s *Store) PutBudget(_ context.Context, budget *models.Budget) error {
	if err := s.db.Upsert(budget.ID, budget); err != nil {
		return fmt.Errorf("failed to put budget '%s': %w", budget.ID, err)
	}
	return nil
}

func (s *Store) DeleteBudget(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Budget{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("%w: %s", models.ErrBudgetNotFound, id)
		}
		return fmt.Errorf("failed to delete budget '%s': %w", id, err)
	}
	return nil
}

func (s *Store) ListBudgets(_ context.Context) ([]*models.Budget, error) {
	var all []models.Budget
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	// Newest period first; undated budgets sort last.
	sort.Slice(all, func(i, j int) bool {
		return all[i].StartDate.After(all[j].StartDate)
	})
	result := make([]*models.Budget, 0, len(all))
	for i := range all {
		result = append(result, &all[i])
	}
	return result, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
