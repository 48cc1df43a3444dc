// Package storage provides the top-level StorageManager coordinating the
// two storage areas: ledgerdb and budgetdb.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/storage/budgetdb"
	"github.com/adithyaharun/wallette/internal/storage/ledgerdb"
)

// Compile-time interface check
var _ interfaces.StorageManager = (*Manager)(nil)

// Manager implements interfaces.StorageManager.
type Manager struct {
	ledger  *ledgerdb.Store
	budgets *budgetdb.Store
	logger  *common.Logger
	base    string
}

// NewManager opens both storage areas from the config paths.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ledgerStore, err := ledgerdb.NewStore(logger, config.Storage.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger store: %w", err)
	}

	budgetStore, err := budgetdb.NewStore(logger, config.Storage.Budgets.Path)
	if err != nil {
		ledgerStore.Close()
		return nil, fmt.Errorf("failed to create budget store: %w", err)
	}

	logger.Info().
		Str("ledger", config.Storage.Ledger.Path).
		Str("budgets", config.Storage.Budgets.Path).
		Msg("Storage manager initialized (2 areas)")

	return &Manager{
		ledger:  ledgerStore,
		budgets: budgetStore,
		logger:  logger,
		base:    filepath.Dir(config.Storage.Ledger.Path),
	}, nil
}

func (m *Manager) Ledger() interfaces.LedgerStore {
	return m.ledger
}

func (m *Manager) Budgets() interfaces.BudgetStore {
	return m.budgets
}

func (m *Manager) DataPath() string {
	return m.base
}

// Close closes both storage areas, reporting the first error encountered.
func (m *Manager) Close() error {
	var firstErr error
	if err := m.ledger.Close(); err != nil {
		firstErr = err
	}
	if err := m.budgets.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
