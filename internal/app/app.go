// Package app wires configuration, logging, storage, and services into the
// shared core used by cmd/wallette-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/services/asset"
	"github.com/adithyaharun/wallette/internal/services/balance"
	"github.com/adithyaharun/wallette/internal/services/budget"
	"github.com/adithyaharun/wallette/internal/services/transaction"
	"github.com/adithyaharun/wallette/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config             *common.Config
	Logger             *common.Logger
	Storage            interfaces.StorageManager
	BalanceService     interfaces.BalanceService
	AssetService       interfaces.AssetService
	TransactionService interfaces.TransactionService
	BudgetService      interfaces.BudgetService
	StartupTime        time.Time

	renewalCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, and all services.
// configPath may be empty, in which case the default resolution logic is
// used: WALLETTE_CONFIG, then wallette.toml beside the binary, then the
// development fallback.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("WALLETTE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "wallette.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/wallette.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage paths to the binary directory
	if config.Storage.Ledger.Path != "" && !filepath.IsAbs(config.Storage.Ledger.Path) {
		config.Storage.Ledger.Path = filepath.Join(binDir, config.Storage.Ledger.Path)
	}
	if config.Storage.Budgets.Path != "" && !filepath.IsAbs(config.Storage.Budgets.Path) {
		config.Storage.Budgets.Path = filepath.Join(binDir, config.Storage.Budgets.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	balanceService := balance.NewService(store, logger)

	a := &App{
		Config:             config,
		Logger:             logger,
		Storage:            store,
		BalanceService:     balanceService,
		AssetService:       asset.NewService(store, balanceService, logger),
		TransactionService: transaction.NewService(store, balanceService, logger),
		BudgetService:      budget.NewService(store, logger),
		StartupTime:        time.Now(),
	}

	logger.Info().
		Str("version", common.GetFullVersion()).
		Str("environment", config.Environment).
		Msg("Wallette initialized")

	return a, nil
}

// StartBudgetRenewal runs an immediate renewal pass and then checks for
// expired repeating budgets once a day.
func (a *App) StartBudgetRenewal() {
	ctx, cancel := context.WithCancel(context.Background())
	a.renewalCancel = cancel
	go startBudgetRenewal(ctx, a.BudgetService, a.Logger, 24*time.Hour)
}

// Close stops background work and closes storage.
func (a *App) Close() {
	if a.renewalCancel != nil {
		a.renewalCancel()
	}
	if err := a.Storage.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to close storage")
	}
}
