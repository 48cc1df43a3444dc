package app

import (
	"context"
	"time"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
)

// startBudgetRenewal renews expired repeating budgets on a fixed interval,
// with one pass at startup so an app opened after a long absence catches up
// immediately.
func startBudgetRenewal(ctx context.Context, budgetService interfaces.BudgetService, logger *common.Logger, interval time.Duration) {
	renewExpired(ctx, budgetService, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Budget renewal scheduler: stopped")
			return
		case <-ticker.C:
			renewExpired(ctx, budgetService, logger)
		}
	}
}

func renewExpired(ctx context.Context, budgetService interfaces.BudgetService, logger *common.Logger) {
	start := time.Now()

	report, err := budgetService.RenewAllExpired(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Budget renewal: scan failed")
		return
	}

	if len(report.Renewed) == 0 && len(report.Failed) == 0 {
		return
	}

	logger.Info().
		Int("renewed", len(report.Renewed)).
		Int("failed", len(report.Failed)).
		Dur("elapsed", time.Since(start)).
		Msg("Budget renewal: complete")
}
