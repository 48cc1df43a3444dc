// Package budget manages budgets and their period lifecycle: classifying a
// budget's date range as calendar-monthly or fixed-length, detecting expiry,
// and rolling repeating budgets into their next period.
package budget

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
var _ interfaces.BudgetService = (*Service)(nil)

// Service implements BudgetService.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new budget service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// AnalyzePeriod classifies the date range and derives the next period. The
// range is monthly iff it spans exactly one calendar month edge to edge; a
// monthly budget then advances by one calendar month regardless of month
// length, anything else advances by its own day span.
func AnalyzePeriod(start, end time.Time) models.BudgetPeriod {
	start = models.Day(start)
	end = models.Day(end)

	periodDays := models.DaysBetween(start, end) + 1

	isMonthly := start.Day() == 1 &&
		end.Equal(models.EndOfMonth(end)) &&
		start.Year() == end.Year() &&
		start.Month() == end.Month()

	var nextStart, nextEnd time.Time
	if isMonthly {
		nextStart = models.AddDays(models.EndOfMonth(end), 1)
		nextEnd = models.EndOfMonth(nextStart)
	} else {
		nextStart = models.AddDays(end, 1)
		nextEnd = models.AddDays(nextStart, periodDays-1)
	}

	return models.BudgetPeriod{
		IsMonthly:  isMonthly,
		PeriodDays: periodDays,
		NextStart:  nextStart,
		NextEnd:    nextEnd,
	}
}

// IsExpired reports whether the budget has an end date that today is
// strictly past (day granularity).
func IsExpired(b *models.Budget) bool {
	return !b.EndDate.IsZero() && models.Today().After(models.Day(b.EndDate))
}

func validateBudget(b *models.Budget) error {
	if strings.TrimSpace(b.CategoryID) == "" {
		return fmt.Errorf("category is required")
	}
	if b.Amount.IsNegative() || b.Amount.IsZero() {
		return fmt.Errorf("amount must be positive")
	}
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
		return fmt.Errorf("end date precedes start date")
	}
	return nil
}

// CreateBudget validates and stores a new budget.
func (s *Service) CreateBudget(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	if err := validateBudget(budget); err != nil {
		return nil, fmt.Errorf("invalid budget: %w", err)
	}

	budget.ID = uuid.NewString()
	budget.CreatedAt = time.Now()
	if !budget.StartDate.IsZero() {
		budget.StartDate = models.Day(budget.StartDate)
	}
	if !budget.EndDate.IsZero() {
		budget.EndDate = models.Day(budget.EndDate)
	}

	if err := s.storage.Budgets().PutBudget(ctx, budget); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("budget_id", budget.ID).
		Str("category_id", budget.CategoryID).
		Msg("Budget created")

	return budget, nil
}

// GetBudget retrieves one budget by id.
func (s *Service) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	return s.storage.Budgets().GetBudget(ctx, id)
}

// ListBudgets returns all budgets, newest period first.
func (s *Service) ListBudgets(ctx context.Context) ([]*models.Budget, error) {
	return s.storage.Budgets().ListBudgets(ctx)
}

// DeleteBudget removes one budget by id.
func (s *Service) DeleteBudget(ctx context.Context, id string) error {
	return s.storage.Budgets().DeleteBudget(ctx, id)
}

// Renew inserts a follow-up budget covering the next period and returns its
// id. The expired original is not mutated or closed out; both records
// coexist as history.
func (s *Service) Renew(ctx context.Context, budget *models.Budget) (string, error) {
	if !budget.HasPeriod() {
		return "", fmt.Errorf("%w: budget '%s' has no start or end date", models.ErrInvalidPeriod, budget.ID)
	}

	period := AnalyzePeriod(budget.StartDate, budget.EndDate)

	renewed := &models.Budget{
		ID:          uuid.NewString(),
		CategoryID:  budget.CategoryID,
		Amount:      budget.Amount,
		Description: budget.Description,
		IsRepeating: budget.IsRepeating,
		StartDate:   period.NextStart,
		EndDate:     period.NextEnd,
		CreatedAt:   time.Now(),
	}

	if err := s.storage.Budgets().PutBudget(ctx, renewed); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("budget_id", budget.ID).
		Str("new_budget_id", renewed.ID).
		Str("next_start", models.DayString(period.NextStart)).
		Str("next_end", models.DayString(period.NextEnd)).
		Bool("monthly", period.IsMonthly).
		Msg("Budget renewed")

	return renewed.ID, nil
}

// RenewAllExpired renews every repeating, expired budget independently. One
// bad budget never blocks renewal of the others; per-item failures are
// collected in the report.
func (s *Service) RenewAllExpired(ctx context.Context) (*models.BudgetRenewalReport, error) {
	budgets, err := s.storage.Budgets().ListBudgets(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.BudgetRenewalReport{}
	for _, b := range budgets {
		if !b.IsRepeating || !IsExpired(b) {
			continue
		}

		newID, err := s.Renew(ctx, b)
		if err != nil {
			s.logger.Warn().
				Str("budget_id", b.ID).
				Err(err).
				Msg("Budget renewal failed")
			report.Failed = append(report.Failed, models.BudgetRenewalFailure{
				BudgetID: b.ID,
				Error:    err.Error(),
			})
			continue
		}
		report.Renewed = append(report.Renewed, models.BudgetRenewal{
			OriginalID: b.ID,
			NewID:      newID,
		})
	}

	s.logger.Info().
		Int("renewed", len(report.Renewed)).
		Int("failed", len(report.Failed)).
		Msg("Expired budget renewal completed")

	return report, nil
}
