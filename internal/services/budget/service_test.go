package budget

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/models"
)

// --- In-memory budget store ---

type memBudgets struct {
	budgets map[string]*models.Budget
}

func newMemBudgets() *memBudgets {
	return &memBudgets{
		budgets: make(map[string]*models.Budget),
	}
}

func (m *memBudgets) GetBudget(_ context.Context, id string) (*models.Budget, error) {
	b, ok := m.budgets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrBudgetNotFound, id)
	}
	cp := *b
	return &cp, nil
}

func (m *memBudgets) PutBudget(_ context.Context, budget *models.Budget) error {
	cp := *budget
	m.budgets[budget.ID] = &cp
	return nil
}

func (m *memBudgets) DeleteBudget(_ context.Context, id string) error {
	delete(m.budgets, id)
	return nil
}

func (m *memBudgets) ListBudgets(_ context.Context) ([]*models.Budget, error) {
	var result []*models.Budget
	for _, b := range m.budgets {
		cp := *b
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *memBudgets) Close() error { return nil }

type memStorage struct {
	budgets *memBudgets
}

func (m *memStorage) Ledger() interfaces.LedgerStore  { return nil }
func (m *memStorage) Budgets() interfaces.BudgetStore { return m.budgets }
func (m *memStorage) DataPath() string                { return "" }
func (m *memStorage) Close() error                    { return nil }

func newTestService() (*Service, *memBudgets) {
	store := newMemBudgets()
	svc := NewService(&memStorage{budgets: store}, common.NewSilentLogger())
	return svc, store
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- AnalyzePeriod ---

func TestAnalyzePeriodCalendarMonth(t *testing.T) {
	p := AnalyzePeriod(day(2024, time.January, 1), day(2024, time.January, 31))

	assert.True(t, p.IsMonthly)
	assert.Equal(t, 31, p.PeriodDays)
	assert.True(t, p.NextStart.Equal(day(2024, time.February, 1)))
	assert.True(t, p.NextEnd.Equal(day(2024, time.February, 29)), "leap February runs to the 29th")
}

func TestAnalyzePeriodLeapFebruary(t *testing.T) {
	p := AnalyzePeriod(day(2024, time.February, 1), day(2024, time.February, 29))

	assert.True(t, p.IsMonthly)
	assert.Equal(t, 29, p.PeriodDays)
	assert.True(t, p.NextStart.Equal(day(2024, time.March, 1)))
	assert.True(t, p.NextEnd.Equal(day(2024, time.March, 31)))
}

func TestAnalyzePeriodFixedLength(t *testing.T) {
	p := AnalyzePeriod(day(2024, time.January, 10), day(2024, time.January, 19))

	assert.False(t, p.IsMonthly)
	assert.Equal(t, 10, p.PeriodDays)
	assert.True(t, p.NextStart.Equal(day(2024, time.January, 20)))
	assert.True(t, p.NextEnd.Equal(day(2024, time.January, 29)), "fixed periods keep their day span")
}

func TestAnalyzePeriodFullMonthSpanStartingMidMonth(t *testing.T) {
	// Same day count as a month but not aligned to calendar edges.
	p := AnalyzePeriod(day(2024, time.March, 15), day(2024, time.April, 13))

	assert.False(t, p.IsMonthly)
	assert.Equal(t, 30, p.PeriodDays)
	assert.True(t, p.NextStart.Equal(day(2024, time.April, 14)))
	assert.True(t, p.NextEnd.Equal(day(2024, time.May, 13)))
}

func TestAnalyzePeriodCrossMonthRangeIsNotMonthly(t *testing.T) {
	// First-to-last-day alignment across two months does not count as monthly.
	p := AnalyzePeriod(day(2024, time.January, 1), day(2024, time.February, 29))

	assert.False(t, p.IsMonthly)
	assert.Equal(t, 60, p.PeriodDays)
}

func TestAnalyzePeriodSingleDay(t *testing.T) {
	p := AnalyzePeriod(day(2024, time.June, 5), day(2024, time.June, 5))

	assert.False(t, p.IsMonthly)
	assert.Equal(t, 1, p.PeriodDays)
	assert.True(t, p.NextStart.Equal(day(2024, time.June, 6)))
	assert.True(t, p.NextEnd.Equal(day(2024, time.June, 6)))
}

func TestAnalyzePeriodDecemberRollsIntoNewYear(t *testing.T) {
	p := AnalyzePeriod(day(2025, time.December, 1), day(2025, time.December, 31))

	assert.True(t, p.IsMonthly)
	assert.True(t, p.NextStart.Equal(day(2026, time.January, 1)))
	assert.True(t, p.NextEnd.Equal(day(2026, time.January, 31)))
}

// --- IsExpired ---

func TestIsExpired(t *testing.T) {
	yesterday := models.AddDays(models.Today(), -1)
	tomorrow := models.AddDays(models.Today(), 1)

	assert.True(t, IsExpired(&models.Budget{EndDate: yesterday}))
	assert.False(t, IsExpired(&models.Budget{EndDate: models.Today()}), "a budget ending today is still live")
	assert.False(t, IsExpired(&models.Budget{EndDate: tomorrow}))
	assert.False(t, IsExpired(&models.Budget{}), "open-ended budgets never expire")
}

// --- CRUD ---

func TestCreateBudgetValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateBudget(ctx, &models.Budget{Amount: decimal.NewFromInt(100)})
	assert.Error(t, err, "category is required")

	_, err = svc.CreateBudget(ctx, &models.Budget{CategoryID: "food", Amount: decimal.Zero})
	assert.Error(t, err, "amount must be positive")

	_, err = svc.CreateBudget(ctx, &models.Budget{
		CategoryID: "food",
		Amount:     decimal.NewFromInt(100),
		StartDate:  day(2024, time.May, 10),
		EndDate:    day(2024, time.May, 1),
	})
	assert.Error(t, err, "end before start")
}

func TestCreateAndGetBudget(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateBudget(ctx, &models.Budget{
		CategoryID: "food",
		Amount:     decimal.NewFromInt(300),
		StartDate:  time.Date(2024, time.May, 1, 14, 30, 0, 0, time.UTC),
		EndDate:    day(2024, time.May, 31),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.StartDate.Equal(day(2024, time.May, 1)), "dates are truncated to day granularity")

	got, err := svc.GetBudget(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "food", got.CategoryID)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(300)))
}

// --- Renew ---

func TestRenewRequiresPeriod(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Renew(context.Background(), &models.Budget{ID: "b1", CategoryID: "food", Amount: decimal.NewFromInt(100)})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidPeriod)
}

func TestRenewCopiesFieldsAndAdvancesPeriod(t *testing.T) {
	svc, store := newTestService()

	original := &models.Budget{
		ID:          "b1",
		CategoryID:  "food",
		Amount:      decimal.NewFromInt(450),
		Description: "groceries",
		IsRepeating: true,
		StartDate:   day(2024, time.February, 1),
		EndDate:     day(2024, time.February, 29),
	}

	newID, err := svc.Renew(context.Background(), original)
	require.NoError(t, err)
	require.NotEmpty(t, newID)
	assert.NotEqual(t, original.ID, newID)

	renewed, err := store.GetBudget(context.Background(), newID)
	require.NoError(t, err)
	assert.Equal(t, "food", renewed.CategoryID)
	assert.True(t, renewed.Amount.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, "groceries", renewed.Description)
	assert.True(t, renewed.IsRepeating)
	assert.True(t, renewed.StartDate.Equal(day(2024, time.March, 1)))
	assert.True(t, renewed.EndDate.Equal(day(2024, time.March, 31)))
}

// --- RenewAllExpired ---

func TestRenewAllExpiredCollectsFailures(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	expired1 := models.AddDays(models.Today(), -40)
	expired2 := models.AddDays(models.Today(), -10)

	store.budgets["good1"] = &models.Budget{
		ID: "good1", CategoryID: "food", Amount: decimal.NewFromInt(100),
		IsRepeating: true, StartDate: models.AddDays(expired1, -29), EndDate: expired1,
	}
	store.budgets["good2"] = &models.Budget{
		ID: "good2", CategoryID: "transport", Amount: decimal.NewFromInt(50),
		IsRepeating: true, StartDate: models.AddDays(expired2, -9), EndDate: expired2,
	}
	// Expired but with no start date, so deriving the next period fails.
	store.budgets["bad"] = &models.Budget{
		ID: "bad", CategoryID: "misc", Amount: decimal.NewFromInt(25),
		IsRepeating: true, EndDate: expired2,
	}

	report, err := svc.RenewAllExpired(ctx)
	require.NoError(t, err, "per-item failures never abort the batch")

	assert.Len(t, report.Renewed, 2)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "bad", report.Failed[0].BudgetID)
	assert.Contains(t, report.Failed[0].Error, models.ErrInvalidPeriod.Error())
}

func TestRenewAllExpiredSkipsLiveAndNonRepeating(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	expired := models.AddDays(models.Today(), -5)

	store.budgets["live"] = &models.Budget{
		ID: "live", CategoryID: "food", Amount: decimal.NewFromInt(100),
		IsRepeating: true,
		StartDate:   models.Today(), EndDate: models.AddDays(models.Today(), 29),
	}
	store.budgets["oneoff"] = &models.Budget{
		ID: "oneoff", CategoryID: "gift", Amount: decimal.NewFromInt(80),
		IsRepeating: false,
		StartDate:   models.AddDays(expired, -9), EndDate: expired,
	}

	report, err := svc.RenewAllExpired(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Renewed)
	assert.Empty(t, report.Failed)
}
