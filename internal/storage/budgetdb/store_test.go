package budgetdb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adithyaharun/wallette/internal/common"
	"github.com/adithyaharun/wallette/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBudgetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetBudget(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrBudgetNotFound)

	budget := &models.Budget{
		ID:         "b1",
		CategoryID: "food",
		Amount:     decimal.NewFromInt(300),
		StartDate:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.PutBudget(ctx, budget))

	got, err := store.GetBudget(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "food", got.CategoryID)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(300)))

	require.NoError(t, store.DeleteBudget(ctx, "b1"))
	err = store.DeleteBudget(ctx, "b1")
	assert.ErrorIs(t, err, models.ErrBudgetNotFound)
}

func TestListBudgetsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mk := func(id string, start time.Time) {
		require.NoError(t, store.PutBudget(ctx, &models.Budget{
			ID:         id,
			CategoryID: "food",
			Amount:     decimal.NewFromInt(100),
			StartDate:  start,
			EndDate:    start.AddDate(0, 1, -1),
		}))
	}
	mk("feb", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	mk("apr", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	mk("mar", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	budgets, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 3)
	assert.Equal(t, "apr", budgets[0].ID)
	assert.Equal(t, "mar", budgets[1].ID)
	assert.Equal(t, "feb", budgets[2].ID)
}
