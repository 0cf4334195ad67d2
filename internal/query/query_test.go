package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykarpov/budgetd/internal/transaction"
)

var queryNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.Local)

func fixture() []transaction.Transaction {
	return []transaction.Transaction{
		{ID: "t1", Date: "2025-03-10", Amount: 1500, Category: "Продукты", Description: "магазин у дома", Type: transaction.TypeExpense, CreatedAt: 10},
		{ID: "t2", Date: "2025-03-01", Amount: 98000, Category: "Зарплата", Description: "основной доход", Type: transaction.TypeIncome, CreatedAt: 9},
		{ID: "t3", Date: "2025-02-20", Amount: 3200, Category: "Кафе", Description: "Ужин с друзьями", Type: transaction.TypeExpense, CreatedAt: 8},
		{ID: "t4", Date: "2025-02-05", Amount: 8300, Category: "Коммуналка", Description: "ЖКУ", Type: transaction.TypeExpense, CreatedAt: 7},
		{ID: "t5", Date: "2024-12-31", Amount: 5000, Category: "Подарок", Description: "", Type: transaction.TypeIncome, CreatedAt: 6},
	}
}

func TestApplyPeriods(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantIDs []string
	}{
		{
			name:    "all",
			params:  Params{Period: PeriodAll},
			wantIDs: []string{"t1", "t2", "t3", "t4", "t5"},
		},
		{
			name:    "current month",
			params:  Params{Period: PeriodCurrentMonth},
			wantIDs: []string{"t1", "t2"},
		},
		{
			name:    "previous month",
			params:  Params{Period: PeriodPrevMonth},
			wantIDs: []string{"t3", "t4"},
		},
		{
			name:    "last 30 days",
			params:  Params{Period: PeriodLast30Days},
			wantIDs: []string{"t1", "t2", "t3"},
		},
		{
			name:    "this year",
			params:  Params{Period: PeriodThisYear},
			wantIDs: []string{"t1", "t2", "t3", "t4"},
		},
		{
			name:    "custom range",
			params:  Params{Period: PeriodCustom, Start: "2025-02-01", End: "2025-03-01"},
			wantIDs: []string{"t2", "t3", "t4"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Apply(fixture(), tc.params, queryNow)
			require.NoError(t, err)

			ids := make([]string, 0, len(res.Items))
			for _, tx := range res.Items {
				ids = append(ids, tx.ID)
			}

			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestApplyCustomPeriodValidation(t *testing.T) {
	_, err := Apply(fixture(), Params{Period: PeriodCustom, Start: "2025-02-01"}, queryNow)
	assert.Error(t, err)

	_, err = Apply(fixture(), Params{Period: PeriodCustom, Start: "01.02.2025", End: "2025-03-01"}, queryNow)
	assert.Error(t, err)
}

func TestApplyScope(t *testing.T) {
	res, err := Apply(fixture(), Params{Scope: ScopeExpenses}, queryNow)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)

	res, err = Apply(fixture(), Params{Scope: ScopeIncome}, queryNow)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)

	res, err = Apply(fixture(), Params{Scope: ScopeAnalysis}, queryNow)
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalCount)
}

func TestApplyCategories(t *testing.T) {
	res, err := Apply(fixture(), Params{Categories: []string{"Продукты", "Кафе"}}, queryNow)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)

	// Empty non-nil set passes nothing.
	res, err = Apply(fixture(), Params{Categories: []string{}}, queryNow)
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, 1, res.PageCount)
}

func TestApplySearch(t *testing.T) {
	res, err := Apply(fixture(), Params{Search: "ужин"}, queryNow)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "t3", res.Items[0].ID)

	// Empty descriptions never match a non-empty query.
	res, err = Apply(fixture(), Params{Search: "подарок"}, queryNow)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestApplySortByAmount(t *testing.T) {
	res, err := Apply(fixture(), Params{SortKey: SortByAmount, SortDir: SortAsc}, queryNow)
	require.NoError(t, err)

	require.Len(t, res.Items, 5)
	assert.Equal(t, "t1", res.Items[0].ID)
	assert.Equal(t, "t2", res.Items[4].ID)

	res, err = Apply(fixture(), Params{SortKey: SortByAmount, SortDir: SortDesc}, queryNow)
	require.NoError(t, err)
	assert.Equal(t, "t2", res.Items[0].ID)
}

func TestApplyTotalsCoverFilteredSetNotPage(t *testing.T) {
	txs := make([]transaction.Transaction, 0, 25)
	for i := 0; i < 25; i++ {
		txs = append(txs, transaction.Transaction{
			ID:        string(rune('a' + i)),
			Date:      "2025-03-01",
			Amount:    100,
			Category:  "Продукты",
			Type:      transaction.TypeExpense,
			CreatedAt: int64(i),
		})
	}

	res, err := Apply(txs, Params{Page: 2, PageSize: 10}, queryNow)
	require.NoError(t, err)

	assert.Len(t, res.Items, 10)
	assert.Equal(t, 25, res.TotalCount)
	assert.Equal(t, 2500.0, res.TotalAmount)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 3, res.PageCount)
}

func TestApplyPageClamp(t *testing.T) {
	res, err := Apply(fixture(), Params{Page: 99, PageSize: 10}, queryNow)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Items, 5)
}

func TestApplyRejectsOddPageSize(t *testing.T) {
	_, err := Apply(fixture(), Params{PageSize: 7}, queryNow)
	assert.Error(t, err)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	txs := fixture()
	original := fixture()

	_, err := Apply(txs, Params{SortKey: SortByAmount, SortDir: SortAsc}, queryNow)
	require.NoError(t, err)

	assert.Equal(t, original, txs)
}

func TestApplyIsIdempotent(t *testing.T) {
	params := Params{Period: PeriodThisYear, SortKey: SortByAmount, SortDir: SortDesc, PageSize: 10}

	first, err := Apply(fixture(), params, queryNow)
	require.NoError(t, err)

	second, err := Apply(fixture(), params, queryNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
