package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykarpov/budgetd/internal/database"
	"github.com/ykarpov/budgetd/internal/transaction"
	"github.com/ykarpov/budgetd/internal/transaction/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "budget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db)
}

func TestStore_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	txs := []transaction.Transaction{
		{
			ID:          "t1",
			Date:        "2025-01-05",
			Amount:      1000,
			Category:    "Продукты",
			Description: "Ашан",
			Type:        transaction.TypeExpense,
			CreatedAt:   1736100000000,
		},
		{
			ID:        "t2",
			Date:      "2025-01-05",
			Amount:    5000,
			Category:  "Зарплата",
			Type:      transaction.TypeIncome,
			CreatedAt: 1736100000001,
		},
	}

	require.NoError(t, s.Save(ctx, txs))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, txs, got)
}

func TestStore_LoadEmpty(t *testing.T) {
	s := newStore(t)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SaveOverwritesWholeBlob(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := []transaction.Transaction{{ID: "a", Date: "2025-01-01", Amount: 1, Type: transaction.TypeExpense}}
	second := []transaction.Transaction{{ID: "b", Date: "2025-02-01", Amount: 2, Type: transaction.TypeIncome}}

	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestStore_SaveNilWritesEmptyList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []transaction.Transaction{{ID: "a", Date: "2025-01-01", Amount: 1}}))
	require.NoError(t, s.Save(ctx, nil))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_CorruptBlobTreatedAsEmpty(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "budget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(
		"INSERT INTO kv_store (key, value) VALUES (?, ?)",
		store.StorageKey, "{not json",
	)
	require.NoError(t, err)

	got, loadErr := store.New(db).Load(context.Background())
	require.NoError(t, loadErr)
	assert.Empty(t, got)
}
