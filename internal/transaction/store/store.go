// Package store persists the transaction list as a single JSON blob under a
// fixed key, mirroring the storage cell layout the backup format grew out of.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ykarpov/budgetd/internal/transaction"
)

// StorageKey is the fixed key the full transaction list lives under.
const StorageKey = "budget_transactions"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the blob and decodes it. A missing row or a corrupt blob is
// treated as "no data": startup must never fail because of local state, so
// decode errors are logged and swallowed.
func (s *Store) Load(ctx context.Context) ([]transaction.Transaction, error) {
	var raw string

	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_store WHERE key = ?", StorageKey,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading blob: %w", err)
	}

	var txs []transaction.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		slog.Error("stored transaction blob is corrupt, starting empty", "error", err)
		return nil, nil
	}

	return txs, nil
}

// Save rewrites the whole blob. There is no partial update path.
func (s *Store) Save(ctx context.Context, txs []transaction.Transaction) error {
	if txs == nil {
		txs = []transaction.Transaction{}
	}

	raw, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encoding blob: %w", err)
	}

	query := `
		INSERT INTO kv_store (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`

	if _, err := s.db.ExecContext(ctx, query, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}

	return nil
}
