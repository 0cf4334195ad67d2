package transaction

import (
	"errors"
	"time"

	"github.com/ykarpov/budgetd/internal/dateutil"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

var (
	ErrNotFound = errors.New("transaction not found")
	ErrNotEmpty = errors.New("store is not empty")

	// ErrAmountNotPositive and ErrYearOutOfRange apply to operator-entered
	// records only. Imported rows are coerced, never rejected.
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrYearOutOfRange    = errors.New("year must be within 2000-2099")
)

// Transaction is a single dated income or expense record. JSON field names
// match the persisted blob layout, so a stored list round-trips unchanged.
type Transaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"` // canonical YYYY-MM-DD
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Type        Type    `json:"type,omitempty"`
	CreatedAt   int64   `json:"createdAt"` // epoch milliseconds, sort tie-breaker
}

// Normalize applies the load-time migration rules to a record read from any
// source: legacy records missing a type become expenses, and the date is
// coerced to canonical form.
func Normalize(t Transaction, now time.Time) Transaction {
	if !t.Type.Valid() {
		t.Type = TypeExpense
	}

	t.Date = dateutil.Canonicalize(t.Date, now)

	return t
}

// NormalizeAll maps Normalize over a list, preserving order.
func NormalizeAll(txs []Transaction, now time.Time) []Transaction {
	out := make([]Transaction, len(txs))
	for i, t := range txs {
		out[i] = Normalize(t, now)
	}

	return out
}

// validate enforces the strict entry-form rules for manual create/update.
func validate(date string, amount float64) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}

	d, err := dateutil.Parse(date)
	if err != nil {
		return err
	}

	if d.Year() < 2000 || d.Year() > 2099 {
		return ErrYearOutOfRange
	}

	return nil
}
