package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ykarpov/budgetd/internal/dateutil"
	"github.com/ykarpov/budgetd/internal/transaction"
)

// RawRecord is a transaction-like record of unknown provenance: a row from a
// spreadsheet, an element of a JSON backup, or a CSV line. Date and Amount
// are deliberately untyped because every source encodes them differently.
// Coerce is the single place where a RawRecord becomes a valid Transaction.
type RawRecord struct {
	ID          any    `json:"id"`
	Date        any    `json:"date"`
	Amount      any    `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CreatedAt   int64  `json:"createdAt"`
}

// Summary reports what an import did. Adjusted counts rows where a safe
// default replaced a missing or invalid amount or date; the import itself
// never fails over a single bad row.
type Summary struct {
	Records  int `json:"records"`
	Adjusted int `json:"adjusted"`
}

// Coerce turns a raw record into a valid Transaction, applying every
// field-level fallback rule in one place:
//
//   - missing/invalid/non-positive amount -> 0
//   - missing/unparseable date           -> today
//   - missing category                   -> the fallback label
//   - missing id                         -> freshly minted uuid
//   - missing/unknown type               -> expense
//
// The returned flag is true when the amount or date fallback fired.
func Coerce(raw RawRecord, now time.Time) (transaction.Transaction, bool) {
	adjusted := false

	amount, ok := coerceAmount(raw.Amount)
	if !ok {
		amount = 0
		adjusted = true
	}

	date, ok := coerceDate(raw.Date, now)
	if !ok {
		adjusted = true
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		category = transaction.DefaultCategory
	}

	id := coerceID(raw.ID)

	createdAt := raw.CreatedAt
	if createdAt <= 0 {
		createdAt = now.UnixMilli()
	}

	return transaction.Transaction{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(raw.Description),
		Type:        coerceType(raw.Type),
		CreatedAt:   createdAt,
	}, adjusted
}

// CoerceAll maps Coerce over a batch and tallies the summary.
func CoerceAll(raws []RawRecord, now time.Time) ([]transaction.Transaction, Summary) {
	txs := make([]transaction.Transaction, len(raws))
	sum := Summary{Records: len(raws)}

	for i, raw := range raws {
		tx, adjusted := Coerce(raw, now)
		if adjusted {
			sum.Adjusted++
		}

		txs[i] = tx
	}

	return txs, sum
}

// coerceAmount accepts the numeric encodings seen in the wild: JSON numbers,
// spreadsheet numeric strings, and locale-formatted strings with comma
// decimals and space/nbsp thousand separators.
func coerceAmount(v any) (float64, bool) {
	var d decimal.Decimal

	switch val := v.(type) {
	case float64:
		d = decimal.NewFromFloat(val)
	case int:
		d = decimal.NewFromInt(int64(val))
	case int64:
		d = decimal.NewFromInt(val)
	case string:
		clean := strings.NewReplacer(" ", "", " ", "", "₽", "", ",", ".").Replace(strings.TrimSpace(val))
		if clean == "" {
			return 0, false
		}

		parsed, err := decimal.NewFromString(clean)
		if err != nil {
			return 0, false
		}

		d = parsed
	default:
		return 0, false
	}

	f, _ := d.Float64()
	if f <= 0 {
		return 0, false
	}

	return f, true
}

// serialEpoch converts spreadsheet date serials. Using 1899-12-30 rather
// than the nominal 1899-12-31 absorbs the phantom 1900-02-29 of the Lotus
// date system, so modern serials land on the right day.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// minSerial filters out small numbers that are clearly not date serials;
// serial 25569 is 1970-01-01.
const minSerial = 20000

// coerceDate resolves a raw date in the lenient order: canonical string
// pass-through, spreadsheet serial number, generic string parse, and finally
// today. Returns false only for the today fallback.
func coerceDate(v any, now time.Time) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if dateutil.IsCanonical(s) {
			return s, true
		}

		// Spreadsheet readers hand raw date cells over as bare numbers.
		if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= minSerial {
			return dateutil.Canonical(serialEpoch.AddDate(0, 0, int(serial))), true
		}

		if t, err := dateutil.ParseAny(s); err == nil {
			return dateutil.Canonical(t), true
		}

		return dateutil.Today(now), false
	case float64:
		if val >= minSerial {
			return dateutil.Canonical(serialEpoch.AddDate(0, 0, int(val))), true
		}

		return dateutil.Today(now), false
	default:
		return dateutil.Today(now), false
	}
}

func coerceID(v any) string {
	switch val := v.(type) {
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return s
		}
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}

	return uuid.NewString()
}

// coerceType understands both the wire value ("income") and the localized
// spreadsheet label ("Доход"); everything else is an expense.
func coerceType(s string) transaction.Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "доход":
		return transaction.TypeIncome
	}

	return transaction.TypeExpense
}
