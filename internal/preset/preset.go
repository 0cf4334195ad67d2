// Package preset generates built-in transaction sets for seeding an empty
// budget. Generation is fully deterministic: the same reference time always
// yields the same records, so seeding twice (or in tests) is reproducible.
package preset

import (
	"fmt"
	"math"
	"time"

	"github.com/ykarpov/budgetd/internal/dateutil"
	"github.com/ykarpov/budgetd/internal/transaction"
)

// Shape selects which preset to generate.
type Shape string

const (
	// ShapeDemo is a handful of records spanning the previous and current
	// month, enough to make every screen non-empty.
	ShapeDemo Shape = "demo"
	// ShapeYear is twelve months of realistic history ending at the
	// reference month.
	ShapeYear Shape = "year"
)

func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeDemo, ShapeYear:
		return Shape(s), nil
	}

	return "", fmt.Errorf("unknown preset shape: %q", s)
}

// Generate returns the preset for the shape, newest first.
func Generate(shape Shape, ref time.Time) []transaction.Transaction {
	switch shape {
	case ShapeYear:
		return Year(ref)
	default:
		return Demo(ref)
	}
}

// monthlyTotals carry a year of plausible household cash flow. Index 0 is
// eleven months before the reference month.
var (
	monthlyExpenses = []float64{95000, 102000, 98000, 111000, 123000, 107000, 93000, 118000, 101000, 112000, 116000, 105000}
	monthlyIncomes  = []float64{105000, 113000, 108000, 122000, 120000, 128000, 106000, 128000, 115000, 125000, 111000, 132000}
)

// monthPart is one synthetic record inside a month: a share of the month's
// total booked on a fixed day. The last part of each list takes the
// remainder so the parts always sum exactly to the month total.
type monthPart struct {
	Day         int
	Share       float64
	Category    string
	Description string
}

var expenseParts = []monthPart{
	{Day: 4, Share: 0.27, Category: "Продукты", Description: "Продукты и бытовые покупки"},
	{Day: 10, Share: 0.18, Category: "Коммуналка", Description: "ЖКУ и обязательные платежи"},
	{Day: 17, Share: 0.15, Category: "Транспорт", Description: "Транспорт и авто"},
	{Day: 25, Share: 0, Category: "Развлечения и хобби", Description: "Досуг и прочие траты"},
}

var incomeParts = []monthPart{
	{Day: 1, Share: 0.72, Category: "Зарплата", Description: "Основной доход"},
	{Day: 14, Share: 0.18, Category: "Подработка", Description: "Дополнительный доход"},
	{Day: 28, Share: 0, Category: "Кэшбэк", Description: "Кэшбэк и возвраты"},
}

// Year builds twelve months of history ending at ref's month.
func Year(ref time.Time) []transaction.Transaction {
	base := ref.UnixMilli()

	var txs []transaction.Transaction

	for i := 0; i < 12; i++ {
		monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, i-11, 0)

		txs = append(txs, splitMonth(monthStart, monthlyIncomes[i], incomeParts, transaction.TypeIncome,
			func(idx int) string { return fmt.Sprintf("preset_inc_%d_%d", i, idx) },
			func(idx int) int64 { return base - int64(400-i*10-idx) })...)

		txs = append(txs, splitMonth(monthStart, monthlyExpenses[i], expenseParts, transaction.TypeExpense,
			func(idx int) string { return fmt.Sprintf("preset_exp_%d_%d", i, idx) },
			func(idx int) int64 { return base - int64(350-i*10-idx) })...)
	}

	transaction.SortByDateDesc(txs)

	return txs
}

// splitMonth books a month total as the part list, rounding each share to
// whole units and assigning the remainder to the final part.
func splitMonth(monthStart time.Time, total float64, parts []monthPart, typ transaction.Type,
	id func(idx int) string, createdAt func(idx int) int64) []transaction.Transaction {

	txs := make([]transaction.Transaction, 0, len(parts))
	remainder := total

	for idx, part := range parts {
		amount := math.Round(total * part.Share)
		if idx == len(parts)-1 {
			amount = remainder
		}

		remainder -= amount

		day := monthStart.AddDate(0, 0, part.Day-1)

		txs = append(txs, transaction.Transaction{
			ID:          id(idx),
			Date:        dateutil.Canonical(day),
			Amount:      amount,
			Category:    part.Category,
			Description: part.Description,
			Type:        typ,
			CreatedAt:   createdAt(idx),
		})
	}

	return txs
}

// Demo is a small mixed set over the previous and current month.
func Demo(ref time.Time) []transaction.Transaction {
	base := ref.UnixMilli()
	currentStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.Local)
	prevStart := currentStart.AddDate(0, -1, 0)

	seed := []struct {
		start       time.Time
		day         int
		amount      float64
		category    string
		description string
		typ         transaction.Type
	}{
		{prevStart, 1, 95000, "Зарплата", "Основной доход", transaction.TypeIncome},
		{prevStart, 5, 24500, "Продукты", "Продукты на месяц", transaction.TypeExpense},
		{prevStart, 10, 8300, "Коммуналка", "ЖКУ", transaction.TypeExpense},
		{prevStart, 18, 3200, "Кафе", "Ужин с друзьями", transaction.TypeExpense},
		{currentStart, 1, 98000, "Зарплата", "Основной доход", transaction.TypeIncome},
		{currentStart, 3, 12000, "Подработка", "Дополнительный доход", transaction.TypeIncome},
		{currentStart, 6, 21800, "Продукты", "Продукты и бытовые покупки", transaction.TypeExpense},
		{currentStart, 9, 4500, "Транспорт", "Проездной и такси", transaction.TypeExpense},
	}

	txs := make([]transaction.Transaction, 0, len(seed))

	for idx, s := range seed {
		txs = append(txs, transaction.Transaction{
			ID:          fmt.Sprintf("preset_demo_%d", idx),
			Date:        dateutil.Canonical(s.start.AddDate(0, 0, s.day-1)),
			Amount:      s.amount,
			Category:    s.category,
			Description: s.description,
			Type:        s.typ,
			CreatedAt:   base - int64(len(seed)-idx),
		})
	}

	transaction.SortByDateDesc(txs)

	return txs
}
