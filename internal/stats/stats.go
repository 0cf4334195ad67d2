// Package stats buckets transactions by calendar month and derives the
// analysis report: per-month cash flow, running balance, headline KPIs,
// and a linear balance forecast.
package stats

import (
	"fmt"
	"time"

	"github.com/ykarpov/budgetd/internal/transaction"
)

const (
	// windowMonths is the trailing analysis window, ending at the month of
	// the latest transaction rather than the current month.
	windowMonths = 12

	forecastMonths = 6
)

// MonthBucket is one calendar month of the window. Zero-activity months
// still appear so the time axis has no gaps.
type MonthBucket struct {
	// Month is the bucket key in YYYY-MM form.
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
	// Balance is the running sum of Net up to and including this month.
	Balance float64 `json:"balance"`
}

// ForecastPoint projects the balance one month past the window. Projected
// points form a separate series from the measured buckets.
type ForecastPoint struct {
	Month   string  `json:"month"`
	Balance float64 `json:"balance"`
}

// CategoryTotal is a category's summed amount within the window.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type KPI struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	// Balance equals the final running balance of the window.
	Balance float64 `json:"balance"`
	// SavingsRate is balance over income as a percentage, 0 when the
	// window has no income.
	SavingsRate float64 `json:"savingsRate"`
	Turnover    float64 `json:"turnover"`
	// AvgMonthlyExpense divides by the months from the first active month
	// through the window end, so sparse history is not diluted by empty
	// leading buckets.
	AvgMonthlyExpense  float64                  `json:"avgMonthlyExpense"`
	TopExpenseCategory *CategoryTotal           `json:"topExpenseCategory,omitempty"`
	TopIncomeCategory  *CategoryTotal           `json:"topIncomeCategory,omitempty"`
	LargestExpense     *transaction.Transaction `json:"largestExpense,omitempty"`
}

// Report is the full analysis over the trailing window.
type Report struct {
	Months   []MonthBucket   `json:"months"`
	KPI      KPI             `json:"kpi"`
	Forecast []ForecastPoint `json:"forecast"`
}

// Build computes the report. A nil report means there is nothing to
// analyze; callers render an empty state instead.
func Build(txs []transaction.Transaction) *Report {
	latest := latestMonth(txs)
	if latest.IsZero() {
		return nil
	}

	start := latest.AddDate(0, -(windowMonths - 1), 0)

	months := make([]MonthBucket, windowMonths)
	index := make(map[string]int, windowMonths)

	for i := range months {
		key := monthKey(start.AddDate(0, i, 0))
		months[i] = MonthBucket{Month: key}
		index[key] = i
	}

	var (
		expenseByCategory = make(map[string]float64)
		incomeByCategory  = make(map[string]float64)
		largestExpense    *transaction.Transaction
	)

	kpi := KPI{}

	for i, tx := range txs {
		bucket, ok := index[monthOf(tx.Date)]
		if !ok {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			months[bucket].Income += tx.Amount
			incomeByCategory[tx.Category] += tx.Amount
			kpi.TotalIncome += tx.Amount
		default:
			months[bucket].Expense += tx.Amount
			expenseByCategory[tx.Category] += tx.Amount
			kpi.TotalExpense += tx.Amount

			// Strictly-greater keeps the first occurrence on ties.
			if largestExpense == nil || tx.Amount > largestExpense.Amount {
				largestExpense = &txs[i]
			}
		}
	}

	balance := 0.0
	firstActive := -1

	for i := range months {
		months[i].Net = months[i].Income - months[i].Expense
		balance += months[i].Net
		months[i].Balance = balance

		if firstActive < 0 && (months[i].Income != 0 || months[i].Expense != 0) {
			firstActive = i
		}
	}

	activeMonths := windowMonths - firstActive
	if firstActive < 0 {
		activeMonths = 1
	}

	kpi.Balance = balance
	kpi.Turnover = kpi.TotalIncome + kpi.TotalExpense
	kpi.AvgMonthlyExpense = kpi.TotalExpense / float64(activeMonths)

	if kpi.TotalIncome > 0 {
		kpi.SavingsRate = kpi.Balance / kpi.TotalIncome * 100
	}

	kpi.TopExpenseCategory = topCategory(expenseByCategory)
	kpi.TopIncomeCategory = topCategory(incomeByCategory)

	if largestExpense != nil {
		tx := *largestExpense
		kpi.LargestExpense = &tx
	}

	avgNet := balance / float64(activeMonths)

	forecast := make([]ForecastPoint, forecastMonths)
	projected := balance

	for i := range forecast {
		projected += avgNet
		forecast[i] = ForecastPoint{
			Month:   monthKey(latest.AddDate(0, i+1, 0)),
			Balance: projected,
		}
	}

	return &Report{Months: months, KPI: kpi, Forecast: forecast}
}

// latestMonth returns the first day of the month of the lexicographically
// greatest canonical date, or the zero time when txs is empty.
func latestMonth(txs []transaction.Transaction) time.Time {
	latest := ""

	for _, tx := range txs {
		if tx.Date > latest {
			latest = tx.Date
		}
	}

	if latest == "" {
		return time.Time{}
	}

	var year, month int
	if _, err := fmt.Sscanf(latest, "%4d-%2d", &year, &month); err != nil {
		return time.Time{}
	}

	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// monthOf truncates a canonical date to its YYYY-MM prefix.
func monthOf(date string) string {
	if len(date) < 7 {
		return date
	}

	return date[:7]
}

// topCategory picks the category with the greatest summed amount. Amount
// ties break on the lexicographically smaller name to keep the result
// deterministic across map iteration orders.
func topCategory(totals map[string]float64) *CategoryTotal {
	var top *CategoryTotal

	for category, total := range totals {
		switch {
		case top == nil,
			total > top.Total,
			total == top.Total && category < top.Category:
			top = &CategoryTotal{Category: category, Total: total}
		}
	}

	return top
}
