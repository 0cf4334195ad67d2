// Package query derives the visible slice of the transaction list: period
// and category filtering, free-text search, sorting, and pagination. Apply
// is a pure function over its inputs, so the same parameters on the same
// list always produce the same result.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ykarpov/budgetd/internal/dateutil"
	"github.com/ykarpov/budgetd/internal/transaction"
)

// PeriodMode names a date-range preset.
type PeriodMode string

const (
	PeriodCurrentMonth PeriodMode = "currentMonth"
	PeriodPrevMonth    PeriodMode = "prevMonth"
	PeriodLast30Days   PeriodMode = "last30days"
	PeriodThisYear     PeriodMode = "thisYear"
	PeriodAll          PeriodMode = "all"
	PeriodCustom       PeriodMode = "custom"
)

// Scope restricts the pipeline to one transaction type. ScopeAnalysis
// considers both.
type Scope string

const (
	ScopeExpenses Scope = "expenses"
	ScopeIncome   Scope = "income"
	ScopeAnalysis Scope = "analysis"
)

type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// PageSizeAll is the page size sentinel for an unbounded page.
const PageSizeAll = -1

var pageSizes = map[int]struct{}{10: {}, 20: {}, 50: {}, PageSizeAll: {}}

// Params carries every pipeline input. Zero values mean "no restriction":
// all time, both types, every category, no search, newest first, one
// unbounded page.
type Params struct {
	Period PeriodMode
	// Start and End bound a custom period, inclusive canonical dates.
	// Both are required when Period is PeriodCustom.
	Start string
	End   string

	Scope Scope

	// Categories is the allowed category set. A nil slice means every
	// category passes; an empty non-nil slice passes nothing.
	Categories []string

	// Search is matched case-insensitively against descriptions only.
	Search string

	SortKey SortKey
	SortDir SortDir

	Page     int
	PageSize int
}

// Result is one page of the derived view plus totals over the whole
// filtered set, not just the page.
type Result struct {
	Items       []transaction.Transaction `json:"items"`
	TotalCount  int                       `json:"totalCount"`
	TotalAmount float64                   `json:"totalAmount"`
	Page        int                       `json:"page"`
	PageCount   int                       `json:"pageCount"`
}

// Apply runs the full pipeline over txs. The input slice is never mutated.
func Apply(txs []transaction.Transaction, params Params, now time.Time) (Result, error) {
	params = withDefaults(params)

	bounds, err := resolvePeriod(params, now)
	if err != nil {
		return Result{}, err
	}

	if _, ok := pageSizes[params.PageSize]; !ok {
		return Result{}, fmt.Errorf("unsupported page size: %d", params.PageSize)
	}

	allowed := categorySet(params.Categories)
	search := strings.ToLower(strings.TrimSpace(params.Search))

	filtered := make([]transaction.Transaction, 0, len(txs))
	total := 0.0

	for _, tx := range txs {
		if !inScope(tx, params.Scope) {
			continue
		}

		if bounds != nil && (tx.Date < bounds.Start || tx.Date > bounds.End) {
			continue
		}

		if allowed != nil {
			if _, ok := allowed[tx.Category]; !ok {
				continue
			}
		}

		if search != "" && !strings.Contains(strings.ToLower(tx.Description), search) {
			continue
		}

		filtered = append(filtered, tx)
		total += tx.Amount
	}

	sortTransactions(filtered, params.SortKey, params.SortDir)

	page, pageCount, items := paginate(filtered, params.Page, params.PageSize)

	return Result{
		Items:       items,
		TotalCount:  len(filtered),
		TotalAmount: total,
		Page:        page,
		PageCount:   pageCount,
	}, nil
}

func withDefaults(params Params) Params {
	if params.Period == "" {
		params.Period = PeriodAll
	}

	if params.Scope == "" {
		params.Scope = ScopeAnalysis
	}

	if params.SortKey == "" {
		params.SortKey = SortByDate
	}

	if params.SortDir == "" {
		params.SortDir = SortDesc
	}

	if params.Page == 0 {
		params.Page = 1
	}

	if params.PageSize == 0 {
		params.PageSize = PageSizeAll
	}

	return params
}

// resolvePeriod turns the period mode into an inclusive date range, or nil
// when the mode is unbounded.
func resolvePeriod(params Params, now time.Time) (*dateutil.Range, error) {
	switch params.Period {
	case PeriodAll:
		return nil, nil
	case PeriodCurrentMonth:
		r := dateutil.CurrentMonthRange(now)
		return &r, nil
	case PeriodPrevMonth:
		r := dateutil.PreviousMonthRange(now)
		return &r, nil
	case PeriodLast30Days:
		return &dateutil.Range{
			Start: dateutil.Canonical(dateutil.ShiftDays(now, -30)),
			End:   dateutil.Today(now),
		}, nil
	case PeriodThisYear:
		return &dateutil.Range{
			Start: fmt.Sprintf("%04d-01-01", now.Year()),
			End:   fmt.Sprintf("%04d-12-31", now.Year()),
		}, nil
	case PeriodCustom:
		if !dateutil.IsCanonical(params.Start) || !dateutil.IsCanonical(params.End) {
			return nil, fmt.Errorf("custom period needs canonical start and end dates")
		}

		return &dateutil.Range{Start: params.Start, End: params.End}, nil
	}

	return nil, fmt.Errorf("unknown period mode: %q", params.Period)
}

func inScope(tx transaction.Transaction, scope Scope) bool {
	switch scope {
	case ScopeExpenses:
		return tx.Type == transaction.TypeExpense
	case ScopeIncome:
		return tx.Type == transaction.TypeIncome
	default:
		return true
	}
}

func categorySet(categories []string) map[string]struct{} {
	if categories == nil {
		return nil
	}

	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}

	return set
}

func sortTransactions(txs []transaction.Transaction, key SortKey, dir SortDir) {
	if key == SortByDate && dir == SortDesc {
		transaction.SortByDateDesc(txs)
		return
	}

	asc := func(a, b transaction.Transaction) bool {
		switch key {
		case SortByAmount:
			if a.Amount != b.Amount {
				return a.Amount < b.Amount
			}
		default:
			if a.Date != b.Date {
				return a.Date < b.Date
			}
		}

		return a.CreatedAt < b.CreatedAt
	}

	sort.SliceStable(txs, func(i, j int) bool {
		if dir == SortDesc {
			return asc(txs[j], txs[i])
		}

		return asc(txs[i], txs[j])
	})
}

// paginate clamps page into [1, pageCount] and slices out that page.
func paginate(txs []transaction.Transaction, page, pageSize int) (int, int, []transaction.Transaction) {
	if pageSize == PageSizeAll {
		return 1, 1, txs
	}

	pageCount := (len(txs) + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}

	if page < 1 {
		page = 1
	}

	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * pageSize
	end := start + pageSize

	if start > len(txs) {
		start = len(txs)
	}

	if end > len(txs) {
		end = len(txs)
	}

	return page, pageCount, txs[start:end]
}
