package transaction

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction

// Repository persists the transaction list as a whole. There is no partial
// update: every mutation rewrites the full list (write-through), matching the
// single-blob storage layout.
type Repository interface {
	Load(ctx context.Context) ([]Transaction, error)
	Save(ctx context.Context, txs []Transaction) error
}

// Service owns the in-memory transaction list. All reads return copies and
// all mutations go through Save, so no caller ever holds a view that can
// drift from the persisted state.
type Service struct {
	repo Repository

	mu  sync.RWMutex
	txs []Transaction
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Init hydrates the in-memory list from the repository, applying the legacy
// migration rules to every loaded record.
func (s *Service) Init(ctx context.Context) error {
	txs, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	s.mu.Lock()
	s.txs = NormalizeAll(txs, time.Now())
	s.mu.Unlock()

	return nil
}

// List returns a copy of the full transaction list.
func (s *Service) List(ctx context.Context) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Transaction, len(s.txs))
	copy(out, s.txs)

	return out
}

func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.txs {
		if t.ID == id {
			return t, nil
		}
	}

	return Transaction{}, ErrNotFound
}

type CreateParams struct {
	Date        string
	Amount      float64
	Category    string
	Description string
	Type        Type
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Transaction, error) {
	if err := validate(params.Date, params.Amount); err != nil {
		return Transaction{}, err
	}

	typ := params.Type
	if !typ.Valid() {
		typ = TypeExpense
	}

	tx := Transaction{
		ID:          uuid.NewString(),
		Date:        params.Date,
		Amount:      params.Amount,
		Category:    params.Category,
		Description: params.Description,
		Type:        typ,
		CreatedAt:   time.Now().UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Transaction, 0, len(s.txs)+1)
	next = append(next, tx)
	next = append(next, s.txs...)

	if err := s.commit(ctx, next); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

type UpdateParams struct {
	Date        *string
	Amount      *float64
	Category    *string
	Description *string
	Type        *Type
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1

	for i, t := range s.txs {
		if t.ID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		return Transaction{}, ErrNotFound
	}

	tx := s.txs[idx]

	if params.Date != nil {
		tx.Date = *params.Date
	}

	if params.Amount != nil {
		tx.Amount = *params.Amount
	}

	if params.Category != nil {
		tx.Category = *params.Category
	}

	if params.Description != nil {
		tx.Description = *params.Description
	}

	if params.Type != nil && params.Type.Valid() {
		tx.Type = *params.Type
	}

	if err := validate(tx.Date, tx.Amount); err != nil {
		return Transaction{}, err
	}

	next := make([]Transaction, len(s.txs))
	copy(next, s.txs)
	next[idx] = tx

	if err := s.commit(ctx, next); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Transaction, 0, len(s.txs))
	found := false

	for _, t := range s.txs {
		if t.ID == id {
			found = true
			continue
		}

		next = append(next, t)
	}

	if !found {
		return ErrNotFound
	}

	return s.commit(ctx, next)
}

// ReplaceAll swaps the whole list for the incoming one.
func (s *Service) ReplaceAll(ctx context.Context, incoming []Transaction) (int, error) {
	next := make([]Transaction, len(incoming))
	copy(next, incoming)
	SortByDateDesc(next)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	return len(next), nil
}

// MergeImport reconciles incoming records with the current list (see Merge)
// and re-sorts the result by date descending, newest first.
func (s *Service) MergeImport(ctx context.Context, incoming []Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Merge(s.txs, incoming)
	SortByDateDesc(next)

	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	return len(incoming), nil
}

// ClearMode selects which records a bulk clear removes.
type ClearMode string

const (
	ClearAll      ClearMode = "all"
	ClearIncome   ClearMode = "income"
	ClearExpenses ClearMode = "expenses"
)

func ParseClearMode(s string) (ClearMode, error) {
	switch ClearMode(s) {
	case ClearAll, ClearIncome, ClearExpenses:
		return ClearMode(s), nil
	}

	return "", fmt.Errorf("unknown clear mode: %q", s)
}

// Clear removes records by mode and writes the remainder back. Clearing
// income keeps expenses and vice versa. Returns the number removed.
func (s *Service) Clear(ctx context.Context, mode ClearMode) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next []Transaction

	switch mode {
	case ClearAll:
		next = []Transaction{}
	case ClearIncome:
		next = filterByType(s.txs, TypeExpense)
	case ClearExpenses:
		next = filterByType(s.txs, TypeIncome)
	default:
		return 0, fmt.Errorf("unknown clear mode: %q", mode)
	}

	removed := len(s.txs) - len(next)

	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	return removed, nil
}

// Seed populates an empty store with a preset dataset. It refuses to run
// when any data already exists.
func (s *Service) Seed(ctx context.Context, preset []Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.txs) > 0 {
		return ErrNotEmpty
	}

	next := make([]Transaction, len(preset))
	copy(next, preset)

	return s.commit(ctx, next)
}

// commit persists the candidate list and, only on success, makes it the
// in-memory truth. Callers must hold the write lock.
func (s *Service) commit(ctx context.Context, next []Transaction) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}

	s.txs = next

	return nil
}

func filterByType(txs []Transaction, keep Type) []Transaction {
	out := make([]Transaction, 0, len(txs))

	for _, t := range txs {
		if t.Type == keep {
			out = append(out, t)
		}
	}

	return out
}

// SortByDateDesc orders newest first, breaking date ties by creation time.
func SortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date > txs[j].Date
		}

		return txs[i].CreatedAt > txs[j].CreatedAt
	})
}
