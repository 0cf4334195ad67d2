package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ykarpov/budgetd/internal/preset"
	"github.com/ykarpov/budgetd/internal/query"
	"github.com/ykarpov/budgetd/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/", h.clear)
	r.Post("/seed", h.seed)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Date        string           `json:"date"`
	Amount      float64          `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Type        transaction.Type `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if isValidationError(err) {
			status = http.StatusBadRequest
		}

		http.Error(w, err.Error(), status)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params, err := queryParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := query.Apply(h.svc.List(r.Context()), params, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toListResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// queryParams maps the list query string onto pipeline parameters. Absent
// parameters keep their zero values, which the pipeline reads as "no
// restriction".
func queryParams(r *http.Request) (query.Params, error) {
	q := r.URL.Query()

	params := query.Params{
		Period:  query.PeriodMode(q.Get("period")),
		Start:   q.Get("start"),
		End:     q.Get("end"),
		Scope:   query.Scope(q.Get("scope")),
		Search:  q.Get("q"),
		SortKey: query.SortKey(q.Get("sort")),
		SortDir: query.SortDir(q.Get("dir")),
	}

	if s := q.Get("categories"); s != "" {
		params.Categories = strings.Split(s, ",")
	}

	if s := q.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil {
			return query.Params{}, errors.New("page must be an integer")
		}

		params.Page = page
	}

	if s := q.Get("page_size"); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil {
			return query.Params{}, errors.New("page_size must be an integer")
		}

		params.PageSize = size
	}

	return params, nil
}

type updateTransactionRequest struct {
	Date        *string           `json:"date,omitempty"`
	Amount      *float64          `json:"amount,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Description *string           `json:"description,omitempty"`
	Type        *transaction.Type `json:"type,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, transaction.UpdateParams{
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			http.Error(w, "transaction not found", http.StatusNotFound)
		case isValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	mode, err := transaction.ParseClearMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	removed, err := h.svc.Clear(r.Context(), mode)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(clearResponse{Removed: removed}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type seedRequest struct {
	Shape string `json:"shape"`
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	shape, err := preset.ParseShape(req.Shape)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := preset.Generate(shape, time.Now())

	if err := h.svc.Seed(r.Context(), txs); err != nil {
		if errors.Is(err, transaction.ErrNotEmpty) {
			http.Error(w, "store already has data", http.StatusConflict)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(seedResponse{Seeded: len(txs)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(categoriesResponse{
		Categories: transaction.Categories,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, transaction.ErrAmountNotPositive) ||
		errors.Is(err, transaction.ErrYearOutOfRange)
}
