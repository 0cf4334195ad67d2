package importfile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ykarpov/budgetd/internal/importer"
	"github.com/ykarpov/budgetd/internal/transaction"
)

// Mode selects what an import does with the current list.
type Mode string

const (
	// ModeReplace discards the current list in favor of the file.
	ModeReplace Mode = "replace"
	// ModeMerge merges the file into the current list, renaming ids that
	// collide.
	ModeMerge Mode = "merge"
)

func parseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeReplace, ModeMerge:
		return Mode(s), nil
	}

	return "", fmt.Errorf("unknown import mode: %q", s)
}

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{importSvc: importSvc, txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{format}", h.importFile)
}

type importResponse struct {
	Imported int `json:"imported"`
	// Adjusted counts rows whose amount or date fell back to a default.
	Adjusted int `json:"adjusted"`
	Total    int `json:"total"`
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	format, err := importer.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode, err := parseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	txs, summary, err := h.importSvc.Import(format, file, time.Now())
	if err != nil {
		// Parse failures, ErrFormat included, are file problems. The
		// current list stays untouched.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var imported int

	switch mode {
	case ModeReplace:
		imported, err = h.txSvc.ReplaceAll(r.Context(), txs)
	case ModeMerge:
		imported, err = h.txSvc.MergeImport(r.Context(), txs)
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	total := len(h.txSvc.List(r.Context()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{
		Imported: imported,
		Adjusted: summary.Adjusted,
		Total:    total,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
