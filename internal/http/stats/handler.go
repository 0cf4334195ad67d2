package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ykarpov/budgetd/internal/stats"
	"github.com/ykarpov/budgetd/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.report)
}

type emptyResponse struct {
	Empty bool `json:"empty"`
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	report := stats.Build(h.svc.List(r.Context()))

	w.Header().Set("Content-Type", "application/json")

	// No data yet: an explicit empty marker instead of a zeroed report,
	// so clients render a placeholder rather than twelve flat months.
	if report == nil {
		if err := json.NewEncoder(w).Encode(emptyResponse{Empty: true}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	if err := json.NewEncoder(w).Encode(report); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
