package exportfile

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ykarpov/budgetd/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/json", h.downloadJSON)
	r.Get("/excel", h.downloadExcel)
}

func (h *Handler) downloadJSON(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.svc.JSONFilename(now)))

	if err := h.svc.WriteJSON(r.Context(), w, now); err != nil {
		slog.Error("failed to write json export", "error", err)
	}
}

func (h *Handler) downloadExcel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.svc.ExcelFilename(time.Now())))

	if err := h.svc.WriteExcel(r.Context(), w); err != nil {
		slog.Error("failed to write excel export", "error", err)
	}
}
