package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ykarpov/budgetd/internal/http/exportfile"
	"github.com/ykarpov/budgetd/internal/http/importfile"
	"github.com/ykarpov/budgetd/internal/http/stats"
	"github.com/ykarpov/budgetd/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	importV1 *importfile.Handler,
	exportV1 *exportfile.Handler,
	statsV1 *stats.Handler,
	corsOrigin string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", transactionsV1.Routes)

		r.Get("/categories", transactionsV1.ListCategories)

		r.Route("/import", importV1.Routes)

		r.Route("/export", exportV1.Routes)

		r.Route("/stats", statsV1.Routes)
	})

	return router
}
