package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/ykarpov/budgetd/internal/config"
	"github.com/ykarpov/budgetd/internal/database"
	"github.com/ykarpov/budgetd/internal/export"
	budgetHttp "github.com/ykarpov/budgetd/internal/http"
	exportHandler "github.com/ykarpov/budgetd/internal/http/exportfile"
	importHandler "github.com/ykarpov/budgetd/internal/http/importfile"
	statsHandler "github.com/ykarpov/budgetd/internal/http/stats"
	txHandler "github.com/ykarpov/budgetd/internal/http/transaction"
	"github.com/ykarpov/budgetd/internal/importer"
	"github.com/ykarpov/budgetd/internal/transaction"
	txStore "github.com/ykarpov/budgetd/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		transactionService = transaction.NewService(txStore.New(db))
		importService      = importer.NewService()
		exportService      = export.NewService(transactionService, cfg.Backup.Version)
	)

	if err := transactionService.Init(context.Background()); err != nil {
		slog.Error("failed to load transactions", "error", err)
		os.Exit(1)
	}

	var (
		transactionH = txHandler.NewHandler(transactionService)
		importH      = importHandler.NewHandler(importService, transactionService)
		exportH      = exportHandler.NewHandler(exportService)
		statsH       = statsHandler.NewHandler(transactionService)
	)

	router := budgetHttp.New(transactionH, importH, exportH, statsH, cfg.CORS.Origin)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
