package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/davidmns/centavo/internal/budget"
	budgetStore "github.com/davidmns/centavo/internal/budget/store"
	"github.com/davidmns/centavo/internal/cache"
	"github.com/davidmns/centavo/internal/config"
	"github.com/davidmns/centavo/internal/database"
	"github.com/davidmns/centavo/internal/debt"
	debtStore "github.com/davidmns/centavo/internal/debt/store"
	centavoHttp "github.com/davidmns/centavo/internal/http"
	budgetHandler "github.com/davidmns/centavo/internal/http/budget"
	debtHandler "github.com/davidmns/centavo/internal/http/debt"
	importHandler "github.com/davidmns/centavo/internal/http/importcsv"
	savingsHandler "github.com/davidmns/centavo/internal/http/savings"
	"github.com/davidmns/centavo/internal/importer"
	"github.com/davidmns/centavo/internal/savings"
	savingsStore "github.com/davidmns/centavo/internal/savings/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var statsCache debt.StatsCache

	if cfg.Redis.Addr != "" {
		stats, err := cache.New(context.Background(), cfg.Redis.Addr, cfg.Redis.StatsTTL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer stats.Close()

		statsCache = stats
	}

	var (
		budgetService  = budget.NewService(budgetStore.New(db))
		debtService    = debt.NewService(debtStore.New(db), statsCache)
		savingsService = savings.NewService(savingsStore.New(db), budgetService)
		importService  = importer.NewService()
	)

	var (
		debtH   = debtHandler.NewHandler(debtService)
		goalsH  = savingsHandler.NewHandler(savingsService)
		budgetH = budgetHandler.NewHandler(budgetService, savingsService)
		importH = importHandler.NewHandler(importService, budgetService)
	)

	router := centavoHttp.New(cfg.Auth.JWTSecret, debtH, goalsH, budgetH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
