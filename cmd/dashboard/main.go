package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"capitas-dashboard/internal/api"
	"capitas-dashboard/internal/cleaning"
	"capitas-dashboard/internal/config"
	"capitas-dashboard/internal/infrastructure"
	"capitas-dashboard/internal/store"
	"capitas-dashboard/pkg/utils"
)

// @title Capitas Dashboard API
// @version 1.0
// @description Cleaning runs and chart specifications for Dominican health capitation statistics.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	logger := infrastructure.NewLogger(cfg.LogLevel)

	if err := store.InitDB(cfg.DBPath); err != nil {
		logger.Error("failed to init database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	dirs := utils.NewDataDirs(cfg.RawDir, cfg.ProcessedDir)
	if err := dirs.EnsureDirs(); err != nil {
		logger.Error("failed to create data directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	coercer := cleaning.Coercer{MinYear: cfg.MinYear, MaxYear: cfg.MaxYear}
	runner := cleaning.NewRunner(dirs, store.Runs{}, cleaning.Strategies(coercer), logger, cfg.CleanWorkers)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(runner, dirs, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logger.Info("dashboard API listening", slog.Int("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
