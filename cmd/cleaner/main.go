package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"capitas-dashboard/internal/cleaning"
	"capitas-dashboard/internal/config"
	"capitas-dashboard/internal/infrastructure"
	"capitas-dashboard/internal/model"
	"capitas-dashboard/internal/store"
	"capitas-dashboard/pkg/utils"
)

// The cleaner runs every institution's cleaning pipeline once and exits.
// Failures are reported per institution; the exit code is non-zero only
// when no institution produced an artifact.
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

	runs := runner.CleanAll(context.Background())

	completed := 0
	for _, run := range runs {
		switch run.Status {
		case model.RunCompleted:
			completed++
			fmt.Printf("✅ %s: kept %d of %d rows (dropped %d) -> %s\n",
				run.Institution, run.Stats.RowsKept, run.Stats.RowsIn,
				run.Stats.RowsDropped, run.ArtifactPath)
		default:
			fmt.Printf("❌ %s: run %s failed, see run errors\n", run.Institution, run.ID)
		}
	}

	if completed == 0 {
		fmt.Fprintln(os.Stderr, "no institution was cleaned successfully")
		os.Exit(1)
	}
}
