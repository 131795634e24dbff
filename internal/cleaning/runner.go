package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"capitas-dashboard/internal/loader"
	"capitas-dashboard/internal/model"
	"capitas-dashboard/pkg/utils"
)

// RunStore persists cleaning run lifecycle and diagnostics. Implemented by
// the SQLite run store.
type RunStore interface {
	SaveRun(run *model.CleaningRun) error
	UpdateRunStatus(id, status string) error
	SaveRunStats(id string, stats model.CleanStats, artifactPath string) error
	SaveRunError(id, stage string, err error) error
}

// Runner executes cleaning runs: it loads every raw file of an
// institution, applies the institution's strategy, and writes the
// processed artifact. One institution's failure never aborts another's
// run.
type Runner struct {
	dirs       *utils.DataDirs
	store      RunStore
	strategies map[string]Strategy
	logger     *slog.Logger
	workers    int
}

// NewRunner wires a runner from its collaborators. workers bounds how many
// institutions clean in parallel.
func NewRunner(dirs *utils.DataDirs, store RunStore, strategies map[string]Strategy, logger *slog.Logger, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		dirs:       dirs,
		store:      store,
		strategies: strategies,
		logger:     logger.With(slog.String("component", "cleaning_runner")),
		workers:    workers,
	}
}

// Institutions returns the tags this runner has a strategy for, sorted.
func (r *Runner) Institutions() []string {
	tags := make([]string, 0, len(r.strategies))
	for tag := range r.strategies {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// StartRun registers a pending run for an institution. retryOf links a
// rerun to the run it retries.
func (r *Runner) StartRun(institution, retryOf string) (*model.CleaningRun, error) {
	if _, ok := r.strategies[institution]; !ok {
		return nil, fmt.Errorf("no cleaning strategy for institution %q", institution)
	}
	now := time.Now().UTC()
	run := &model.CleaningRun{
		ID:          uuid.New().String(),
		Institution: institution,
		Status:      model.RunPending,
		RetryOf:     retryOf,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.store.SaveRun(run); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	return run, nil
}

// Execute performs a previously started run to completion, updating the
// run store as it goes. The returned error is also recorded in the store.
func (r *Runner) Execute(ctx context.Context, run *model.CleaningRun) error {
	logger := r.logger.With(
		slog.String("run_id", run.ID),
		slog.String("institution", run.Institution),
	)
	start := time.Now()
	r.store.UpdateRunStatus(run.ID, model.RunRunning)
	logger.Info("cleaning run started")

	stats, artifactPath, err := r.cleanInstitution(ctx, run.ID, run.Institution)
	if err != nil {
		r.store.UpdateRunStatus(run.ID, model.RunFailed)
		logger.Error("cleaning run failed", slog.String("error", err.Error()))
		return err
	}

	run.Stats = stats
	run.ArtifactPath = artifactPath
	if err := r.store.SaveRunStats(run.ID, stats, artifactPath); err != nil {
		logger.Warn("failed to persist run stats", slog.String("error", err.Error()))
	}
	r.store.UpdateRunStatus(run.ID, model.RunCompleted)
	logger.Info("cleaning run completed",
		slog.Int("rows_in", stats.RowsIn),
		slog.Int("rows_kept", stats.RowsKept),
		slog.Int("rows_dropped", stats.RowsDropped),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// CleanAll starts and executes one run per known institution, in parallel
// up to the worker limit. It returns every run, completed or failed;
// failures are reported per run, not as an error.
func (r *Runner) CleanAll(ctx context.Context) []*model.CleaningRun {
	tags := r.Institutions()
	runs := make([]*model.CleaningRun, len(tags))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, tag := range tags {
		i, tag := i, tag
		g.Go(func() error {
			run, err := r.StartRun(tag, "")
			if err != nil {
				r.logger.Error("failed to start run",
					slog.String("institution", tag),
					slog.String("error", err.Error()))
				return nil
			}
			if execErr := r.Execute(ctx, run); execErr != nil {
				run.Status = model.RunFailed
			} else {
				run.Status = model.RunCompleted
			}
			runs[i] = run
			return nil
		})
	}
	g.Wait()

	out := runs[:0]
	for _, run := range runs {
		if run != nil {
			out = append(out, run)
		}
	}
	return out
}

// cleanInstitution loads, cleans and writes one institution's data.
func (r *Runner) cleanInstitution(ctx context.Context, runID, institution string) (model.CleanStats, string, error) {
	var stats model.CleanStats
	strategy := r.strategies[institution]

	files, err := r.dirs.RawFiles(institution)
	if err != nil {
		r.store.SaveRunError(runID, "load", err)
		return stats, "", err
	}
	if len(files) == 0 {
		err := fmt.Errorf("no raw files for institution %q", institution)
		r.store.SaveRunError(runID, "load", err)
		return stats, "", err
	}

	merged := &model.ProcessedTable{Institution: institution}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, "", err
		}
		raw, err := loader.ReadTable(path, institution)
		if err != nil {
			r.store.SaveRunError(runID, "load", err)
			return stats, "", err
		}
		table, fileStats, err := strategy.Clean(raw)
		if err != nil {
			r.store.SaveRunError(runID, "clean", err)
			return stats, "", err
		}
		merged.Records = append(merged.Records, table.Records...)
		stats.RowsIn += fileStats.RowsIn
		stats.RowsKept += fileStats.RowsKept
		stats.RowsDropped += fileStats.RowsDropped
	}

	artifactPath := r.dirs.ProcessedPath(institution)
	if err := WriteArtifact(artifactPath, merged); err != nil {
		r.store.SaveRunError(runID, "write", err)
		return stats, "", err
	}
	return stats, artifactPath, nil
}
