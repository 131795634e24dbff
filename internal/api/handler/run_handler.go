package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"capitas-dashboard/internal/cleaning"
	"capitas-dashboard/internal/model"
	"capitas-dashboard/internal/store"
)

var validate = validator.New()

// RunHandler manages cleaning runs over HTTP.
type RunHandler struct {
	runner *cleaning.Runner
	logger *slog.Logger
}

// NewRunHandler creates a run handler.
func NewRunHandler(runner *cleaning.Runner, logger *slog.Logger) *RunHandler {
	return &RunHandler{
		runner: runner,
		logger: logger.With(slog.String("component", "run_handler")),
	}
}

// CreateRunsRequest selects the institutions to clean. Empty means every
// institution the runner knows.
type CreateRunsRequest struct {
	Institutions []string `json:"institutions" validate:"omitempty,dive,oneof=one cnss"`
}

// CreateRuns starts cleaning runs
// @Summary Start cleaning runs
// @Description Start one asynchronous cleaning run per requested institution
// @Tags runs
// @Accept json
// @Produce json
// @Param request body CreateRunsRequest false "Institutions to clean"
// @Success 202 {object} map[string]interface{} "Started runs"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Router /runs [post]
func (h *RunHandler) CreateRuns(w http.ResponseWriter, r *http.Request) {
	var req CreateRunsRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			badRequest(w, r, "invalid JSON payload")
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		badRequest(w, r, "unknown institution tag")
		return
	}

	institutions := req.Institutions
	if len(institutions) == 0 {
		institutions = h.runner.Institutions()
	}

	var runs []*model.CleaningRun
	for _, tag := range institutions {
		run, err := h.runner.StartRun(tag, "")
		if err != nil {
			h.logger.Error("failed to start run",
				slog.String("institution", tag),
				slog.String("error", err.Error()))
			continue
		}
		runs = append(runs, run)
		go h.runner.Execute(context.WithoutCancel(r.Context()), run)
	}
	if len(runs) == 0 {
		internalError(w, r, "failed to start any cleaning run")
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{
		"message": "cleaning runs started",
		"runs":    runs,
	})
}

// ListRuns lists cleaning runs
// @Summary List cleaning runs
// @Description List every cleaning run, newest first
// @Tags runs
// @Produce json
// @Success 200 {array} model.CleaningRun
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		internalError(w, r, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []model.CleaningRun{}
	}
	render.JSON(w, r, runs)
}

// GetRun fetches one cleaning run
// @Summary Get a cleaning run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.CleaningRun
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := store.GetRun(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, r, "run not found")
		return
	}
	render.JSON(w, r, run)
}

// GetRunErrors lists the errors of a run
// @Summary Get cleaning run errors
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id}/errors [get]
func (h *RunHandler) GetRunErrors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := store.GetRun(id); err != nil {
		notFound(w, r, "run not found")
		return
	}
	errs, err := store.GetRunErrors(id)
	if err != nil {
		internalError(w, r, "failed to list run errors")
		return
	}
	if errs == nil {
		errs = []model.RunError{}
	}
	render.JSON(w, r, map[string]interface{}{
		"run_id": id,
		"errors": errs,
		"count":  len(errs),
	})
}

// RetryRun reruns a run's institution
// @Summary Retry a cleaning run
// @Description Start a new cleaning run for the same institution, linked to the original
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 202 {object} model.CleaningRun
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id}/retry [post]
func (h *RunHandler) RetryRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	original, err := store.GetRun(id)
	if err != nil {
		notFound(w, r, "run not found")
		return
	}

	retry, err := h.runner.StartRun(original.Institution, original.ID)
	if err != nil {
		internalError(w, r, "failed to start retry run")
		return
	}
	go h.runner.Execute(context.WithoutCancel(r.Context()), retry)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, retry)
}

// Shared error responders.

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]interface{}{"error": msg})
}

func notFound(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, map[string]interface{}{"error": msg})
}

func unprocessable(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, map[string]interface{}{"error": msg})
}

func internalError(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]interface{}{"error": msg})
}
