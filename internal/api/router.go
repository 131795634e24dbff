package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "capitas-dashboard/docs" // swagger docs registration

	"capitas-dashboard/internal/api/handler"
	"capitas-dashboard/internal/cleaning"
	"capitas-dashboard/pkg/utils"
)

// NewRouter assembles the dashboard API: cleaning-run management, chart
// specifications, swagger docs and a health probe.
func NewRouter(runner *cleaning.Runner, dirs *utils.DataDirs, logger *slog.Logger) http.Handler {
	runs := handler.NewRunHandler(runner, logger)
	chartsH := handler.NewChartHandler(dirs, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/runs", func(r chi.Router) {
			r.Post("/", runs.CreateRuns)
			r.Get("/", runs.ListRuns)
			r.Get("/{id}", runs.GetRun)
			r.Get("/{id}/errors", runs.GetRunErrors)
			r.Post("/{id}/retry", runs.RetryRun)
		})
		r.Route("/institutions", func(r chi.Router) {
			r.Get("/", chartsH.ListInstitutions)
			r.Get("/{tag}/years", chartsH.GetYears)
			r.Get("/{tag}/charts/{chart}", chartsH.GetChart)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	return r
}
